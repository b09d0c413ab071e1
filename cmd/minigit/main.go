// cmd/minigit/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mubarekdevv/my-minigit-trial/internal/clock"
	"github.com/mubarekdevv/my-minigit-trial/internal/digest"
	"github.com/mubarekdevv/my-minigit-trial/internal/engine"
	minigiterrors "github.com/mubarekdevv/my-minigit-trial/internal/errors"
	"github.com/mubarekdevv/my-minigit-trial/internal/logging"
	"github.com/mubarekdevv/my-minigit-trial/internal/repo"
	"github.com/mubarekdevv/my-minigit-trial/internal/scan"
	"github.com/mubarekdevv/my-minigit-trial/internal/status"
)

// appLogger is the one logger instance the process builds at startup and
// every command shares, the way the teacher's cmd/tig/main.go holds a
// single package-level logger rather than one per command.
var appLogger *logging.Logger

var rootCmd = &cobra.Command{
	Use:   "minigit",
	Short: "minigit is a local, single-user version control engine",
}

func init() {
	var initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a new minigit repository in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if _, err := repo.Init(dir, appLogger); err != nil {
				if minigiterrors.ErrAlreadyInitialized.Is(err) {
					fmt.Println("minigit repository already initialized in .minigit")
					os.Exit(1)
				}
				appLogger.Error("init failed", zap.String("dir", dir), zap.Error(err))
				return err
			}

			fmt.Println("Initialized empty minigit repository in", dir)
			return nil
		},
	}

	var addCmd = &cobra.Command{
		Use:   "add <path>",
		Short: "Stage a file's current content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			result, err := engine.Add(r, args[0])
			if err != nil {
				return exitErr(err)
			}
			if result.AlreadyStaged {
				fmt.Println("File already up to date in staging:", args[0])
				return nil
			}
			fmt.Println("Added file to staging:", args[0])
			return nil
		},
	}

	var commitCmd = &cobra.Command{
		Use:   "commit <message words...>",
		Short: "Record the staged changes as a new commit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			message := strings.Join(args, " ")
			result, err := engine.Commit(r, clock.Real{}, message)
			if err != nil {
				if minigiterrors.ErrNoEffectiveChanges.Is(err) {
					fmt.Println("No changes to commit. Staging area is empty or identical to HEAD.")
					return nil
				}
				return err
			}

			fmt.Println("Committed as", digest.Short(result.Commit.Digest, 7))
			return nil
		},
	}

	var logCmd = &cobra.Command{
		Use:   "log",
		Short: "Show commit history from HEAD",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			entries, err := engine.Log(r)
			if err != nil {
				if minigiterrors.ErrNoCommits.Is(err) {
					fmt.Println("No commits yet.")
					return nil
				}
				return err
			}

			printLog(entries)
			return nil
		},
	}

	var branchCmd = &cobra.Command{
		Use:   "branch <name>",
		Short: "Create a new branch pointing at HEAD's commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			if err := engine.CreateBranch(r, args[0]); err != nil {
				return exitErr(err)
			}

			head, err := r.Head()
			if err != nil {
				return err
			}
			fmt.Printf("Created branch: %s pointing to %s\n", args[0], digest.Short(head.Commit, 7))
			return nil
		},
	}

	var checkoutCmd = &cobra.Command{
		Use:   "checkout <branch|commit|prefix>",
		Short: "Switch the working directory to a branch or commit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			result, err := engine.Checkout(r, args[0])
			if err != nil {
				if minigiterrors.ErrWorkingDirDirty.Is(err) {
					fmt.Println("Error: your working directory has uncommitted changes. Commit or revert them before checking out.")
					printStatus(r)
					os.Exit(1)
				}
				return exitErr(err)
			}

			// Per-file warnings (e.g. a missing blob) were already logged by
			// the engine at the point they occurred, via r.Log.Warn.
			switch {
			case result.AlreadyCurrent:
				if result.Head.Attached() {
					fmt.Printf("Already on branch '%s'.\n", result.Head.Branch)
				} else {
					fmt.Printf("Already on commit %s (detached HEAD).\n", digest.Short(result.Head.Commit, 7))
				}
			case result.Head.Attached():
				fmt.Println("Switched to branch:", result.Head.Branch)
			default:
				fmt.Printf("Checked out commit: %s (detached HEAD)\n", digest.Short(result.Head.Commit, 7))
			}
			return nil
		},
	}

	var statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the working directory status",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}
			printStatus(r)
			return nil
		},
	}

	var diffCmd = &cobra.Command{
		Use:   "diff [<commit>] [<commit>]",
		Short: "Show a line-level diff between two states",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepo()
			if err != nil {
				return exitErr(err)
			}

			staged, _ := cmd.Flags().GetBool("staged")
			cached, _ := cmd.Flags().GetBool("cached")

			diffs, err := engine.Diff(r, args, staged || cached)
			if err != nil {
				return exitErr(err)
			}

			if len(diffs) == 0 {
				fmt.Println("No differences.")
				return nil
			}

			for _, fd := range diffs {
				fmt.Printf("\ndiff --minigit a/%s b/%s\n", fd.Path, fd.Path)
				printColoredDiff(fd.Result.Format())
			}
			return nil
		},
	}
	diffCmd.Flags().Bool("staged", false, "compare the index against HEAD")
	diffCmd.Flags().Bool("cached", false, "alias for --staged")

	rootCmd.AddCommand(initCmd, addCmd, commitCmd, logCmd, branchCmd, checkoutCmd, statusCmd, diffCmd)
}

func openRepo() (*repo.Repository, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	return repo.Open(dir, appLogger)
}

// exitErr maps a core error to the table in §6: a missing repository and
// usage-shaped core errors (bad or unreadable path, no commits yet,
// duplicate branch, unknown target) print a message and exit 1; everything
// else propagates to cobra's default handling. A dirty checkout is handled
// by the checkout command itself before exitErr is reached.
func exitErr(err error) error {
	coreErr, ok := err.(*minigiterrors.Error)
	if !ok {
		return err
	}

	switch coreErr.Kind {
	case minigiterrors.NotARepository:
		fmt.Println("Not a minigit repository. Please run 'init' first.")
		os.Exit(1)
	case minigiterrors.NoSuchPath, minigiterrors.NotARegularFile, minigiterrors.UnreadableFile,
		minigiterrors.NoCommits, minigiterrors.BranchExists, minigiterrors.UnknownTarget:
		appLogger.Warn("command aborted", zap.String("kind", string(coreErr.Kind)), zap.Error(coreErr))
		fmt.Println("Error:", coreErr)
		os.Exit(1)
	}
	return err
}

func printStatus(r *repo.Repository) {
	head, err := r.Head()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	headCommit, err := r.HeadCommit()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	workFiles, err := scan.Scan(r.Root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	report := status.Classify(headCommit, r.Index, workFiles)

	fmt.Println("--- minigit status ---")
	if head.Attached() {
		fmt.Println("On branch", head.Branch)
	} else {
		fmt.Println("On branch (detached HEAD)")
	}
	if head.Commit == "" {
		fmt.Println("HEAD points to: No commits yet")
	} else {
		fmt.Println("HEAD points to:", digest.Short(head.Commit, 7))
	}
	fmt.Println()

	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if !report.StagedEmpty() {
		fmt.Println("Changes to be committed:")
		for _, f := range report.StagedAdded {
			fmt.Printf("    %s %s\n", green("New file:"), f)
		}
		for _, f := range report.StagedModified {
			fmt.Printf("    %s %s\n", yellow("Modified:"), f)
		}
		for _, f := range report.StagedDeleted {
			fmt.Printf("    %s %s\n", red("Deleted:"), f)
		}
		fmt.Println()
	} else {
		fmt.Println("No changes to be committed.")
		fmt.Println()
	}

	if len(report.UnstagedModified) > 0 || len(report.UnstagedDeleted) > 0 {
		fmt.Println("Changes not staged for commit:")
		for _, m := range report.UnstagedModified {
			label := "Modified:"
			if m.StagedVersionDiffers {
				label = "Modified (staged version differs):"
			}
			fmt.Printf("    %s %s\n", yellow(label), m.Path)
		}
		for _, f := range report.UnstagedDeleted {
			fmt.Printf("    %s %s\n", red("Deleted:"), f)
		}
		fmt.Println()
	} else {
		fmt.Println("No changes not staged for commit.")
		fmt.Println()
	}

	if len(report.Untracked) > 0 {
		fmt.Println("Untracked files:")
		fmt.Println("  (use \"minigit add <file>...\" to include in what will be committed)")
		for _, f := range report.Untracked {
			fmt.Printf("    %s\n", blue(f))
		}
		fmt.Println()
	} else {
		fmt.Println("No untracked files.")
		fmt.Println()
	}

	if !report.Dirty() {
		fmt.Println("Your working directory is clean.")
	}
	fmt.Println("----------------------")
}

func printLog(entries []engine.LogEntry) {
	fmt.Println("--- Commit History ---")
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, e := range entries {
		c := e.Commit
		fmt.Print(cyan("Commit: "), digest.Short(c.Digest, 7))
		if e.IsHeadHere {
			if e.HeadDetached {
				fmt.Print(" (HEAD, detached)")
			}
		}
		fmt.Print(branchAnnotation(e))
		fmt.Println()

		if len(c.Parents) > 0 {
			fmt.Print("Parents: ")
			for _, p := range c.Parents {
				fmt.Print(digest.Short(p, 7), " ")
			}
			fmt.Println()
		}
		fmt.Println("Date:   ", c.Timestamp)
		fmt.Println("Message:", c.Message)
		fmt.Println()
	}
	fmt.Println("----------------------")
}

// branchAnnotation renders the branch list trailing a log entry's commit
// line: the branch HEAD is actually attached to gets the arrow, every
// other branch pointing at the same commit is listed as a plain name.
func branchAnnotation(e engine.LogEntry) string {
	var out string
	for _, b := range e.Branches {
		if b == e.AttachedBranch {
			out += fmt.Sprintf(" (HEAD -> %s)", b)
		} else {
			out += fmt.Sprintf(", %s", b)
		}
	}
	return out
}

func printColoredDiff(diffText string) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, line := range strings.Split(diffText, "\n") {
		switch {
		case strings.HasPrefix(line, "+ "):
			added.Println(line)
		case strings.HasPrefix(line, "- "):
			removed.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func main() {
	var err error
	appLogger, err = logging.NewLogger("info")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	if err := rootCmd.Execute(); err != nil {
		appLogger.Error("command failed", zap.Error(err))
		fmt.Println(err)
		os.Exit(1)
	}
}

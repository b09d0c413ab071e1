// Package diff is the line-diff presenter (C10): given two byte
// sequences, it produces a linewise walk with "  " (unchanged), "- "
// (only on the left), and "+ " (only on the right) prefixes (§4.10).
// Grounded on the teacher's internal/diff.Engine (LCS matrix, Hunk/Line
// types, Format()), simplified to a single ungapped walk since this
// spec's presenter has no hunk/context-radius concept — every line is
// shown, matching original_source/MiniGitSystem.hpp's displayLineDiff
// output shape directly rather than a unified-diff excerpt.
package diff

import "bytes"

// LineType classifies one line of the walk.
type LineType int

const (
	Context LineType = iota
	Deletion
	Addition
)

// Line is one line of the presented diff.
type Line struct {
	Type    LineType
	Content string
}

// Result is the full line-by-line comparison of two byte sequences.
type Result struct {
	Lines     []Line
	Additions int
	Deletions int
}

// Diff compares old and new content line by line using an LCS alignment
// (a correct, if not minimal-edit-script, algorithm — the Open Question in
// §9 permits any correct diff as long as the prefix convention holds).
func Diff(oldContent, newContent []byte) *Result {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	lcs := computeLCS(oldLines, newLines)
	lines := walk(oldLines, newLines, lcs)

	res := &Result{Lines: lines}
	for _, l := range lines {
		switch l.Type {
		case Addition:
			res.Additions++
		case Deletion:
			res.Deletions++
		}
	}
	return res
}

func splitLines(content []byte) [][]byte {
	trimmed := bytes.TrimSuffix(content, []byte{'\n'})
	if len(trimmed) == 0 {
		return nil
	}
	return bytes.Split(trimmed, []byte{'\n'})
}

func computeLCS(oldLines, newLines [][]byte) [][]int {
	matrix := make([][]int, len(oldLines)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(newLines)+1)
	}

	for i := 1; i <= len(oldLines); i++ {
		for j := 1; j <= len(newLines); j++ {
			if bytes.Equal(oldLines[i-1], newLines[j-1]) {
				matrix[i][j] = matrix[i-1][j-1] + 1
			} else if matrix[i-1][j] >= matrix[i][j-1] {
				matrix[i][j] = matrix[i-1][j]
			} else {
				matrix[i][j] = matrix[i][j-1]
			}
		}
	}

	return matrix
}

// walk reconstructs the aligned line sequence from the LCS matrix,
// emitting a context line for each match and a deletion/addition line
// otherwise.
func walk(oldLines, newLines [][]byte, lcs [][]int) []Line {
	i, j := len(oldLines), len(newLines)
	var reversed []Line

	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && bytes.Equal(oldLines[i-1], newLines[j-1]):
			reversed = append(reversed, Line{Type: Context, Content: string(oldLines[i-1])})
			i--
			j--
		case j > 0 && (i == 0 || lcs[i][j-1] >= lcs[i-1][j]):
			reversed = append(reversed, Line{Type: Addition, Content: string(newLines[j-1])})
			j--
		default:
			reversed = append(reversed, Line{Type: Deletion, Content: string(oldLines[i-1])})
			i--
		}
	}

	lines := make([]Line, len(reversed))
	for k, l := range reversed {
		lines[len(reversed)-1-k] = l
	}
	return lines
}

// Format renders the Result using the "  "/"- "/"+ " prefix convention.
func (r *Result) Format() string {
	var b bytes.Buffer
	for _, l := range r.Lines {
		switch l.Type {
		case Addition:
			b.WriteString("+ ")
		case Deletion:
			b.WriteString("- ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(l.Content)
		b.WriteString("\n")
	}
	return b.String()
}

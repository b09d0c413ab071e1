package commitstore

import (
	"bufio"
	"fmt"
	"strings"
)

// encode renders a commit in the line-oriented text format §6 specifies:
//
//	message:<message>
//	timestamp:<timestamp>
//	parents:<digest> <digest> …
//	files:
//	<path>:<digest>
//	…
func encode(c *Commit) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "message:%s\n", c.Message)
	fmt.Fprintf(&b, "timestamp:%s\n", c.Timestamp)
	fmt.Fprintf(&b, "parents:%s\n", strings.Join(c.Parents, " "))
	b.WriteString("files:\n")
	for _, path := range c.sortedPaths() {
		fmt.Fprintf(&b, "%s:%s\n", path, c.Tree[path])
	}
	return []byte(b.String())
}

// decode parses the on-disk record format back into a Commit. It reports
// ok=false when the record is unparseable or missing its identity fields,
// which the caller surfaces as CorruptCommit (§4.2, §7).
func decode(dig string, data []byte) (*Commit, bool) {
	c := &Commit{Digest: dig, Tree: map[string]string{}}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	sawMessage, sawTimestamp, sawParents := false, false, false

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "message:"):
			c.Message = strings.TrimPrefix(line, "message:")
			sawMessage = true
		case strings.HasPrefix(line, "timestamp:"):
			c.Timestamp = strings.TrimPrefix(line, "timestamp:")
			sawTimestamp = true
		case strings.HasPrefix(line, "parents:"):
			rest := strings.TrimPrefix(line, "parents:")
			if rest != "" {
				c.Parents = strings.Fields(rest)
			}
			sawParents = true
		case line == "files:":
			for scanner.Scan() {
				fileLine := scanner.Text()
				if fileLine == "" {
					break
				}
				idx := strings.Index(fileLine, ":")
				if idx < 0 {
					return nil, false
				}
				c.Tree[fileLine[:idx]] = fileLine[idx+1:]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, false
	}

	if !sawMessage || !sawTimestamp || !sawParents || c.Digest == "" {
		return nil, false
	}
	return c, true
}

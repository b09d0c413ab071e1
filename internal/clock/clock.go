// Package clock is the commit engine's timestamp collaborator (§6
// "Environment"). The teacher repo calls time.Now() directly wherever a
// timestamp is needed; this is the one place in this module that needs
// the timestamp to be swappable in a test, so it is the one place that
// wraps it.
package clock

import "time"

// Layout is the fixed format commits are timestamped with.
const Layout = "2006-01-02 15:04:05"

// Clock produces the current time as a formatted string.
type Clock interface {
	Now() string
}

// Real reads the system clock in local time.
type Real struct{}

func (Real) Now() string {
	return time.Now().Local().Format(Layout)
}

// Fixed always returns the same string, for deterministic tests.
type Fixed string

func (f Fixed) Now() string {
	return string(f)
}

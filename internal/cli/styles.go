package tradesift

import "github.com/fatih/color"

// Shared terminal styles. color honors NO_COLOR and non-TTY output on its
// own, so commands can use these unconditionally.
var (
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

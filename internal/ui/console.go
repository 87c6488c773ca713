package ui

import (
	"fmt"
	"io"
	"os"
)

// ANSI Color Codes
const (
	Reset   = "\033[0m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
	Yellow  = "\033[33m"
	Red     = "\033[31m"
	Green   = "\033[32m"
)

const Logo = `
` + Magenta + `
  █  ████  ████  █   █  ████  ████  █████
  █  █     █  █  ██  █  █     █       █
  █  █     █  █  █ █ █  ████  ████    █
  █  █     █  █  █  ██     █  █       █
  █  ████  ████  █   █  ████  ████    █
` + Cyan + `
     App icon set generator
` + Reset + `
`

// Out is where console output goes.
var Out io.Writer = os.Stdout

func PrintLogo() {
	fmt.Fprintf(Out, "%s\n", Logo)
}

func Info(msg string) {
	fmt.Fprintf(Out, "%s[INFO] %s%s\n", Cyan, Reset, msg)
}

func Success(msg string) {
	fmt.Fprintf(Out, "%s[SUCCESS] %s%s\n", Green, Reset, msg)
}

func Warning(msg string) {
	fmt.Fprintf(Out, "%s[WARNING] %s%s\n", Yellow, Reset, msg)
}

func Error(msg string) {
	fmt.Fprintf(Out, "%s[ERROR] %s%s\n", Red, Reset, msg)
}

// Busy prints the in-progress line of a background run.
func Busy(msg string) {
	fmt.Fprintf(Out, "%s[BUSY] %s%s\n", Magenta, Reset, msg)
}

// Idle prints the outcome of a finished run. Unrecognised statuses print
// as errors.
func Idle(status, msg string) {
	switch status {
	case "success":
		Success(msg)
	case "partial_failure":
		Warning(msg)
	default:
		Error(msg)
	}
}

func Header(title string) {
	fmt.Fprintf(Out, "\n%s=== %s ===%s\n", Magenta, title, Reset)
}

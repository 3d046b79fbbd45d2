// Package terminal provides ANSI color helpers for report output.
// Colors honor the NO_COLOR convention so piped output stays clean.
package terminal

import "os"

func code(c string) string {
	if os.Getenv("NO_COLOR") != "" {
		return ""
	}
	return c
}

// Red returns the ANSI red color code, or empty when colors are disabled.
func Red() string { return code("\033[31m") }

// Green returns the ANSI green color code, or empty when colors are disabled.
func Green() string { return code("\033[32m") }

// Yellow returns the ANSI yellow color code, or empty when colors are disabled.
func Yellow() string { return code("\033[33m") }

// Gray returns the ANSI gray color code, or empty when colors are disabled.
func Gray() string { return code("\033[90m") }

// Reset returns the ANSI reset code, or empty when colors are disabled.
func Reset() string { return code("\033[0m") }

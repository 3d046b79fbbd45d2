package update

import "errors"

// Sentinel errors for conditions the CLI turns into a fatal exit before
// any network or subprocess work begins.
var (
	// ErrConflictingModes is returned when raw and interactive output are
	// requested together.
	ErrConflictingModes = errors.New("--raw and --interactive are mutually exclusive")

	// ErrConfirmationDeclined is returned when the operator declines the
	// auto + editables confirmation.
	ErrConfirmationDeclined = errors.New("confirmation declined, nothing done")

	// ErrQuit is returned by the apply loop when the operator answers
	// quit; remaining packages are not processed.
	ErrQuit = errors.New("aborted by operator")
)

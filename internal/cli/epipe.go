package cli

import (
	"errors"
	"syscall"
)

// isEPIPE reports whether err represents the downstream end of a pipe
// closing (e.g. piping into `head`). The engine's policy, carried
// uniformly across platforms per the source's stance, is to treat this
// as a clean, silent, successful termination rather than a diagnostic.
func isEPIPE(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}

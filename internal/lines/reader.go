// Package lines implements the two line source adapters: a buffered
// reader (for stdin, pipes, and as the portable fallback) and a
// memory-mapped adapter (for regular files on platforms that support
// it). Both emit identical tokens: byte slices split on '\n', with the
// final unterminated segment emitted if non-empty.
package lines

import (
	"bufio"
	"errors"
	"io"
)

// Walk reads from r and invokes fn once per line, in order. Each line is
// a fresh slice returned by ReadBytes; callers treat it as valid only for
// the duration of the call and copy it if retained past the call (the
// estimators already do this on insert), the same contract [WalkMmap]'s
// mapped slices need.
func Walk(r io.Reader, fn func(line []byte) error) error {
	br := bufio.NewReaderSize(r, 64*1024)

	for {
		chunk, err := br.ReadBytes('\n')

		if len(chunk) > 0 {
			line := chunk
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}

			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}
	}
}

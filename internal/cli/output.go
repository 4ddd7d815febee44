package cli

import (
	"bytes"
	"fmt"

	"github.com/go-line-cardinality/cuniq/internal/cardinality"
	"github.com/go-line-cardinality/cuniq/internal/clierr"
	"github.com/go-line-cardinality/cuniq/internal/fs"
)

// writeCount renders the count-mode result: a single decimal line.
func writeCount(count uint64) []byte {
	return []byte(fmt.Sprintf("%d\n", count))
}

// writeReport renders report-mode output: one "%7d %s\n" line per entry,
// in the order entries is given (caller decides sorted vs unsorted).
func writeReport(entries []cardinality.ReportEntry) []byte {
	var buf bytes.Buffer

	for _, e := range entries {
		fmt.Fprintf(&buf, "%7d %s\n", e.Count, e.Line)
	}

	return buf.Bytes()
}

// emit sends rendered to either the output file (atomically, via filesys)
// or io's buffered stdout writer, and reports broken-pipe writes to
// stdout as a clean success rather than an error.
func emit(io *IO, filesys fs.FS, outputPath string, rendered []byte) error {
	if outputPath != "" {
		if err := filesys.WriteFileAtomic(outputPath, rendered, 0o644); err != nil {
			return clierr.IO(outputPath, err)
		}

		return nil
	}

	if _, err := io.out.Write(rendered); err != nil {
		if isBrokenPipe(err) {
			return errBrokenPipe
		}

		return clierr.IO("", err)
	}

	if err := io.Flush(); err != nil {
		if isBrokenPipe(err) {
			return errBrokenPipe
		}

		return clierr.IO("", err)
	}

	return nil
}

// errBrokenPipe is a sentinel the driver recognizes to exit 0 silently.
var errBrokenPipe = fmt.Errorf("broken pipe")

func isBrokenPipe(err error) bool {
	return isEPIPE(err)
}

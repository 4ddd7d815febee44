package cli

import (
	"fmt"
	"io"

	"github.com/peterh/liner"

	"github.com/go-line-cardinality/cuniq/internal/cardinality"
	"github.com/go-line-cardinality/cuniq/internal/preprocess"
)

// runInteractive drives the -i/--interactive REPL: each line entered at
// the prompt is counted immediately and the running distinct-count is
// echoed back. liner supplies history and line editing; this mode has
// no literal equivalent in the batch engine but exercises the same
// estimator and preprocessor the batch path does, which is why it lives
// in this package rather than a standalone tool.
func runInteractive(stdout, stderr io.Writer, est cardinality.Estimator, transform preprocess.Transform) int {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	var scratch []byte

	for {
		input, err := line.Prompt("cuniq> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				break
			}

			fmt.Fprintln(stderr, "error:", err)

			return 1
		}

		line.AppendHistory(input)

		counted := transform([]byte(input), &scratch)
		est.CountLine(counted)

		fmt.Fprintf(stdout, "%d\n", est.Count())
	}

	return 0
}

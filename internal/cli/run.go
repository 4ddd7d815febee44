package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/go-line-cardinality/cuniq/internal/cardinality"
	"github.com/go-line-cardinality/cuniq/internal/clierr"
	"github.com/go-line-cardinality/cuniq/internal/fs"
	"github.com/go-line-cardinality/cuniq/internal/lines"
	"github.com/go-line-cardinality/cuniq/internal/preprocess"
)

const gracefulShutdownTimeout = 5 * time.Second

// Run is the main entry point: parse flags, validate them, run the
// counting engine (or the interactive REPL), and write the result.
// Returns the process exit code. sigCh may be nil if signal-aware
// graceful shutdown is not needed (e.g. in tests).
func Run(stdin io.Reader, stdout, stderr io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	opts, flagSet, err := parseFlags(args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)

			return 0
		}

		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	if opts.help {
		printUsage(stdout)

		return 0
	}

	if opts.version {
		printVersion(stdout)

		return 0
	}

	filesys := fs.NewReal()

	if cfg, cfgErr := loadConfig(filesys, opts.configPath, env); cfgErr == nil {
		applyConfigDefaults(opts, flagSet, cfg)
	} else if opts.configPath != "" {
		// An explicitly requested config file that fails to load is a
		// hard error; an absent implicit config file is not (loadConfig
		// already returns a zero config, nil for that case).
		fmt.Fprintln(stderr, "error:", clierr.Config(cfgErr))

		return 1
	}

	if err := validateOptions(opts); err != nil {
		fmt.Fprintln(stderr, "error:", err)

		return 1
	}

	transform := preprocess.New(opts.trim, opts.lower)

	cmdIO := NewIO(stdout, stderr)

	if opts.interactive {
		hasher := cardinality.NewRandomHasher()

		est, err := newEstimator(opts, flagSet, hasher)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)

			return 1
		}

		return runInteractive(stdout, stderr, est, transform)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- runBatch(ctx, filesys, stdin, opts, flagSet, transform, cmdIO)
	}()

	select {
	case code := <-done:
		return code
	case <-sigCh:
		fmt.Fprintln(stderr, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case code := <-done:
		// The batch goroutine only checks ctx between files, so a run on a
		// single large file can still finish normally after cancel(): its
		// real exit code is honored rather than overwritten, since it did
		// not actually get force-killed.
		return code
	case <-time.After(gracefulShutdownTimeout):
		fmt.Fprintln(stderr, "graceful shutdown timed out, forced exit (130)")

		return 130
	case <-sigCh:
		return 130
	}
}

// validateOptions enforces the flag conflicts the engine requires: report
// mode needs Exact, and --memmap/--no-memmap are mutually exclusive.
func validateOptions(opts *options) error {
	if opts.report && opts.mode != modeExact {
		return clierr.Configf("--report requires --mode=exact (got %q)", opts.mode)
	}

	if opts.memmap && opts.noMemmap {
		return clierr.Configf("--memmap and --no-memmap are mutually exclusive")
	}

	switch opts.mode {
	case modeExact, modeNearExact, modeEstimate:
	default:
		return clierr.Configf("unknown mode %q: want exact, near-exact, or estimate", opts.mode)
	}

	return nil
}

// newEstimator constructs the estimator selected by opts.mode, wiring
// in hasher for the hash-based variants. flagSet.Changed("size") is
// consulted rather than branching on opts.size == 0, since --size=0 is a
// distinct, valid request (smallest HLL sketch) from not passing --size
// at all (default sketch size), matching the source CLI's
// Option<usize>-typed --size flag.
func newEstimator(opts *options, flagSet *flag.FlagSet, hasher *cardinality.Hasher) (cardinality.Estimator, error) {
	switch opts.mode {
	case modeNearExact:
		return cardinality.NewNearExact(hasher, opts.size), nil
	case modeEstimate:
		if !flagSet.Changed("size") {
			return cardinality.NewHyperLogLog(hasher, cardinality.DefaultHLLSize)
		}

		size := cardinality.PreviousPowerOfTwo(opts.size)
		if size < cardinality.MinHLLSize {
			size = cardinality.MinHLLSize
		}

		return cardinality.NewHyperLogLog(hasher, size)
	default:
		return cardinality.NewExact(cardinality.NewCount64, opts.size), nil
	}
}

// inputList resolves the ordered list of inputs to process: stdin first
// (as a sentinel empty path) when piped and not suppressed, then the
// positional file arguments in order.
func inputList(stdin io.Reader, opts *options) []string {
	var list []string

	if !opts.noStdin && stdinIsPiped(stdin) {
		list = append(list, "")
	}

	list = append(list, opts.files...)

	return list
}

// stdinIsPiped reports whether r looks like piped/redirected input
// rather than an interactive terminal. Non-*os.File readers (as used in
// tests) are treated as piped input, since a test that supplies a
// bytes.Reader as stdin clearly intends it to be read.
func stdinIsPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice == 0
}

// runBatch pre-opens every input (failing fast if any is missing),
// counts lines from each in order, and writes the result.
func runBatch(ctx context.Context, filesys fs.FS, stdin io.Reader, opts *options, flagSet *flag.FlagSet, transform preprocess.Transform, cmdIO *IO) int {
	paths := inputList(stdin, opts)

	type openInput struct {
		path string
		file fs.File
	}

	opened := make([]openInput, 0, len(paths))

	defer func() {
		for _, in := range opened {
			if in.file != nil {
				_ = in.file.Close()
			}
		}
	}()

	for _, p := range paths {
		if p == "" {
			opened = append(opened, openInput{path: "-"})

			continue
		}

		f, err := filesys.Open(p)
		if err != nil {
			cmdIO.ErrPrintln("error:", clierr.IO(p, err))

			return 1
		}

		opened = append(opened, openInput{path: p, file: f})
	}

	hasher := cardinality.NewRandomHasher()

	est, err := newEstimator(opts, flagSet, hasher)
	if err != nil {
		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	// This batch run terminates the process on success, so the table never
	// needs a real teardown: mark it leak-on-exit so any later Reset along
	// this path (there is none today, but future callers inherit it) skips
	// clearing the map instead of walking it just before exit.
	if exact, ok := est.(*cardinality.Exact[cardinality.Count64]); ok {
		exact.SetLeakOnExit(true)
	}

	var scratch []byte

	onLine := func(line []byte) error {
		est.CountLine(transform(line, &scratch))

		return nil
	}

	for _, in := range opened {
		if ctx.Err() != nil {
			return 130
		}

		if in.path == "-" {
			if err := lines.Walk(stdin, onLine); err != nil {
				cmdIO.ErrPrintln("error:", clierr.IO("-", err))

				return 1
			}

			continue
		}

		if err := readOneFile(in.file, in.path, opts, onLine); err != nil {
			cmdIO.ErrPrintln("error:", err)

			return 1
		}
	}

	return writeResult(cmdIO, filesys, opts, est)
}

// readOneFile walks one already-opened input with either the mmap or
// buffered adapter, per opts and the default policy (mmap for regular
// files when not overridden).
func readOneFile(f fs.File, path string, opts *options, onLine func([]byte) error) error {
	useMmap := opts.memmap

	if !opts.memmap && !opts.noMemmap {
		if info, err := f.Stat(); err == nil && info.Mode().IsRegular() {
			useMmap = true
		}
	}

	if useMmap {
		if err := lines.WalkMmap(f, onLine); err != nil {
			if opts.memmap {
				return clierr.IO(path, err)
			}
			// Default policy silently falls back to buffered reads if
			// mmap fails for a reason other than an explicit request.
			if _, seekErr := f.Seek(0, io.SeekStart); seekErr == nil {
				if err := lines.Walk(f, onLine); err != nil {
					return clierr.IO(path, err)
				}

				return nil
			}

			return clierr.IO(path, err)
		}

		return nil
	}

	if err := lines.Walk(f, onLine); err != nil {
		return clierr.IO(path, err)
	}

	return nil
}

// writeResult renders and emits the final count or report.
func writeResult(cmdIO *IO, filesys fs.FS, opts *options, est cardinality.Estimator) int {
	var rendered []byte

	if opts.report {
		reporter, ok := est.(cardinality.Reporter)
		if !ok {
			cmdIO.ErrPrintln("error:", clierr.Configf("--report requires an estimator that supports reporting"))

			return 1
		}

		var entries []cardinality.ReportEntry
		if opts.sort {
			if sr, ok := reporter.(cardinality.SortedReporter); ok {
				entries = sr.SortedReport()
			} else {
				entries = reporter.Report()
			}
		} else {
			entries = reporter.Report()
		}

		rendered = writeReport(entries)
	} else {
		rendered = writeCount(est.Count())
	}

	if err := emit(cmdIO, filesys, opts.output, rendered); err != nil {
		if errors.Is(err, errBrokenPipe) {
			return 0
		}

		cmdIO.ErrPrintln("error:", err)

		return 1
	}

	return 0
}

// printVersion reports the module's own build info rather than a
// hand-maintained version string, since git-commit/feature-flag
// synthesis (the source binary's build.rs job) is out of scope here.
func printVersion(w io.Writer) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Fprintln(w, "cuniq (build info unavailable)")

		return
	}

	version := info.Main.Version
	if version == "" {
		version = "(devel)"
	}

	fmt.Fprintf(w, "cuniq %s\n", version)

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			fmt.Fprintf(w, "  commit: %s\n", setting.Value)
		case "vcs.time":
			fmt.Fprintf(w, "  built:  %s\n", setting.Value)
		case "GOOS", "GOARCH":
			fmt.Fprintf(w, "  %s: %s\n", setting.Key, setting.Value)
		}
	}
}

const usageText = `cuniq - count the cardinality of newline-delimited lines

Usage: cuniq [flags] [FILES...]

Flags:
  -c, --report              emit per-line occurrence report (Exact mode only)
  -s, --sort                sort the report by line bytes
  -t, --trim                trim ASCII whitespace from each line
  -l, --lower                lowercase ASCII bytes of each line
  -m, --mode <mode>          exact|near-exact|estimate (default exact)
  -n, --size <n>             capacity hint / HyperLogLog register count
      --threads <n>          accepted, ignored
      --no-stdin             skip stdin even if piped
      --memmap               force memory-map I/O
      --no-memmap            force buffered I/O
  -o, --output <file>        write result to file instead of stdout
  -i, --interactive          interactive REPL mode
  -C, --config <file>        load default flag values from a HuJSON file
      --version              print version information
  -h, --help                 show this help
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

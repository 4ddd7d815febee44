package cli

import (
	"strings"

	flag "github.com/spf13/pflag"
)

// mode names the three estimator families selectable via --mode.
type mode string

const (
	modeExact     mode = "exact"
	modeNearExact mode = "near-exact"
	modeEstimate  mode = "estimate"
)

// options holds every parsed flag plus the positional file arguments.
type options struct {
	report      bool
	sort        bool
	trim        bool
	lower       bool
	mode        mode
	size        uint64
	threads     uint
	noStdin     bool
	memmap      bool
	noMemmap    bool
	output      string
	interactive bool
	configPath  string
	version     bool
	help        bool
	files       []string
}

// parseFlags builds a fresh pflag.FlagSet (fresh per invocation, matching
// the teacher's pattern of never reusing a FlagSet across runs so tests
// can call Run repeatedly without leaking registered-flag state) and
// parses args into an *options.
func parseFlags(args []string) (*options, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("cuniq", flag.ContinueOnError)
	fs.SetInterspersed(true)
	fs.Usage = func() {}
	fs.SetOutput(&strings.Builder{})

	opts := &options{}

	fs.BoolVarP(&opts.report, "report", "c", false, "emit per-line occurrence report (Exact mode only)")
	fs.BoolVarP(&opts.sort, "sort", "s", false, "sort the report by line bytes")
	fs.BoolVarP(&opts.trim, "trim", "t", false, "trim ASCII whitespace from each line")
	fs.BoolVarP(&opts.lower, "lower", "l", false, "lowercase ASCII bytes of each line")

	var modeStr string

	fs.StringVarP(&modeStr, "mode", "m", string(modeExact), "estimator: exact|near-exact|estimate")
	fs.Uint64VarP(&opts.size, "size", "n", 0, "Exact/NearExact capacity hint, or HyperLogLog register count")
	fs.UintVar(&opts.threads, "threads", 0, "accepted, ignored by the counting engine")
	fs.BoolVar(&opts.noStdin, "no-stdin", false, "skip stdin even if piped")
	fs.BoolVar(&opts.memmap, "memmap", false, "force memory-map I/O; error if unsupported")
	fs.BoolVar(&opts.noMemmap, "no-memmap", false, "force buffered I/O")
	fs.StringVarP(&opts.output, "output", "o", "", "write result to `file` instead of stdout, atomically")
	fs.BoolVarP(&opts.interactive, "interactive", "i", false, "interactive REPL: count lines typed at a prompt")
	fs.StringVarP(&opts.configPath, "config", "C", "", "load default flag values from `file` (HuJSON)")
	fs.BoolVar(&opts.version, "version", false, "print version information")
	fs.BoolVarP(&opts.help, "help", "h", false, "show help")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}

	opts.mode = mode(modeStr)
	opts.files = fs.Args()

	return opts, fs, nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version is injected at build-time with
// -ldflags="-X github.com/a2y-d5l/linegrep/internal/config.Version=$(git describe --tags --always --dirty)"
var Version = "dev"

// EnvConfigFile names the environment variable consulted when -config is absent.
const EnvConfigFile = "LINEGREP_CONFIG"

// Config captures all user-tunable knobs.
type Config struct {
	ShowLineNumber  bool
	FileNameOnly    bool
	CaseInsensitive bool
	InvertMode      bool
	EntireLineOnly  bool

	Pattern string
	Files   []string

	MaxProcs int
	// Output modes
	NullTerm  bool
	JSONLines bool

	Verbose    bool
	ConfigFile string
}

var (
	errNoPattern = errors.New("pattern is required")
	errNoFiles   = errors.New("at least one file is required")
)

// boolShorts are the single-letter switches that may be combined, as in -nix.
const boolShorts = "nlivx0"

// ParseFlags populates Config from args (without the program name).
// Pass stdout so that -help is POSIX-friendly.
func ParseFlags(stdout io.Writer, args []string) (*Config, error) {
	args = expandArgs(args)

	cfgPath := configPath(args)
	var def Defaults
	if cfgPath != "" {
		d, err := LoadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		def = *d
	}
	if def.MaxProcs <= 0 {
		def.MaxProcs = runtime.NumCPU() * 4
	}

	fs := flag.NewFlagSet("linegrep", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: linegrep [flags] PATTERN FILE...")
		fs.PrintDefaults()
	}

	var (
		lineNumber = fs.Bool("n", def.LineNumber, "prefix each matching line with its line number")
		nameOnly   = fs.Bool("l", def.FileNameOnly, "print only the names of files with at least one matching line")
		ignoreCase = fs.Bool("i", def.CaseInsensitive, "match using an ASCII case-insensitive comparison")
		invert     = fs.Bool("v", def.Invert, "print lines that fail to match instead of matching ones")
		entire     = fs.Bool("x", def.EntireLine, "only match lines equal to the pattern")

		maxProcs = fs.Int("max-procs", def.MaxProcs, "maximum files scanned concurrently")
		nullTerm = fs.Bool("0", def.NullTerm, "NUL-terminate each record (for xargs -0)")
		jsonl    = fs.Bool("jsonl", def.JSONLines, "output newline-delimited JSON records")
		verbose  = fs.Bool("verbose", def.Verbose, "enable verbose logging")

		_ = fs.String("config", cfgPath, "YAML file with flag defaults (env "+EnvConfigFile+")")

		showVer = fs.Bool("version", false, "print linegrep version and exit")
	)

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return nil, err
	}

	if *showVer {
		_, _ = io.WriteString(stdout, "linegrep "+Version+"\n")
		return nil, flag.ErrHelp
	}

	if len(positional) == 0 {
		fs.Usage()
		return nil, errNoPattern
	}
	if len(positional) == 1 {
		fs.Usage()
		return nil, errNoFiles
	}

	if *nullTerm && *jsonl {
		return nil, errors.New("flags -0 and -jsonl are mutually exclusive")
	}
	if *maxProcs < 1 {
		return nil, fmt.Errorf("-max-procs must be at least 1, got %d", *maxProcs)
	}

	return &Config{
		ShowLineNumber:  *lineNumber,
		FileNameOnly:    *nameOnly,
		CaseInsensitive: *ignoreCase,
		InvertMode:      *invert,
		EntireLineOnly:  *entire,
		Pattern:         positional[0],
		Files:           positional[1:],
		MaxProcs:        *maxProcs,
		NullTerm:        *nullTerm,
		JSONLines:       *jsonl,
		Verbose:         *verbose,
		ConfigFile:      cfgPath,
	}, nil
}

// parseInterspersed lets switches follow positionals, so that
// "linegrep foo -n a.txt" works. Everything after "--" is positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		consumed := args[:len(args)-len(rest)]
		if n := len(consumed); n > 0 && consumed[n-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// --- helpers -----------------------------------------------------------------

// expandArgs splits combined boolean switches: -nix becomes -n -i -x.
// Anything else (long flags, values, positionals) passes through.
func expandArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && allShorts(a[1:]) {
			for _, c := range a[1:] {
				out = append(out, "-"+string(c))
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

func allShorts(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(boolShorts, c) {
			return false
		}
	}
	return true
}

// configPath finds the -config value ahead of the real parse, because the
// file supplies the flag defaults. Falls back to the environment.
func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		name := strings.TrimLeft(a, "-")
		if len(name) == len(a) {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv(EnvConfigFile)
}

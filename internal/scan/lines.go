package scan

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/a2y-d5l/linegrep/internal/config"
	"github.com/a2y-d5l/linegrep/internal/match"
)

// File returns the records contributed by the file at path. A file that
// cannot be opened contributes nothing; the failure is deliberately not
// reported.
func File(path string, m *match.Matcher, cfg *config.Config) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return Lines(f, path, m, cfg)
}

// Lines classifies every line of r and formats the records to emit.
// name is reported in filename-only mode, which fires on the first hit
// even when inverting.
//
// Only the trailing '\n' is stripped, so a '\r' before it stays part of the
// line. A final line without a newline is still read. A read error ends
// the input with whatever was collected so far.
func Lines(r io.Reader, name string, m *match.Matcher, cfg *config.Config) []string {
	var out []string
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return out
		}
		line = strings.TrimSuffix(line, "\n")

		switch m.Decide(line) {
		case match.Hit:
			if cfg.FileNameOnly {
				return append(out, name)
			}
			if !cfg.InvertMode {
				if cfg.ShowLineNumber {
					line = strconv.Itoa(n) + ":" + line
				}
				out = append(out, line)
			}
		case match.Inverted:
			// Non-matching lines are emitted raw: no line number and no
			// filename collapse, whatever -n and -l say.
			out = append(out, line)
		}

		if err == io.EOF {
			return out
		}
	}
}

// matcherFor builds the line matcher for cfg.
func matcherFor(cfg *config.Config) *match.Matcher {
	return match.New(match.Options{
		CaseInsensitive: cfg.CaseInsensitive,
		InvertMode:      cfg.InvertMode,
		EntireLineOnly:  cfg.EntireLineOnly,
	}, cfg.Pattern)
}

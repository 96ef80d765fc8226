package match

import "strings"

// Verdict is the outcome of testing one line against the pattern.
type Verdict int

const (
	// Skip means the line contributes nothing.
	Skip Verdict = iota
	// Hit means the line satisfies the match predicate. It is reported in
	// invert mode too; the caller decides whether a hit is emitted.
	Hit
	// Inverted means the line failed the predicate and invert mode is on.
	Inverted
)

func (v Verdict) String() string {
	switch v {
	case Hit:
		return "hit"
	case Inverted:
		return "inverted"
	default:
		return "skip"
	}
}

// Options are the flags that influence the decision. Output formatting
// flags (line numbers, filename-only) are applied by the caller.
type Options struct {
	CaseInsensitive bool
	InvertMode      bool
	EntireLineOnly  bool
}

// Decide reports what to do with line given pattern and opts.
func Decide(opts Options, pattern, line string) Verdict {
	if opts.CaseInsensitive {
		pattern = FoldASCII(pattern)
	}
	return decide(opts, pattern, line)
}

func decide(opts Options, pattern, line string) Verdict {
	if opts.CaseInsensitive {
		line = FoldASCII(line)
	}

	var hit bool
	if opts.EntireLineOnly {
		hit = line == pattern
	} else {
		hit = strings.Contains(line, pattern)
	}

	switch {
	case hit:
		return Hit
	case opts.InvertMode:
		return Inverted
	default:
		return Skip
	}
}

// Matcher holds a pattern folded once for repeated decisions.
type Matcher struct {
	opts    Options
	pattern string
}

func New(opts Options, pattern string) *Matcher {
	if opts.CaseInsensitive {
		pattern = FoldASCII(pattern)
	}
	return &Matcher{opts: opts, pattern: pattern}
}

// Decide is Decide(m.opts, pattern, line) without refolding the pattern.
func (m *Matcher) Decide(line string) Verdict {
	return decide(m.opts, m.pattern, line)
}

// --- helpers -----------------------------------------------------------------

// FoldASCII lowercases A-Z and leaves every other byte untouched.
func FoldASCII(s string) string {
	i := 0
	for ; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			break
		}
	}
	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		if 'A' <= b[i] && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

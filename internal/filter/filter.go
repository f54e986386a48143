package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

const (
	keywordAll     = "all"
	keywordMixdown = "mixdown"
)

// Candidate is the item a filter is evaluated against. Takes use only
// Index; tracks carry their name and whether that name denotes a mixdown.
type Candidate struct {
	Index   int
	Name    string
	Mixdown bool
}

// Filter is a compiled expression. The zero value is inactive and includes
// every candidate.
type Filter struct {
	active bool
	tokens []Token
}

// All returns a filter that includes every candidate.
func All() Filter {
	return Filter{}
}

// Parse compiles expr. An empty expression is active but has no tokens, so
// it excludes every candidate.
func Parse(expr string) Filter {
	return Filter{active: true, tokens: Tokenize(expr)}
}

// FromOptional compiles expr when set is true and returns All otherwise.
func FromOptional(expr string, set bool) Filter {
	if !set {
		return All()
	}
	return Parse(expr)
}

// Active reports whether the filter restricts anything.
func (f Filter) Active() bool {
	return f.active
}

func (f Filter) String() string {
	if !f.active {
		return keywordAll
	}
	return Join(f.tokens)
}

// Includes evaluates the filter for one candidate. Every token overwrites
// the running result with matched != invert, so the last token decides.
func (f Filter) Includes(c Candidate) bool {
	if !f.active {
		return true
	}
	included := false
	for _, token := range f.tokens {
		included = token.Matches(c) != token.Invert
	}
	return included
}

// Evaluate is the one-shot form of Parse(expr).Includes(c); a nil expression
// includes everything.
func Evaluate(expr *string, c Candidate) bool {
	if expr == nil {
		return true
	}
	return Parse(*expr).Includes(c)
}

// Matches reports whether the token, ignoring its invert flag, selects c.
func (t Token) Matches(c Candidate) bool {
	switch t.Kind {
	case KindRange:
		return c.Index >= t.Low && c.Index <= t.High
	case KindNumber:
		return c.Index == t.Low
	case KindWord:
		switch cases.Fold().String(t.Word) {
		case keywordAll:
			return true
		case keywordMixdown:
			return c.Mixdown
		}
		return c.Name != "" && strings.Contains(c.Name, t.Word)
	default:
		return false
	}
}

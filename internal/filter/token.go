package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the token variant.
type Kind int

const (
	KindRange Kind = iota
	KindNumber
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindNumber:
		return "number"
	case KindWord:
		return "word"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Token is one parsed filter term.
type Token struct {
	Kind   Kind
	Invert bool
	// Low and High bound a range; a number sets both to its value.
	Low  int
	High int
	Word string
}

func (t Token) String() string {
	prefix := ""
	if t.Invert {
		prefix = "!"
	}
	switch t.Kind {
	case KindRange:
		return fmt.Sprintf("%s%d-%d", prefix, t.Low, t.High)
	case KindNumber:
		return prefix + strconv.Itoa(t.Low)
	default:
		return prefix + t.Word
	}
}

// Tokenize scans expr left to right. At each position it tries, in order, a
// range, a number, and a word, each with an optional "!" prefix; positions
// that start none of them are skipped. A number takes every consecutive
// digit, so "10" is one token and "--tracks 10" selects MixR.
func Tokenize(expr string) []Token {
	var tokens []Token
	for pos := 0; pos < len(expr); {
		token, next, ok := scanToken(expr, pos)
		if !ok {
			pos++
			continue
		}
		tokens = append(tokens, token)
		pos = next
	}
	return tokens
}

func scanToken(expr string, pos int) (Token, int, bool) {
	invert := false
	start := pos
	if expr[pos] == '!' {
		invert = true
		start++
	}
	if start >= len(expr) {
		return Token{}, 0, false
	}

	if end := scanDigits(expr, start); end > start {
		if end < len(expr) && expr[end] == '-' {
			if rangeEnd := scanDigits(expr, end+1); rangeEnd > end+1 {
				low, errLow := strconv.Atoi(expr[start:end])
				high, errHigh := strconv.Atoi(expr[end+1 : rangeEnd])
				if errLow == nil && errHigh == nil {
					return Token{Kind: KindRange, Invert: invert, Low: low, High: high}, rangeEnd, true
				}
			}
		}
		if value, err := strconv.Atoi(expr[start:end]); err == nil {
			return Token{Kind: KindNumber, Invert: invert, Low: value, High: value}, end, true
		}
	}

	if end := scanWord(expr, start); end > start {
		return Token{Kind: KindWord, Invert: invert, Word: expr[start:end]}, end, true
	}
	return Token{}, 0, false
}

func scanDigits(expr string, pos int) int {
	for pos < len(expr) && isDigit(expr[pos]) {
		pos++
	}
	return pos
}

func scanWord(expr string, pos int) int {
	for pos < len(expr) && isWordByte(expr[pos]) {
		pos++
	}
	return pos
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWordByte(b byte) bool {
	switch {
	case isDigit(b):
		return true
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	case b == '-' || b == '_':
		return true
	default:
		return false
	}
}

// Join renders tokens back to a canonical comma-separated expression.
func Join(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, token := range tokens {
		parts[i] = token.String()
	}
	return strings.Join(parts, ",")
}

// Package parse prepares raw command lines for grammar matching.
package parse

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Substitution maps the opaque keys produced by Substitute back to the
// quoted text they replaced. It belongs to a single line.
type Substitution struct {
	values   map[string]string
	replacer *strings.Replacer
}

// Substitute replaces every quoted span of line with a fresh opaque key so
// the span is matched as a single whitespace-free token. A span holding a
// plain word is unquoted in place instead, so "deploy" still matches a route.
// Double-quoted spans honour backslash escapes; single-quoted spans are taken
// verbatim. An unterminated quote is left untouched.
func Substitute(line string) (string, *Substitution) {
	s := &Substitution{values: map[string]string{}}

	var out strings.Builder
	for i := 0; i < len(line); {
		c := line[i]
		if c != '"' && c != '\'' {
			out.WriteByte(c)
			i++
			continue
		}

		value, end, ok := quoted(line, i)
		if !ok {
			out.WriteString(line[i:])
			break
		}

		i = end + 1
		if plainWord(value) {
			out.WriteString(value)
			continue
		}

		key := newKey()
		s.values[key] = value
		out.WriteString(key)
	}

	return out.String(), s
}

// Resolve returns the original text for key. Keys embedded in a larger token
// are replaced in place; any other text is returned unchanged.
func (s *Substitution) Resolve(text string) string {
	if s == nil || len(s.values) == 0 {
		return text
	}
	if v, ok := s.values[text]; ok {
		return v
	}
	if !strings.Contains(text, keyPrefix) {
		return text
	}

	if s.replacer == nil {
		pairs := make([]string, 0, len(s.values)*2)
		for k, v := range s.values {
			pairs = append(pairs, k, v)
		}
		s.replacer = strings.NewReplacer(pairs...)
	}

	return s.replacer.Replace(text)
}

// Len returns the number of substituted spans.
func (s *Substitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

const keyPrefix = "qx"

func newKey() string {
	return keyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// quoted reads the quoted span starting at line[start] and returns its
// unquoted value and the index of the closing quote.
func quoted(line string, start int) (string, int, bool) {
	q := line[start]
	var sb strings.Builder
	for i := start + 1; i < len(line); i++ {
		c := line[i]
		switch {
		case c == q:
			return sb.String(), i, true
		case c == '\\' && q == '"' && i+1 < len(line) && (line[i+1] == '"' || line[i+1] == '\\'):
			sb.WriteByte(line[i+1])
			i++
		default:
			sb.WriteByte(c)
		}
	}

	return "", -1, false
}

// plainWord reports whether s reads the same with or without quotes. Words
// starting with a dash stay opaque so they are never taken for an option.
func plainWord(s string) bool {
	if s == "" || s[0] == '-' || strings.HasPrefix(s, keyPrefix) {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_-./:@+,", r) {
			return false
		}
	}

	return true
}

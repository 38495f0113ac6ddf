// Package pattern provides helpers for composing regular expression fragments
// into larger grammars.
//
// Fragments use the .NET-compatible dialect of github.com/dlclark/regexp2,
// which supports lookbehind assertions, named groups and capture stacks for
// repeated groups. All helpers are pure and idempotent.
package pattern

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/pgup/dispatch/errs"
)

// DefaultMatchTimeout bounds a single match attempt of a compiled grammar.
const DefaultMatchTimeout = 250 * time.Millisecond

var groupName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type groupKind int

const (
	notGrouped groupKind = iota
	nonCapturing
	numbered
	named
)

// Validate reports whether p compiles.
func Validate(p string) error {
	if _, err := regexp2.Compile(p, regexp2.None); err != nil {
		return errs.ErrInvalidPattern.WithArgs(p).Wrap(err)
	}

	return nil
}

// EnsureNonCapturingGroup wraps p in a non-capturing group unless p is
// already a single group spanning the whole fragment.
func EnsureNonCapturingGroup(p string) (string, error) {
	if err := Validate(p); err != nil {
		return "", err
	}

	if kind, _ := outerGroup(p); kind != notGrouped {
		return p, nil
	}

	return "(?:" + p + ")", nil
}

// EnsureNamedGroup makes p a group named name. A whole-fragment group is
// relabelled, anything else is wrapped.
func EnsureNamedGroup(p, name string) (string, error) {
	if !groupName.MatchString(name) {
		return "", errs.ErrInvalidPattern.WithArgs("(?<" + name + ">)")
	}
	if err := Validate(p); err != nil {
		return "", err
	}

	kind, body := outerGroup(p)
	if kind == notGrouped {
		body = p
	}

	return "(?<" + name + ">" + body + ")", nil
}

// RemoveWhitespace strips every Unicode whitespace rune from text.
func RemoveWhitespace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}

// Alternation returns a non-capturing alternation of the literal alternatives,
// in the order given.
func Alternation(alternatives []string) string {
	quoted := make([]string, len(alternatives))
	for i, a := range alternatives {
		quoted[i] = regexp2.Escape(a)
	}

	return "(?:" + strings.Join(quoted, "|") + ")"
}

// Compile compiles a case-insensitive grammar bounded by matchTimeout.
func Compile(expr string, matchTimeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(expr, regexp2.IgnoreCase)
	if err != nil {
		return nil, errs.ErrInvalidPattern.WithArgs(expr).Wrap(err)
	}
	if matchTimeout <= 0 {
		matchTimeout = DefaultMatchTimeout
	}
	re.MatchTimeout = matchTimeout

	return re, nil
}

// outerGroup classifies p when its first opening parenthesis closes on its
// last rune, returning the group body. Lookarounds, atomic groups and inline
// option groups do not count as groups.
func outerGroup(p string) (groupKind, string) {
	if len(p) < 2 || p[0] != '(' || p[len(p)-1] != ')' {
		return notGrouped, ""
	}
	if closing(p) != len(p)-1 {
		return notGrouped, ""
	}

	inner := p[1 : len(p)-1]
	if !strings.HasPrefix(inner, "?") {
		return numbered, inner
	}

	switch {
	case strings.HasPrefix(inner, "?:"):
		return nonCapturing, inner[2:]
	case strings.HasPrefix(inner, "?<=") || strings.HasPrefix(inner, "?<!"):
		return notGrouped, ""
	case strings.HasPrefix(inner, "?<"), strings.HasPrefix(inner, "?P<"):
		if end := strings.IndexByte(inner, '>'); end > 0 {
			return named, inner[end+1:]
		}
	case strings.HasPrefix(inner, "?'"):
		if end := strings.IndexByte(inner[2:], '\''); end >= 0 {
			return named, inner[end+3:]
		}
	}

	return notGrouped, ""
}

// closing returns the index of the parenthesis closing the one at index 0,
// skipping escapes and character classes, or -1.
func closing(p string) int {
	depth := 0
	inClass := false
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// a ']' directly after '[' or '[^' is literal
			if i+1 < len(p) && p[i+1] == '^' {
				i++
			}
			if i+1 < len(p) && p[i+1] == ']' {
				i++
			}
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

package segment

import (
	"errors"

	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/pattern"
)

// Kind tells route segments and argument segments apart.
type Kind int

const (
	KindRoute Kind = iota
	KindArgument
)

// Segment is a positional element of a command: a literal route or an argument.
type Segment interface {
	Kind() Kind
	Name() string
}

// Route is a literal command token with its aliases.
type Route struct {
	aliases AliasSet
	pattern string
}

// NewRoute parses spec as word(|word)*, where a word starts with a letter or
// digit followed by letters, digits, '-' or '_'. Whitespace is ignored.
func NewRoute(spec string) (*Route, error) {
	aliases, part, err := parseAliases(spec, func(s string) (string, bool) {
		return s, word.MatchString(s)
	})
	switch {
	case errors.Is(err, errDuplicate):
		return nil, errs.ErrInvalidRouteSpec.WithArgs(spec).Wrap(errs.ErrDuplicateAlias.WithArgs(part, spec))
	case err != nil:
		return nil, errs.ErrInvalidRouteSpec.WithArgs(spec)
	}

	return &Route{
		aliases: aliases,
		pattern: pattern.Alternation(aliases) + `(?=\s|$)`,
	}, nil
}

// Kind returns KindRoute.
func (r *Route) Kind() Kind { return KindRoute }

// Name returns the preferred alias.
func (r *Route) Name() string { return r.aliases.Primary() }

// Aliases returns the ordered aliases.
func (r *Route) Aliases() AliasSet { return r.aliases }

// Pattern returns the alternation of the aliases, bounded by whitespace or
// the end of the line.
func (r *Route) Pattern() string { return r.pattern }

// Matches reports whether token is one of the aliases.
func (r *Route) Matches(token string) bool { return r.aliases.Contains(token) }

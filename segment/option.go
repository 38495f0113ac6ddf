package segment

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/pattern"
	"github.com/pgup/dispatch/types"
)

// ReservedAliases are the option names kept for help requests.
var ReservedAliases = AliasSet{"help", "h", "?"}

// Option is a named option with its aliases and cardinality.
type Option struct {
	aliases      AliasSet
	markers      []string
	cardinality  types.Cardinality
	required     bool
	description  string
	defaultValue string
}

// OptionConfig holds the settings applied to an option at construction.
type OptionConfig struct {
	Cardinality  types.Cardinality
	Required     bool
	Description  string
	DefaultValue string
}

// NewOption parses spec as alias(|alias)*. Leading dashes are optional: a one
// rune alias renders as -a and a longer one as --alias unless the dashes are
// spelled out.
func NewOption(spec string, cfg OptionConfig) (*Option, error) {
	markers := map[string]string{}
	var reserved string
	aliases, part, err := parseAliases(spec, func(s string) (string, bool) {
		name := strings.TrimLeft(s, "-")
		dashes := len(s) - len(name)
		if dashes > 2 {
			return "", false
		}
		if ReservedAliases.Contains(name) {
			reserved = name
			return "", false
		}
		if !word.MatchString(name) {
			return "", false
		}

		switch {
		case dashes > 0:
			markers[fold(name)] = s
		case utf8.RuneCountInString(name) == 1:
			markers[fold(name)] = "-" + name
		default:
			markers[fold(name)] = "--" + name
		}

		return name, true
	})
	switch {
	case reserved != "":
		return nil, errs.ErrInvalidOptionSpec.WithArgs(spec).Wrap(errs.ErrReservedAlias.WithArgs(reserved))
	case errors.Is(err, errDuplicate):
		return nil, errs.ErrInvalidOptionSpec.WithArgs(spec).Wrap(errs.ErrDuplicateAlias.WithArgs(part, spec))
	case err != nil:
		return nil, errs.ErrInvalidOptionSpec.WithArgs(spec)
	}

	o := &Option{
		aliases:      aliases,
		markers:      make([]string, len(aliases)),
		cardinality:  cfg.Cardinality,
		required:     cfg.Required,
		description:  cfg.Description,
		defaultValue: cfg.DefaultValue,
	}
	for i, a := range aliases {
		o.markers[i] = markers[fold(a)]
	}

	return o, nil
}

// Name returns the preferred alias without dashes.
func (o *Option) Name() string { return o.aliases.Primary() }

// Aliases returns the aliases without dashes.
func (o *Option) Aliases() AliasSet { return o.aliases }

// Markers returns the aliases as typed on the command line, in alias order.
func (o *Option) Markers() []string { return o.markers }

// Cardinality returns the shape of values the option accepts.
func (o *Option) Cardinality() types.Cardinality { return o.cardinality }

// Required reports whether the option must be present.
func (o *Option) Required() bool { return o.required }

// Description returns the help text.
func (o *Option) Description() string { return o.description }

// DefaultValue returns the textual default shown in help, if any.
func (o *Option) DefaultValue() string { return o.defaultValue }

// Matches reports whether token is one of the markers.
func (o *Option) Matches(token string) bool {
	for _, m := range o.markers {
		if strings.EqualFold(m, token) {
			return true
		}
	}

	return false
}

// Group names of the option at index i within a command grammar.
func PresenceGroup(i int) string { return fmt.Sprintf("o%d", i) }
func ValueGroup(i int) string    { return fmt.Sprintf("v%d", i) }
func KeyGroup(i int) string      { return fmt.Sprintf("k%d", i) }

const (
	valueTail = `(?:=\S*|\s+(?!-)\S+)?`
	boundary  = `(?=\s|$)`
)

// Pattern returns the grammar of one occurrence of the option at index i.
// Every occurrence writes into the same groups so repeated values accumulate
// in order.
func (o *Option) Pattern(i int) string {
	marker := "(?<" + PresenceGroup(i) + ">" + pattern.Alternation(o.markers) + ")"
	value := "(?<" + ValueGroup(i) + ">" + valueTail + ")"

	switch o.cardinality {
	case types.Flag:
		return marker + "(?<" + ValueGroup(i) + ">(?:=(?:true|false))?)" + boundary
	case types.Map:
		key := `(?<` + KeyGroup(i) + `>\.[^\s=.\[\]]+|\[[^\s\]]+\])`
		return marker + key + value + boundary
	default:
		return marker + value + boundary
	}
}

// RequirePattern returns a lookahead asserting the option occurs somewhere
// in the line.
func (o *Option) RequirePattern() string {
	return `(?=(?:.*\s)?` + pattern.Alternation(o.markers) + `(?=[\s=.\[]|$))`
}

// Value strips the separator from a captured value.
func Value(capture string) string {
	if strings.HasPrefix(capture, "=") {
		return capture[1:]
	}

	return strings.TrimLeft(capture, " \t\r\n")
}

// Key strips the accessor syntax from a captured map key.
func Key(capture string) string {
	switch {
	case strings.HasPrefix(capture, "."):
		return capture[1:]
	case strings.HasPrefix(capture, "[") && strings.HasSuffix(capture, "]"):
		return capture[1 : len(capture)-1]
	default:
		return capture
	}
}

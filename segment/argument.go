package segment

import (
	"regexp"
	"strings"

	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/pattern"
)

var argumentName = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_-]*$`)

// Argument is a named positional slot.
type Argument struct {
	name        string
	description string
	position    int
	optional    bool
}

// NewArgument creates an argument at the given zero-based position among the
// command's segments.
func NewArgument(name, description string, position int, optional bool) (*Argument, error) {
	if !argumentName.MatchString(name) {
		return nil, errs.ErrInvalidArgumentName.WithArgs(name)
	}

	return &Argument{
		name:        name,
		description: description,
		position:    position,
		optional:    optional,
	}, nil
}

// Kind returns KindArgument.
func (a *Argument) Kind() Kind { return KindArgument }

// Name returns the argument name.
func (a *Argument) Name() string { return a.name }

// Description returns the help text.
func (a *Argument) Description() string { return a.description }

// Position returns the index of the argument among the command's segments.
func (a *Argument) Position() int { return a.position }

// Optional reports whether the argument may be omitted.
func (a *Argument) Optional() bool { return a.optional }

// Pattern returns the grammar of the argument captured into group. The token
// must follow whitespace, must not look like an option marker and must not be
// one of the sibling routes that compete for the same position.
func (a *Argument) Pattern(group string, siblings AliasSet) string {
	var sb strings.Builder
	sb.WriteString(`(?<=\s)`)
	if len(siblings) > 0 {
		sb.WriteString(`(?!`)
		sb.WriteString(pattern.Alternation(siblings))
		sb.WriteString(`(?=\s|$))`)
	}
	sb.WriteString(`(?!-)(?<`)
	sb.WriteString(group)
	sb.WriteString(`>\S+)`)

	return sb.String()
}

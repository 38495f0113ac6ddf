// Package completion generates shell completion scripts from a dispatch
// registry's commands.
package completion

import (
	"strings"

	"github.com/pgup/dispatch/errs"
)

var (
	ErrUnsupportedShell   = errs.ErrUnsupportedShell
	ErrNoCompletionScript = errs.ErrNoCompletionScript
	ErrCompletionPath     = errs.ErrCompletionPath
)

// Generator renders a completion script for one shell.
type Generator interface {
	Generate(programName string, data Data) string
}

var generators = map[string]Generator{
	"bash":       &BashGenerator{},
	"zsh":        &ZshGenerator{},
	"fish":       &FishGenerator{},
	"powershell": &PowerShellGenerator{},
}

// Shells returns the supported shell names.
func Shells() []string {
	return []string{"bash", "zsh", "fish", "powershell"}
}

// GeneratorFor returns the generator of shell.
func GeneratorFor(shell string) (Generator, error) {
	g, ok := generators[strings.ToLower(shell)]
	if !ok {
		return nil, ErrUnsupportedShell.WithArgs(shell)
	}

	return g, nil
}

// Flag is an option marker completable after a command path.
type Flag struct {
	Long        string // without leading dashes
	Short       string // single rune, without leading dash
	Description string
	TakesValue  bool
}

// Names returns the dashed markers of the flag, long form first.
func (f Flag) Names() []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}

	return names
}

// Command is a completable route path, e.g. []string{"db", "migrate"}.
type Command struct {
	Path        []string
	Description string
	Flags       []Flag
}

// Name returns the space separated route path.
func (c Command) Name() string {
	return strings.Join(c.Path, " ")
}

// Data holds every command of a program in registration order.
type Data struct {
	Commands []Command
}

// Add merges cmd into d. Commands sharing a path share their flags.
func (d *Data) Add(cmd Command) {
	name := cmd.Name()
	for i := range d.Commands {
		if d.Commands[i].Name() != name {
			continue
		}
		existing := &d.Commands[i]
		if existing.Description == "" {
			existing.Description = cmd.Description
		}
		for _, f := range cmd.Flags {
			if !existing.hasFlag(f) {
				existing.Flags = append(existing.Flags, f)
			}
		}
		return
	}

	d.Commands = append(d.Commands, cmd)
}

// Children returns the distinct next route words after prefix.
func (d Data) Children(prefix []string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, c := range d.Commands {
		if len(c.Path) <= len(prefix) || !hasPrefix(c.Path, prefix) {
			continue
		}
		w := c.Path[len(prefix)]
		if !seen[w] {
			seen[w] = true
			words = append(words, w)
		}
	}

	return words
}

// Prefixes returns every distinct route prefix, shortest first, including
// the empty root prefix.
func (d Data) Prefixes() [][]string {
	prefixes := [][]string{nil}
	seen := map[string]bool{"": true}
	for depth := 1; ; depth++ {
		grew := false
		for _, c := range d.Commands {
			if len(c.Path) < depth {
				continue
			}
			key := strings.Join(c.Path[:depth], " ")
			if seen[key] {
				continue
			}
			seen[key] = true
			grew     = true
			prefixes = append(prefixes, c.Path[:depth])
		}
		if !grew {
			return prefixes
		}
	}
}

func (d Data) lookup(path []string) (Command, bool) {
	name := strings.Join(path, " ")
	for _, c := range d.Commands {
		if c.Name() == name {
			return c, true
		}
	}

	return Command{}, false
}

func (c Command) hasFlag(f Flag) bool {
	for _, existing := range c.Flags {
		if existing.Long == f.Long && existing.Short == f.Short {
			return true
		}
	}

	return false
}

func hasPrefix(path, prefix []string) bool {
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}

	return true
}

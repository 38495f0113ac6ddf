package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/pgup/dispatch/i18n"
	"github.com/pgup/dispatch/internal/ctxlog"
	"github.com/pgup/dispatch/parse"
	"github.com/pgup/dispatch/pattern"
	"github.com/pgup/dispatch/segment"
)

// NewRegistry builds the model of every registered command. All
// configuration errors are collected and returned together; the registry is
// nil when any command is invalid.
//
// Example:
//
//	registry, err := NewRegistry(
//		WithProgramName("pgup"),
//		WithCommand(func() Handler { return &DeployCommand{} }),
//		WithCommand(func() Handler { return &ListCommand{} }))
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		programName:  filepath.Base(os.Args[0]),
		matchTimeout: pattern.DefaultMatchTimeout,
		placeholder:  DefaultPlaceholderConverter,
		messages:     i18n.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.renderer == nil {
		r.renderer = NewRenderer(r)
	}

	var result *multierror.Error
	signatures := map[string]bool{}
	ids := map[string]int{}
	tree := newCommandTree()
	for i, factory := range r.factories {
		c, err := newCommand(i, factory)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		sig := c.signature()
		if signatures[sig] {
			r.log().Debug("skipping identical registration", "command", c.ID(), "index", i)
			continue
		}
		signatures[sig] = true

		base := c.id
		if n := ids[base]; n > 0 {
			c.id = fmt.Sprintf("%s#%d", base, n+1)
		}
		ids[base]++

		if err := tree.insert(c); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		r.commands = append(r.commands, c)
	}

	for _, c := range r.commands {
		cmd := c
		if err := cmd.compile(func(position int) segment.AliasSet { return tree.siblings(cmd, position) }, r.matchTimeout); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return r, nil
}

// Commands returns the command models in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)

	return out
}

// Command returns the command with the given ID.
func (r *Registry) Command(id string) (*Command, bool) {
	for _, c := range r.commands {
		if c.id == id {
			return c, true
		}
	}

	return nil, false
}

// ProgramName returns the name used in usage output.
func (r *Registry) ProgramName() string {
	return r.programName
}

// IsMatch reports whether any command grammar matches line.
func (r *Registry) IsMatch(line string) bool {
	rewritten, _ := parse.Substitute(line)
	return len(r.match(context.Background(), rewritten)) > 0
}

// Dispatch handles one line: it prints help, reports an unknown or ambiguous
// line, or runs the best matching command.
func (r *Registry) Dispatch(ctx context.Context, line string) Result {
	return r.dispatch(ctx, line, func(c *Command) HandlerFactory { return c.factory })
}

// DispatchArgs joins args, quoting any argument that holds whitespace or
// quotes, and dispatches the resulting line.
func (r *Registry) DispatchArgs(ctx context.Context, args []string) Result {
	return r.Dispatch(ctx, parse.Join(args))
}

// Run dispatches args and returns the exit code.
func (r *Registry) Run(ctx context.Context, args []string) int {
	return r.DispatchArgs(ctx, args).ExitCode
}

func (r *Registry) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}

	return ctxlog.DefaultLogger
}

package dispatch

import (
	"context"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/internal/ctxlog"
	"github.com/pgup/dispatch/parse"
)

// fakeHandler declares like the real handler so binding runs unchanged, and
// records the command it was invoked for instead of executing it.
type fakeHandler struct {
	Handler
	id    string
	calls *[]string
}

func (f *fakeHandler) Execute(ctx context.Context, call *Call) (int, error) {
	*f.calls = append(*f.calls, f.id)
	return ExitSuccess, nil
}

// fakeTable maps every command ID to a factory of fake handlers.
func (r *Registry) fakeTable(calls *[]string) map[string]HandlerFactory {
	table := make(map[string]HandlerFactory, len(r.commands))
	for _, c := range r.commands {
		cmd := c
		table[cmd.ID()] = func() Handler {
			inner := cmd.factory()
			if inner == nil {
				return nil
			}
			return &fakeHandler{Handler: inner, id: cmd.ID(), calls: calls}
		}
	}

	return table
}

// VerifyExamples dispatches every declared example against fake handlers.
// Each example must reach the command that declares it and bind without
// errors. Bundle hooks are not run.
func (r *Registry) VerifyExamples(ctx context.Context) error {
	var calls []string
	table := r.fakeTable(&calls)

	var result *multierror.Error
	for _, c := range r.commands {
		for _, e := range c.Examples() {
			line := r.stripProgramName(e.Line)
			calls = calls[:0]

			res := r.dispatchExample(ctx, line, table)
			switch {
			case res.Outcome != Dispatched || res.Err != nil || res.ExitCode != ExitSuccess:
				err := errs.ErrExampleFailed.WithArgs(e.Line, c.ID())
				if res.Err != nil {
					err = err.Wrap(res.Err)
				}
				result = multierror.Append(result, err)
			case len(calls) != 1 || calls[0] != c.ID():
				result = multierror.Append(result, errs.ErrExampleMismatch.WithArgs(e.Line, c.ID(), res.Command))
			default:
				ctxlog.Debug(ctx, "example verified", "command", c.ID(), "line", e.Line)
			}
		}
	}

	return result.ErrorOrNil()
}

// dispatchExample matches and binds like Dispatch but skips bundle hooks and
// context scoping.
func (r *Registry) dispatchExample(ctx context.Context, line string, table map[string]HandlerFactory) Result {
	if IsHelpRequest(line) {
		return Result{Outcome: HelpShown}
	}

	rewritten, sub := parse.Substitute(line)
	candidates := r.match(ctx, rewritten)
	if len(candidates) == 0 {
		return Result{Outcome: NotFound, ExitCode: ExitNotFound, Err: errs.ErrCommandNotFound.WithArgs(line)}
	}
	top := rank(candidates)
	if len(top) > 1 && r.strictTies {
		return Result{Outcome: Ambiguous, ExitCode: ExitAmbiguous, Candidates: candidateIDs(top)}
	}

	cmd := top[0].cmd
	handler := table[cmd.ID()]()
	if handler == nil {
		return Result{Outcome: Dispatched, ExitCode: ExitInternal, Command: cmd.ID(), Err: errs.ErrNilHandler.WithArgs(cmd.index)}
	}

	d := newDeclaration()
	handler.Declare(d)
	if err := cmd.verify(d); err != nil {
		return Result{Outcome: Dispatched, ExitCode: ExitInternal, Command: cmd.ID(), Err: err}
	}
	if err := cmd.bind(top[0].m, sub, d); err != nil {
		return Result{Outcome: Invalid, ExitCode: ExitUsage, Command: cmd.ID(), Err: err}
	}

	code, err := invoke(ctx, handler, &Call{Line: line, Command: cmd.ID(), Stdout: io.Discard, Stderr: io.Discard})

	return Result{Outcome: Dispatched, ExitCode: code, Command: cmd.ID(), Err: err}
}

func (r *Registry) stripProgramName(line string) string {
	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)
	if len(fields) > 0 && r.programName != "" && strings.EqualFold(fields[0], r.programName) {
		return strings.TrimSpace(trimmed[len(fields[0]):])
	}

	return trimmed
}

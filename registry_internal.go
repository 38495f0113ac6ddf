package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/i18n"
	"github.com/pgup/dispatch/internal/ctxlog"
	"github.com/pgup/dispatch/parse"
	"github.com/pgup/dispatch/segment"
	"github.com/pgup/dispatch/types"
	"golang.org/x/text/cases"
)

type candidate struct {
	cmd   *Command
	m     *regexp2.Match
	score float64
}

func (r *Registry) dispatch(ctx context.Context, line string, factoryFor func(*Command) HandlerFactory) Result {
	if r.logger != nil {
		ctx = ctxlog.New(ctx, r.logger)
	}

	if IsHelpRequest(line) {
		return r.showHelp(ctx, line)
	}

	rewritten, sub := parse.Substitute(line)
	candidates := r.match(ctx, rewritten)
	if len(candidates) == 0 {
		return r.notFound(ctx, line)
	}

	top := rank(candidates)
	if len(top) > 1 {
		ctxlog.Debug(ctx, "equally ranked commands", "line", line, "commands", candidateIDs(top), "score", top[0].score)
		if r.strictTies {
			return r.ambiguous(ctx, line, top)
		}
	}

	return r.execute(ctx, top[0], line, sub, factoryFor(top[0].cmd))
}

func (r *Registry) match(ctx context.Context, rewritten string) []candidate {
	var out []candidate
	for _, c := range r.commands {
		m, err := c.match(rewritten)
		if err != nil {
			ctxlog.Debug(ctx, "grammar match failed", "command", c.ID(), "error", err)
			continue
		}
		if m == nil {
			continue
		}
		out = append(out, candidate{cmd: c, m: m, score: c.score(m)})
	}

	return out
}

// rank orders candidates by score, then by fewest optional segments, then by
// registration order, and returns the top scoring group.
func rank(candidates []candidate) []candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.cmd.optional != b.cmd.optional {
			return a.cmd.optional < b.cmd.optional
		}
		return a.cmd.index < b.cmd.index
	})

	n := 1
	for n < len(candidates) && candidates[n].score == candidates[0].score {
		n++
	}

	return candidates[:n]
}

func (r *Registry) execute(ctx context.Context, c candidate, line string, sub *parse.Substitution, factory HandlerFactory) Result {
	cmd := c.cmd
	res := Result{Outcome: Dispatched, Command: cmd.ID()}

	var handler Handler
	if factory != nil {
		handler = factory()
	}
	if handler == nil {
		return r.internal(ctx, res, errs.ErrNilHandler.WithArgs(cmd.index))
	}

	d := newDeclaration()
	handler.Declare(d)
	if err := cmd.verify(d); err != nil {
		return r.internal(ctx, res, err)
	}

	if err := cmd.bind(c.m, sub, d); err != nil {
		ctxlog.Debug(ctx, "binding failed", "command", cmd.ID(), "error", err)
		r.printError(err)
		res.Outcome, res.ExitCode, res.Err = Invalid, ExitUsage, err
		return res
	}

	ctx, cancel := scope(ctx, d.bundles)
	defer cancel()

	if err := before(ctx, d.bundles, line); err != nil {
		return r.finish(ctx, res, cmd, d.bundles, line, 0, err)
	}

	call := &Call{Line: line, Command: cmd.ID(), Stdout: r.stdout, Stderr: r.stderr}
	code, err := invoke(ctx, handler, call)
	if err == nil {
		err = after(ctx, d.bundles, line)
	}

	return r.finish(ctx, res, cmd, d.bundles, line, code, err)
}

// finish maps the handler outcome to an exit code. Errors other than exit
// and help signals are routed through every ErrorHandler bundle first.
func (r *Registry) finish(ctx context.Context, res Result, cmd *Command, bundles []Bundle, line string, code int, err error) Result {
	if err == nil {
		res.ExitCode = code
		return res
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		res.ExitCode = exit.Code
		return res
	}
	if errors.Is(err, ErrHelpRequested) {
		r.renderCommandHelp(r.stdout, cmd)
		res.Outcome, res.ExitCode = HelpShown, ExitSuccess
		return res
	}

	for _, b := range bundles {
		if h, ok := b.(ErrorHandler); ok {
			h.OnError(ctx, line, err)
		}
	}

	res.Err = err
	res.ExitCode = code

	var user *UserError
	if errors.As(err, &user) {
		r.printError(user)
		if res.ExitCode == 0 {
			res.ExitCode = user.Code
		}
		ctxlog.Debug(ctx, "command failed", "command", cmd.ID(), "error", err)
	} else {
		r.printMessage(r.msg(errs.MsgInternalErrorKey))
		ctxlog.Error(ctx, "command failed", "command", cmd.ID(), "error", err)
	}

	if res.ExitCode == 0 && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)) {
		res.ExitCode = ExitTimeout
	}
	if res.ExitCode == 0 {
		res.ExitCode = ExitInternal
	}

	return res
}

func (r *Registry) internal(ctx context.Context, res Result, err error) Result {
	ctxlog.Error(ctx, "dispatch failed", "command", res.Command, "error", err)
	r.printMessage(r.msg(errs.MsgInternalErrorKey))
	res.ExitCode, res.Err = ExitInternal, err

	return res
}

func (r *Registry) notFound(ctx context.Context, line string) Result {
	err := errs.ErrCommandNotFound.WithArgs(strings.TrimSpace(line))
	ctxlog.Debug(ctx, "no command matched", "line", line)
	r.printError(err)

	suggestions := r.suggest(line)
	r.printCandidates(suggestions)

	return Result{Outcome: NotFound, ExitCode: ExitNotFound, Candidates: commandIDs(suggestions), Err: err}
}

func (r *Registry) ambiguous(ctx context.Context, line string, top []candidate) Result {
	err := errs.ErrAmbiguousMatch.WithArgs(len(top), strings.TrimSpace(line))
	r.printError(err)

	cmds := make([]*Command, len(top))
	for i, c := range top {
		cmds[i] = c.cmd
	}
	r.printCandidates(cmds)

	return Result{Outcome: Ambiguous, ExitCode: ExitAmbiguous, Candidates: commandIDs(cmds), Err: err}
}

// suggest returns the commands whose first route starts with the first token
// of line.
func (r *Registry) suggest(line string) []*Command {
	rewritten, _ := parse.Substitute(line)
	fields := strings.Fields(rewritten)
	if len(fields) == 0 {
		return nil
	}

	token := fold(fields[0])
	var out []*Command
	for _, c := range r.commands {
		first, ok := c.segments[0].(*segment.Route)
		if !ok {
			continue
		}
		for _, alias := range first.Aliases() {
			if strings.HasPrefix(fold(alias), token) {
				out = append(out, c)
				break
			}
		}
	}

	return out
}

func scope(ctx context.Context, bundles []Bundle) (context.Context, context.CancelFunc) {
	var cancels []context.CancelFunc
	for _, b := range bundles {
		s, ok := b.(ContextScoper)
		if !ok {
			continue
		}
		var cancel context.CancelFunc
		ctx, cancel = s.Scope(ctx)
		if cancel != nil {
			cancels = append(cancels, cancel)
		}
	}

	return ctx, func() {
		for i := len(cancels) - 1; i >= 0; i-- {
			cancels[i]()
		}
	}
}

func before(ctx context.Context, bundles []Bundle, line string) error {
	for _, b := range bundles {
		if h, ok := b.(BeforeExecuter); ok {
			if err := h.OnExecuting(ctx, line); err != nil {
				return err
			}
		}
	}

	return nil
}

func after(ctx context.Context, bundles []Bundle, line string) error {
	for _, b := range bundles {
		if h, ok := b.(AfterExecuter); ok {
			if err := h.OnExecuted(ctx, line); err != nil {
				return err
			}
		}
	}

	return nil
}

func invoke(ctx context.Context, h Handler, call *Call) (code int, err error) {
	defer func() {
		if p := recover(); p != nil {
			code, err = ExitInternal, errs.ErrHandlerPanic.WithArgs(call.Command, p)
		}
	}()

	return h.Execute(ctx, call)
}

// verify checks that a fresh handler declared the same shape as the one the
// model was built from.
func (c *Command) verify(d *Declaration) error {
	args := d.arguments()
	if len(args) != len(c.arguments) || len(d.options) != len(c.options) || len(d.bundles) != c.bundles {
		return errs.ErrDeclarationMismatch.WithArgs(c.ID())
	}
	for i, a := range args {
		if a.name != c.arguments[i].segment.Name() {
			return errs.ErrDeclarationMismatch.WithArgs(c.ID())
		}
	}
	for i, o := range d.options {
		if o.spec != c.options[i].spec {
			return errs.ErrDeclarationMismatch.WithArgs(c.ID())
		}
	}

	return nil
}

// bind converts the captures of m into the targets declared in d. Absent
// segments receive their default, if any.
func (c *Command) bind(m *regexp2.Match, sub *parse.Substitution, d *Declaration) error {
	args := d.arguments()
	for i, a := range c.arguments {
		name := "<" + a.segment.Name() + ">"
		values := captures(m, a.group)
		if len(values) == 0 {
			if err := applyDefault(a.converter, a.cfg, args[i].target, name); err != nil {
				return err
			}
			continue
		}

		value := sub.Resolve(values[len(values)-1])
		if err := a.converter.Convert([]types.Token{{Value: value}}, args[i].target); err != nil {
			return errs.ErrArgumentConversion.WithArgs(value, name).Wrap(err)
		}
	}

	for i, o := range c.options {
		name := o.segment.Markers()[0]
		tokens, err := o.tokens(m, i, sub)
		if err != nil {
			return errs.ErrArgumentConversion.WithArgs("", name).Wrap(err)
		}
		if len(tokens) == 0 {
			if err := applyDefault(o.converter, o.cfg, d.options[i].target, name); err != nil {
				return err
			}
			continue
		}

		if err := o.converter.Convert(tokens, d.options[i].target); err != nil {
			return errs.ErrArgumentConversion.WithArgs(strings.Join(types.Values(tokens), " "), name).Wrap(err)
		}
	}

	return nil
}

// tokens returns one token per occurrence of the option at index i.
func (o *optionBinding) tokens(m *regexp2.Match, i int, sub *parse.Substitution) ([]types.Token, error) {
	presence := captures(m, segment.PresenceGroup(i))
	if len(presence) == 0 {
		return nil, nil
	}

	cardinality := o.segment.Cardinality()
	values := captures(m, segment.ValueGroup(i))
	var keys []string
	if cardinality == types.Map {
		keys = captures(m, segment.KeyGroup(i))
	}

	tokens := make([]types.Token, 0, len(presence))
	for j := range presence {
		raw := ""
		if j < len(values) {
			raw = segment.Value(values[j])
		}
		if raw == "" && (cardinality == types.Scalar || cardinality == types.Collection) {
			return nil, errs.ErrParseMissingValue
		}

		token := types.Token{Value: sub.Resolve(raw)}
		if j < len(keys) {
			token.Key = sub.Resolve(segment.Key(keys[j]))
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

func applyDefault(converter types.Converter, cfg SegmentConfig, target any, name string) error {
	if !cfg.hasDefault {
		return nil
	}
	if err := converter.Convert([]types.Token{{Value: cfg.Default}}, target); err != nil {
		return errs.ErrArgumentConversion.WithArgs(cfg.Default, name).Wrap(err)
	}

	return nil
}

func captures(m *regexp2.Match, name string) []string {
	g := m.GroupByName(name)
	if g == nil {
		return nil
	}

	out := make([]string, len(g.Captures))
	for i, c := range g.Captures {
		out[i] = c.String()
	}

	return out
}

func (r *Registry) printError(err error) {
	msg := err.Error()
	var tr *i18n.TrError
	if errors.As(err, &tr) && tr == err {
		msg = tr.WithBundle(r.messages).Error()
	}
	r.printMessage(msg)
}

func (r *Registry) printMessage(msg string) {
	fmt.Fprintln(r.stderr, r.paint(errorColor, r.msg(errs.MsgErrorPrefixKey)), msg)
}

func (r *Registry) printCandidates(cmds []*Command) {
	if len(cmds) == 0 {
		return
	}
	fmt.Fprintln(r.stderr, r.msg(errs.MsgCandidatesKey))
	for _, c := range cmds {
		fmt.Fprintf(r.stderr, "  %s %s\n", r.programName, r.renderer.CommandSynopsis(c))
	}
}

func (r *Registry) msg(key string, args ...any) string {
	return r.messages.T(key, args...)
}

func candidateIDs(cs []candidate) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.cmd.ID()
	}

	return ids
}

func commandIDs(cmds []*Command) []string {
	if len(cmds) == 0 {
		return nil
	}
	ids := make([]string, len(cmds))
	for i, c := range cmds {
		ids[i] = c.ID()
	}

	return ids
}

func fold(s string) string {
	return cases.Fold().String(s)
}

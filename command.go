package dispatch

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/internal/util"
	"github.com/pgup/dispatch/parse"
	"github.com/pgup/dispatch/pattern"
	"github.com/pgup/dispatch/segment"
	"github.com/pgup/dispatch/types"
)

// Command is the model of one registered handler: its positional segments,
// its options (own and bundle-contributed) and its compiled grammar.
type Command struct {
	id          string
	index       int
	description string
	segments    []segment.Segment
	arguments   []*argumentBinding
	options     []*optionBinding
	bundles     int
	examples    []Example
	factory     HandlerFactory
	handlerType reflect.Type
	optional    int

	expr    string
	grammar *regexp2.Regexp
	groups  []string
}

type argumentBinding struct {
	segment   *segment.Argument
	group     string
	converter types.Converter
	cfg       SegmentConfig
}

type optionBinding struct {
	segment   *segment.Option
	spec      string
	converter types.Converter
	cfg       SegmentConfig
	bundle    int
}

// ID identifies the command: its primary route aliases, its argument names
// and its required options.
func (c *Command) ID() string { return c.id }

// Description returns the declared description.
func (c *Command) Description() string { return c.description }

// Segments returns the route and argument segments in order.
func (c *Command) Segments() []segment.Segment { return c.segments }

// Options returns the option segments in declared order.
func (c *Command) Options() []*segment.Option {
	out := make([]*segment.Option, len(c.options))
	for i, o := range c.options {
		out[i] = o.segment
	}

	return out
}

// Examples returns the declared examples.
func (c *Command) Examples() []Example { return c.examples }

// Pattern returns the compiled grammar source.
func (c *Command) Pattern() string { return c.expr }

// RoutePrefix returns the route segments preceding the first argument.
func (c *Command) RoutePrefix() []*segment.Route {
	var routes []*segment.Route
	for _, s := range c.segments {
		r, ok := s.(*segment.Route)
		if !ok {
			break
		}
		routes = append(routes, r)
	}

	return routes
}

// IsMatch reports whether line matches the command grammar.
func (c *Command) IsMatch(line string) bool {
	rewritten, _ := parse.Substitute(line)
	m, err := c.match(rewritten)

	return err == nil && m != nil
}

func (c *Command) match(rewritten string) (*regexp2.Match, error) {
	return c.grammar.FindStringMatch(rewritten)
}

// newCommand declares the handler returned by factory and builds the
// segments of its model. The grammar is compiled later, once the sibling
// routes of every argument are known.
func newCommand(index int, factory HandlerFactory) (*Command, error) {
	if factory == nil {
		return nil, errs.ErrNilHandler.WithArgs(index)
	}
	h := factory()
	if h == nil {
		return nil, errs.ErrNilHandler.WithArgs(index)
	}

	d := newDeclaration()
	h.Declare(d)

	c := &Command{
		index:       index,
		description: d.description,
		examples:    d.examples,
		factory:     factory,
		handlerType: reflect.TypeOf(h),
		bundles:     len(d.bundles),
	}
	label := fmt.Sprintf("#%d (%s)", index, c.handlerType)

	if err := d.err.ErrorOrNil(); err != nil {
		return nil, errs.ErrCommandDeclaration.WithArgs(label).Wrap(err)
	}
	if len(d.parts) == 0 || d.parts[0].argument != nil {
		return nil, errs.ErrMissingRoute.WithArgs(label)
	}

	if err := c.buildSegments(d, label); err != nil {
		return nil, err
	}
	if err := c.buildOptions(d, label); err != nil {
		return nil, err
	}
	c.id = c.identity()

	return c, nil
}

func (c *Command) buildSegments(d *Declaration, label string) error {
	seenOptional := false
	names := segment.AliasSet{}
	for i, p := range d.parts {
		if p.argument == nil {
			if seenOptional {
				return errs.ErrArgumentOrder.WithArgs(p.route, label)
			}
			r, err := segment.NewRoute(p.route)
			if err != nil {
				return err
			}
			c.segments = append(c.segments, r)
			continue
		}

		decl := p.argument
		if names.Contains(decl.name) {
			return errs.ErrDuplicateArgument.WithArgs(decl.name, label)
		}
		names = append(names, decl.name)

		if seenOptional && !decl.cfg.Optional {
			return errs.ErrArgumentOrder.WithArgs(decl.name, label)
		}
		seenOptional = seenOptional || decl.cfg.Optional

		a, err := segment.NewArgument(decl.name, decl.cfg.Description, i, decl.cfg.Optional)
		if err != nil {
			return err
		}
		if err := checkTarget(decl.target, decl.name, decl.cfg); err != nil {
			return err
		}
		if decl.cfg.Optional {
			c.optional++
		}

		c.segments = append(c.segments, a)
		c.arguments = append(c.arguments, &argumentBinding{
			segment:   a,
			group:     fmt.Sprintf("a%d", i),
			converter: converterFor(decl.cfg),
			cfg:       decl.cfg,
		})
	}

	return nil
}

func (c *Command) buildOptions(d *Declaration, label string) error {
	var seen segment.AliasSet
	for _, decl := range d.options {
		cardinality, err := util.CardinalityOf(decl.target, decl.spec)
		if err != nil {
			return err
		}
		if decl.cfg.Cardinality != nil && *decl.cfg.Cardinality != cardinality {
			if decl.cfg.Converter == nil && !(cardinality == types.Flag && *decl.cfg.Cardinality == types.Scalar) {
				return errs.ErrCardinalityMismatch.WithArgs(*decl.cfg.Cardinality, reflect.TypeOf(decl.target), decl.spec)
			}
			cardinality = *decl.cfg.Cardinality
		}
		if err := checkTarget(decl.target, decl.spec, decl.cfg); err != nil {
			return err
		}

		o, err := segment.NewOption(decl.spec, segment.OptionConfig{
			Cardinality:  cardinality,
			Required:     decl.cfg.Required,
			Description:  decl.cfg.Description,
			DefaultValue: decl.cfg.Default,
		})
		if err != nil {
			return err
		}
		if alias, dup := o.Aliases().Overlap(seen); dup {
			return errs.ErrDuplicateOption.WithArgs(alias, label)
		}
		seen = append(seen, o.Aliases()...)

		if !decl.cfg.Required {
			c.optional++
		}
		c.options = append(c.options, &optionBinding{
			segment:   o,
			spec:      decl.spec,
			converter: converterFor(decl.cfg),
			cfg:       decl.cfg,
			bundle:    decl.bundle,
		})
	}

	return nil
}

// checkTarget rejects targets the converter cannot fill and validates the
// default value against a scratch copy of the target.
func checkTarget(target any, name string, cfg SegmentConfig) error {
	v := reflect.ValueOf(target)
	if !v.IsValid() || v.Kind() != reflect.Ptr || v.IsNil() {
		return errs.ErrNilTarget.WithArgs(name)
	}
	if cfg.Converter == nil && !util.Supported(target) {
		return errs.ErrUnsupportedType.WithArgs(v.Type().String(), name)
	}
	if !cfg.hasDefault {
		return nil
	}

	scratch := reflect.New(v.Type().Elem()).Interface()
	if err := converterFor(cfg).Convert([]types.Token{{Value: cfg.Default}}, scratch); err != nil {
		return errs.ErrArgumentConversion.WithArgs(cfg.Default, name).Wrap(err)
	}

	return nil
}

func converterFor(cfg SegmentConfig) types.Converter {
	if cfg.Converter != nil {
		return cfg.Converter
	}

	return types.ConverterFunc(util.Convert)
}

func (c *Command) identity() string {
	var parts []string
	for _, s := range c.segments {
		if s.Kind() == segment.KindRoute {
			parts = append(parts, s.Name())
			continue
		}
		a := s.(*segment.Argument)
		if a.Optional() {
			parts = append(parts, "["+a.Name()+"]")
		} else {
			parts = append(parts, "<"+a.Name()+">")
		}
	}
	for _, o := range c.options {
		if o.segment.Required() {
			parts = append(parts, o.segment.Markers()[0])
		}
	}

	return strings.Join(parts, " ")
}

// signature describes the full shape of the command, used to detect
// identical registrations.
func (c *Command) signature() string {
	var sb strings.Builder
	sb.WriteString(c.handlerType.String())
	for _, s := range c.segments {
		sb.WriteString(" ")
		if r, ok := s.(*segment.Route); ok {
			sb.WriteString(fold(r.Aliases().String()))
			continue
		}
		sb.WriteString("<" + s.Name() + ">")
	}
	for _, o := range c.options {
		fmt.Fprintf(&sb, " %s:%s:%t", fold(o.segment.Aliases().String()), o.segment.Cardinality(), o.segment.Required())
	}

	return sb.String()
}

// compile assembles the grammar:
//
//	^ REQUIRED* \s* SEG0 (GAP \s+ SEGi)* (GAP \s+ OPTIONAL_ARG ...)? GAP \s* $
//
// where GAP accepts any number of options so options may appear anywhere
// after the first route segment.
func (c *Command) compile(siblings func(position int) segment.AliasSet, timeout time.Duration) error {
	var optionAlternatives []string
	var sb strings.Builder
	sb.WriteString("^")
	for i, o := range c.options {
		optionAlternatives = append(optionAlternatives, o.segment.Pattern(i))
		c.groups = append(c.groups, segment.PresenceGroup(i), segment.ValueGroup(i))
		if o.segment.Cardinality() == types.Map {
			c.groups = append(c.groups, segment.KeyGroup(i))
		}
		if o.segment.Required() {
			sb.WriteString(o.segment.RequirePattern())
		}
	}

	gap := ""
	if len(optionAlternatives) > 0 {
		gap = `(?:\s+(?:` + strings.Join(optionAlternatives, "|") + `))*`
	}

	sb.WriteString(`\s*`)
	var optional []string
	for i, s := range c.segments {
		var fragment string
		switch seg := s.(type) {
		case *segment.Route:
			group := fmt.Sprintf("r%d", i)
			named, err := pattern.EnsureNamedGroup(seg.Pattern(), group)
			if err != nil {
				return err
			}
			fragment = named
			c.groups = append(c.groups, group)
		case *segment.Argument:
			group := fmt.Sprintf("a%d", i)
			fragment = seg.Pattern(group, siblings(i))
			c.groups = append(c.groups, group)
			if seg.Optional() {
				optional = append(optional, fragment)
				continue
			}
		}

		if i > 0 {
			sb.WriteString(gap)
			sb.WriteString(`\s+`)
		}
		sb.WriteString(fragment)
	}

	tail := ""
	for j := len(optional) - 1; j >= 0; j-- {
		tail = `(?:` + gap + `\s+` + optional[j] + tail + `)?`
	}
	sb.WriteString(tail)
	sb.WriteString(gap)
	sb.WriteString(`\s*$`)

	re, err := pattern.Compile(sb.String(), timeout)
	if err != nil {
		return err
	}
	c.expr = sb.String()
	c.grammar = re

	return nil
}

// score counts the named groups holding a non-empty capture, rounded to
// three decimals.
func (c *Command) score(m *regexp2.Match) float64 {
	n := 0
	for _, name := range c.groups {
		g := m.GroupByName(name)
		if g == nil {
			continue
		}
		for _, capture := range g.Captures {
			if capture.Length > 0 {
				n++
				break
			}
		}
	}

	return roundScore(float64(n))
}

func roundScore(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}

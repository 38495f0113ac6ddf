package dispatch

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/internal/util"
	"github.com/pgup/dispatch/segment"
	"github.com/pgup/dispatch/types"
)

// Renderer produces the text fragments of help output.
type Renderer interface {
	CommandSynopsis(c *Command) string
	CommandDescription(c *Command) string
	ArgumentUsage(a *segment.Argument) string
	OptionUsage(o *segment.Option) string
	OptionDescription(o *segment.Option) string
}

type DefaultRenderer struct {
	registry *Registry
}

func NewRenderer(registry *Registry) *DefaultRenderer {
	return &DefaultRenderer{registry: registry}
}

// CommandSynopsis renders the routes, the arguments and the required options
// of c, followed by [options] when c has optional ones.
func (r *DefaultRenderer) CommandSynopsis(c *Command) string {
	var parts []string
	for _, s := range c.Segments() {
		switch seg := s.(type) {
		case *segment.Route:
			parts = append(parts, seg.Name())
		case *segment.Argument:
			parts = append(parts, r.ArgumentUsage(seg))
		}
	}

	hasOptional := false
	for _, o := range c.Options() {
		if o.Required() {
			parts = append(parts, r.optionValueUsage(o, o.Markers()[0]))
		} else {
			hasOptional = true
		}
	}
	if hasOptional {
		parts = append(parts, "[options]")
	}

	return strings.Join(parts, " ")
}

// CommandDescription returns the description of c.
func (r *DefaultRenderer) CommandDescription(c *Command) string {
	return c.Description()
}

// ArgumentUsage renders <name>, or [<name>] for an optional argument.
func (r *DefaultRenderer) ArgumentUsage(a *segment.Argument) string {
	usage := "<" + r.registry.placeholder(a.Name()) + ">"
	if a.Optional() {
		return "[" + usage + "]"
	}

	return usage
}

// OptionUsage renders every marker of o followed by its value placeholder.
func (r *DefaultRenderer) OptionUsage(o *segment.Option) string {
	return r.optionValueUsage(o, strings.Join(o.Markers(), ", "))
}

// OptionDescription appends the requirement and the default value to the
// description of o.
func (r *DefaultRenderer) OptionDescription(o *segment.Option) string {
	reg := r.registry
	var notes []string
	if o.Required() {
		notes = append(notes, reg.msg(errs.MsgRequiredKey))
	} else {
		notes = append(notes, reg.msg(errs.MsgOptionalKey))
	}
	if o.Cardinality() == types.Collection || o.Cardinality() == types.Map {
		notes = append(notes, reg.msg(errs.MsgRepeatableKey))
	}
	if o.DefaultValue() != "" {
		notes = append(notes, reg.msg(errs.MsgDefaultsToKey)+": "+o.DefaultValue())
	}

	desc := o.Description()
	if desc != "" {
		desc += " "
	}

	return desc + "(" + strings.Join(notes, ", ") + ")"
}

func (r *DefaultRenderer) optionValueUsage(o *segment.Option, markers string) string {
	value := "<" + r.registry.placeholder(o.Name()) + ">"
	switch o.Cardinality() {
	case types.Flag:
		return markers
	case types.Map:
		return markers + ".<key> <value>"
	default:
		return markers + " " + value
	}
}

var (
	headingColor = color.New(color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// paint renders text with c when colour output is enabled.
func (r *Registry) paint(c *color.Color, text string) string {
	enabled := !color.NoColor
	if r.color != nil {
		enabled = *r.color
	}
	if !enabled {
		return text
	}

	painted := *c
	painted.EnableColor()

	return painted.Sprint(text)
}

const defaultWidth = 80

// PrintHelp writes the general help to w.
func (r *Registry) PrintHelp(w io.Writer) {
	r.renderHelp(w)
}

// PrintCommandHelp writes the help of c to w.
func (r *Registry) PrintCommandHelp(w io.Writer, c *Command) {
	r.renderCommandHelp(w, c)
}

func (r *Registry) renderHelp(w io.Writer) {
	fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpUsageKey)))
	fmt.Fprintf(w, "  %s <command> [options]\n\n", r.programName)

	if len(r.commands) == 0 {
		fmt.Fprintln(w, r.msg(errs.HelpNoCommandsKey))
		return
	}

	fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpCommandsKey)))
	width := util.TerminalWidth(w, defaultWidth)
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	for _, c := range r.commands {
		synopsis := r.renderer.CommandSynopsis(c)
		desc := wrap(r.renderer.CommandDescription(c), width-len(synopsis)-5)
		fmt.Fprintf(tw, "  %s\t%s\n", synopsis, strings.Join(desc, "\n  \t"))
	}
	tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.msg(errs.HelpMoreKey, r.programName))
}

func (r *Registry) renderCommandHelp(w io.Writer, c *Command) {
	fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpUsageKey)))
	fmt.Fprintf(w, "  %s %s\n", r.programName, r.renderer.CommandSynopsis(c))
	if desc := r.renderer.CommandDescription(c); desc != "" {
		fmt.Fprintln(w)
		for _, l := range wrap(desc, util.TerminalWidth(w, defaultWidth)-2) {
			fmt.Fprintln(w, "  "+l)
		}
	}

	var args []*segment.Argument
	for _, s := range c.Segments() {
		if a, ok := s.(*segment.Argument); ok {
			args = append(args, a)
		}
	}
	if len(args) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpArgumentsKey)))
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, a := range args {
			note := r.msg(errs.MsgRequiredKey)
			if a.Optional() {
				note = r.msg(errs.MsgOptionalKey)
			}
			desc := a.Description()
			if desc != "" {
				desc += " "
			}
			fmt.Fprintf(tw, "  %s\t%s(%s)\n", r.renderer.ArgumentUsage(a), desc, note)
		}
		tw.Flush()
	}

	if opts := c.Options(); len(opts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpOptionsKey)))
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, o := range opts {
			fmt.Fprintf(tw, "  %s\t%s\n", r.renderer.OptionUsage(o), r.renderer.OptionDescription(o))
		}
		tw.Flush()
	}

	if examples := c.Examples(); len(examples) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.paint(headingColor, r.msg(errs.HelpExamplesKey)))
		for _, e := range examples {
			fmt.Fprintln(w, "  "+e.Line)
			if e.Description != "" {
				fmt.Fprintln(w, "      "+e.Description)
			}
		}
	}
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	if width < 20 {
		width = 20
	}

	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 || len(lines) == 0 {
		lines = append(lines, line.String())
	}

	return lines
}

package dispatch

import (
	"io"

	"github.com/goccy/go-yaml"
	"github.com/pgup/dispatch/segment"
)

// CommandDescriptor is the exported description of a command.
type CommandDescriptor struct {
	ID          string               `yaml:"id"`
	Synopsis    string               `yaml:"synopsis"`
	Description string               `yaml:"description,omitempty"`
	Routes      [][]string           `yaml:"routes"`
	Arguments   []ArgumentDescriptor `yaml:"arguments,omitempty"`
	Options     []OptionDescriptor   `yaml:"options,omitempty"`
	Examples    []Example            `yaml:"examples,omitempty"`
}

type ArgumentDescriptor struct {
	Name        string `yaml:"name"`
	Position    int    `yaml:"position"`
	Optional    bool   `yaml:"optional,omitempty"`
	Description string `yaml:"description,omitempty"`
}

type OptionDescriptor struct {
	Name        string   `yaml:"name"`
	Markers     []string `yaml:"markers"`
	Cardinality string   `yaml:"cardinality"`
	Required    bool     `yaml:"required,omitempty"`
	Default     string   `yaml:"default,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// Descriptors describes every command in registration order.
func (r *Registry) Descriptors() []CommandDescriptor {
	out := make([]CommandDescriptor, 0, len(r.commands))
	for _, c := range r.commands {
		d := CommandDescriptor{
			ID:          c.ID(),
			Synopsis:    r.programName + " " + r.renderer.CommandSynopsis(c),
			Description: c.Description(),
			Examples:    c.Examples(),
		}
		for _, s := range c.Segments() {
			switch seg := s.(type) {
			case *segment.Route:
				d.Routes = append(d.Routes, seg.Aliases())
			case *segment.Argument:
				d.Arguments = append(d.Arguments, ArgumentDescriptor{
					Name:        seg.Name(),
					Position:    seg.Position(),
					Optional:    seg.Optional(),
					Description: seg.Description(),
				})
			}
		}
		for _, o := range c.Options() {
			d.Options = append(d.Options, OptionDescriptor{
				Name:        o.Name(),
				Markers:     o.Markers(),
				Cardinality: o.Cardinality().String(),
				Required:    o.Required(),
				Default:     o.DefaultValue(),
				Description: o.Description(),
			})
		}
		out = append(out, d)
	}

	return out
}

// WriteDescriptors writes the command descriptors to w as YAML.
func (r *Registry) WriteDescriptors(w io.Writer) error {
	data, err := yaml.Marshal(r.Descriptors())
	if err != nil {
		return err
	}
	_, err = w.Write(data)

	return err
}

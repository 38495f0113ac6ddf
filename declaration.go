package dispatch

import (
	"github.com/hashicorp/go-multierror"
)

// Example is a worked example of a command line.
type Example struct {
	Line        string `yaml:"line"`
	Description string `yaml:"description,omitempty"`
}

// Declaration records what a handler declares. The methods return the
// declaration so calls can be chained:
//
//	d.Route("deploy").
//		Argument(&h.ProjectFile, "projectFile", WithDescription("project file")).
//		Option(&h.Host, "host|H", SetRequired(true))
type Declaration struct {
	description string
	parts       []part
	options     []*optionDecl
	bundles     []Bundle
	examples    []Example
	err         *multierror.Error
}

type part struct {
	route    string
	argument *argumentDecl
}

type argumentDecl struct {
	name   string
	target any
	cfg    SegmentConfig
}

type optionDecl struct {
	spec   string
	target any
	cfg    SegmentConfig
	// bundle is the index of the declaring bundle, -1 for the handler itself
	bundle int
}

func newDeclaration() *Declaration {
	return &Declaration{}
}

// Description sets the one-line description shown in help.
func (d *Declaration) Description(text string) *Declaration {
	d.description = text
	return d
}

// Route appends a literal route segment, alias(|alias)*. The first segment
// of a command must be a route.
func (d *Declaration) Route(spec string) *Declaration {
	d.parts = append(d.parts, part{route: spec})
	return d
}

// Argument appends a positional argument bound to target, which must be a
// non-nil pointer.
func (d *Declaration) Argument(target any, name string, configs ...ConfigureArgumentFunc) *Declaration {
	cfg, err := newSegmentConfig(configs)
	if err != nil {
		d.fail(err)
		return d
	}
	d.parts = append(d.parts, part{argument: &argumentDecl{name: name, target: target, cfg: cfg}})

	return d
}

// Option declares an option bound to target, which must be a non-nil
// pointer. The cardinality follows the target type unless WithCardinality is
// given.
func (d *Declaration) Option(target any, spec string, configs ...ConfigureArgumentFunc) *Declaration {
	d.option(target, spec, -1, configs)
	return d
}

// Bundle includes the options of b. b must be a fresh instance owned by the
// handler.
func (d *Declaration) Bundle(b Bundle) *Declaration {
	if b == nil {
		return d
	}
	d.bundles = append(d.bundles, b)
	b.Declare(&BundleDeclaration{d: d, index: len(d.bundles) - 1})

	return d
}

// Example adds a worked example. line may start with the program name.
func (d *Declaration) Example(line, description string) *Declaration {
	d.examples = append(d.examples, Example{Line: line, Description: description})
	return d
}

func (d *Declaration) option(target any, spec string, bundle int, configs []ConfigureArgumentFunc) {
	cfg, err := newSegmentConfig(configs)
	if err != nil {
		d.fail(err)
		return
	}
	d.options = append(d.options, &optionDecl{spec: spec, target: target, cfg: cfg, bundle: bundle})
}

func (d *Declaration) fail(err error) {
	d.err = multierror.Append(d.err, err)
}

func (d *Declaration) arguments() []*argumentDecl {
	var out []*argumentDecl
	for _, p := range d.parts {
		if p.argument != nil {
			out = append(out, p.argument)
		}
	}

	return out
}

// BundleDeclaration records the options of a bundle.
type BundleDeclaration struct {
	d     *Declaration
	index int
}

// Option declares a bundle option bound to target.
func (b *BundleDeclaration) Option(target any, spec string, configs ...ConfigureArgumentFunc) *BundleDeclaration {
	b.d.option(target, spec, b.index, configs)
	return b
}

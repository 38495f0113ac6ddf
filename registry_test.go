package dispatch

import (
	"context"
	"testing"

	"github.com/pgup/dispatch/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shapeCommand declares whatever shape the test needs.
type shapeCommand struct {
	declare func(c *shapeCommand, d *Declaration)

	Name   string
	Extra  string
	Count  int
	Flag   bool
	Object struct{}
}

func (c *shapeCommand) Declare(d *Declaration) { c.declare(c, d) }

func (c *shapeCommand) Execute(ctx context.Context, call *Call) (int, error) {
	return ExitSuccess, nil
}

func shape(declare func(c *shapeCommand, d *Declaration)) HandlerFactory {
	return func() Handler { return &shapeCommand{declare: declare} }
}

func TestNewRegistry_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name     string
		commands []HandlerFactory
		want     error
	}{
		{
			name: "overlapping route aliases",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("deploy|dep") }),
				shape(func(c *shapeCommand, d *Declaration) { d.Route("dep|d").Argument(&c.Name, "name") }),
			},
			want: errs.ErrAmbiguousCommandSegment,
		},
		{
			name: "missing route",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Argument(&c.Name, "name") }),
			},
			want: errs.ErrMissingRoute,
		},
		{
			name: "empty declaration",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {}),
			},
			want: errs.ErrMissingRoute,
		},
		{
			name: "malformed route",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("deploy||dep") }),
			},
			want: errs.ErrInvalidRouteSpec,
		},
		{
			name: "malformed option",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Option(&c.Name, "---name") }),
			},
			want: errs.ErrInvalidOptionSpec,
		},
		{
			name: "reserved option alias",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Option(&c.Flag, "help") }),
			},
			want: errs.ErrReservedAlias,
		},
		{
			name: "duplicate option alias",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {
					d.Route("run").Option(&c.Flag, "verbose|v").Option(&c.Name, "v")
				}),
			},
			want: errs.ErrDuplicateOption,
		},
		{
			name: "required argument after optional",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {
					d.Route("run").Argument(&c.Name, "name", AsOptional()).Argument(&c.Extra, "extra")
				}),
			},
			want: errs.ErrArgumentOrder,
		},
		{
			name: "route after optional argument",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {
					d.Route("run").Argument(&c.Name, "name", AsOptional()).Route("now")
				}),
			},
			want: errs.ErrArgumentOrder,
		},
		{
			name: "duplicate argument",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {
					d.Route("run").Argument(&c.Name, "name").Argument(&c.Extra, "name")
				}),
			},
			want: errs.ErrDuplicateArgument,
		},
		{
			name: "invalid argument name",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Argument(&c.Name, "1st") }),
			},
			want: errs.ErrInvalidArgumentName,
		},
		{
			name: "nil target",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Option(nil, "name") }),
			},
			want: errs.ErrNilTarget,
		},
		{
			name: "non-pointer target",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Argument(c.Name, "name") }),
			},
			want: errs.ErrNilTarget,
		},
		{
			name: "unsupported target type",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Argument(&c.Object, "object") }),
			},
			want: errs.ErrUnsupportedType,
		},
		{
			name: "default not convertible",
			commands: []HandlerFactory{
				shape(func(c *shapeCommand, d *Declaration) {
					d.Route("run").Option(&c.Count, "count", WithDefault("many"))
				}),
			},
			want: errs.ErrArgumentConversion,
		},
		{
			name:     "nil factory",
			commands: []HandlerFactory{nil},
			want:     errs.ErrNilHandler,
		},
		{
			name: "nil handler",
			commands: []HandlerFactory{
				func() Handler { return nil },
			},
			want: errs.ErrNilHandler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRegistry(WithCommands(tt.commands...))
			assert.Nil(t, r, "the registry should not be usable after a configuration error")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewRegistry_CollectsAllErrors(t *testing.T) {
	_, err := NewRegistry(
		WithCommand(shape(func(c *shapeCommand, d *Declaration) { d.Argument(&c.Name, "name") })),
		WithCommand(shape(func(c *shapeCommand, d *Declaration) { d.Route("run").Option(&c.Flag, "h") })),
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRoute)
	assert.ErrorIs(t, err, errs.ErrReservedAlias)
}

func TestNewRegistry_IdenticalRegistrationIsIgnored(t *testing.T) {
	log := &deployLog{}
	r, _, _ := newTestRegistry(t,
		WithCommand(deployFactory(log)),
		WithCommand(deployFactory(log)))

	require.Len(t, r.Commands(), 1)
	assert.Equal(t, "deploy <projectFile> --host", r.Commands()[0].ID())
}

func TestNewRegistry_IdenticalRegistrationKeepsFirstFactory(t *testing.T) {
	first, second := &deployLog{}, &deployLog{}
	r, _, _ := newTestRegistry(t,
		WithCommand(deployFactory(first)),
		WithCommand(deployFactory(second)))

	require.Len(t, r.Commands(), 1, "same handler type and shape is one command")

	res := r.Dispatch(context.Background(), "deploy pgup.json --host db")
	require.Equal(t, ExitSuccess, res.ExitCode)
	assert.Equal(t, 1, first.count())
	assert.Equal(t, 0, second.count())
}

func TestNewRegistry_AliasOrderDoesNotMatter(t *testing.T) {
	declare := func(spec string) HandlerFactory {
		return shape(func(c *shapeCommand, d *Declaration) {
			d.Route(spec).Option(&c.Flag, "force|f")
		})
	}
	r, _, _ := newTestRegistry(t,
		WithCommand(declare("dep|deploy")),
		WithCommand(declare("DEPLOY|dep")))

	require.Len(t, r.Commands(), 1, "route aliases are compared as case-folded sets")
	c := r.Commands()[0]
	assert.Equal(t, "deploy", c.ID())
	assert.Equal(t, []string{"deploy", "dep"}, []string(c.RoutePrefix()[0].Aliases()))
}

func TestNewRegistry_CommandIDs(t *testing.T) {
	r, _, _ := newTestRegistry(t,
		WithCommand(shape(func(c *shapeCommand, d *Declaration) {
			d.Route("db").Route("dump").Argument(&c.Name, "database").Argument(&c.Extra, "file", AsOptional())
		})),
		WithCommand(shape(func(c *shapeCommand, d *Declaration) {
			d.Route("db").Route("dump").Argument(&c.Name, "database").Option(&c.Extra, "file")
		})),
		WithCommand(shape(func(c *shapeCommand, d *Declaration) {
			d.Route("db").Route("dump").Argument(&c.Name, "database").Option(&c.Extra, "output|o", SetRequired(true))
		})),
	)

	var ids []string
	for _, c := range r.Commands() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{
		"db dump <database> [file]",
		"db dump <database>",
		"db dump <database> --output",
	}, ids)

	c, ok := r.Command("db dump <database> --output")
	require.True(t, ok)
	assert.Len(t, c.Options(), 1)

	_, ok = r.Command("db restore")
	assert.False(t, ok)
}

func TestNewRegistry_DuplicateIDsAreSuffixed(t *testing.T) {
	r, _, _ := newTestRegistry(t,
		WithCommand(shape(func(c *shapeCommand, d *Declaration) { d.Route("list").Option(&c.Flag, "all") })),
		WithCommand(shape(func(c *shapeCommand, d *Declaration) { d.Route("list").Option(&c.Name, "filter") })),
	)

	require.Len(t, r.Commands(), 2)
	assert.Equal(t, "list", r.Commands()[0].ID())
	assert.Equal(t, "list#2", r.Commands()[1].ID())
}

func TestNewRegistry_Defaults(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	assert.NotEmpty(t, r.ProgramName())
	assert.Empty(t, r.Commands())
}

func TestRegistry_IsMatch(t *testing.T) {
	log := &deployLog{}
	r, _, _ := newTestRegistry(t, WithCommand(deployFactory(log)))

	assert.True(t, r.IsMatch("deploy pgup.json --host localhost"))
	assert.True(t, r.IsMatch(`dep "my project.json" --host localhost`))
	assert.False(t, r.IsMatch("deploy pgup.json"), "the required --host is missing")
	assert.False(t, r.IsMatch("destroy pgup.json --host localhost"))
	assert.Equal(t, 0, log.count(), "matching never runs a handler")

	c := r.Commands()[0]
	assert.True(t, c.IsMatch("deploy x --host y"))
	assert.NotEmpty(t, c.Pattern())
}

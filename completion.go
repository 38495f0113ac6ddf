package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pgup/dispatch/completion"
	"github.com/pgup/dispatch/types"
	"github.com/spf13/afero"
)

// CompletionData collects the route path and option markers of every
// command. Commands sharing a route path share one completion entry.
func (r *Registry) CompletionData() completion.Data {
	var data completion.Data
	for _, c := range r.commands {
		cmd := completion.Command{Description: c.description}
		for _, route := range c.RoutePrefix() {
			cmd.Path = append(cmd.Path, route.Name())
		}

		for _, o := range c.options {
			f := completion.Flag{
				Description: o.segment.Description(),
				TakesValue:  o.segment.Cardinality() != types.Flag,
			}
			for _, m := range o.segment.Markers() {
				switch {
				case strings.HasPrefix(m, "--") && f.Long == "":
					f.Long = m[2:]
				case !strings.HasPrefix(m, "--") && utf8.RuneCountInString(m) == 2 && f.Short == "":
					f.Short = m[1:]
				}
			}
			if f.Long != "" || f.Short != "" {
				cmd.Flags = append(cmd.Flags, f)
			}
		}

		data.Add(cmd)
	}

	return data
}

// WithCompletion registers the completion command, which prints the
// completion script of a shell or saves it through fs with --save.
func WithCompletion(fs afero.Fs) RegistryOption {
	return func(r *Registry) {
		r.factories = append(r.factories, func() Handler {
			return &completionCommand{registry: r, fs: fs, home: os.UserHomeDir}
		})
	}
}

type completionCommand struct {
	registry *Registry
	fs       afero.Fs
	home     func() (string, error)

	Shell string
	Save  bool
}

func (c *completionCommand) Declare(d *Declaration) {
	d.Description("Print or install a shell completion script").
		Route("completion").
		Argument(&c.Shell, "shell",
			WithDescription("one of "+strings.Join(completion.Shells(), ", "))).
		Option(&c.Save, "save",
			WithDescription("write the script into the user completion directory of the shell")).
		Example("completion bash", "print the bash completion script").
		Example("completion zsh --save", "install the zsh completion script")
}

func (c *completionCommand) Execute(ctx context.Context, call *Call) (int, error) {
	generator, err := completion.GeneratorFor(c.Shell)
	if err != nil {
		return ExitUsage, NewUserError("cannot generate %s completion", c.Shell).Wrap(err)
	}

	data := c.registry.CompletionData()
	if !c.Save {
		_, err := fmt.Fprint(call.Stdout, generator.Generate(c.registry.programName, data))
		return ExitSuccess, err
	}

	home, err := c.home()
	if err != nil {
		return ExitInternal, NewUserError("cannot locate the home directory").Wrap(err)
	}

	m, err := completion.NewManager(c.fs, c.Shell, c.registry.programName, home)
	if err != nil {
		return ExitInternal, NewUserError("cannot save %s completion", c.Shell).Wrap(err)
	}
	m.Accept(data)

	path, err := m.Save()
	if err != nil {
		return ExitInternal, NewUserError("cannot save %s completion", c.Shell).Wrap(err)
	}
	fmt.Fprintf(call.Stdout, "completion script written to %s\n", path)

	return ExitSuccess, nil
}

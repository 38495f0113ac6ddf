package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pgup/dispatch"
	"github.com/pgup/dispatch/internal/ctxlog"
	"github.com/spf13/afero"
)

// project is the content of a pgup.json file.
type project struct {
	Name       string            `json:"name"`
	Database   string            `json:"database"`
	Scripts    []string          `json:"scripts"`
	Parameters map[string]string `json:"parameters"`
}

func loadProject(fs afero.Fs, path string) (*project, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, dispatch.NewUserError("cannot read project %s", path).WithCode(dispatch.ExitUsage).Wrap(err)
	}

	var p project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, dispatch.NewUserError("project %s is not valid JSON", path).WithCode(dispatch.ExitUsage).Wrap(err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &p, nil
}

// connectionOptions are shared by every command talking to a server.
type connectionOptions struct {
	Host     string
	Port     int
	User     string
	Database string
}

func (c *connectionOptions) Declare(d *dispatch.BundleDeclaration) {
	d.Option(&c.Host, "host", dispatch.SetRequired(true), dispatch.WithDescription("server host name")).
		Option(&c.Port, "port|p", dispatch.WithDefault("5432"), dispatch.WithDescription("server port")).
		Option(&c.User, "user|U", dispatch.WithDefault("postgres"), dispatch.WithDescription("login role")).
		Option(&c.Database, "database|d", dispatch.WithDescription("target database, defaults to the project database"))
}

func (c *connectionOptions) OnExecuting(ctx context.Context, line string) error {
	ctxlog.Debug(ctx, "connecting", "host", c.Host, "port", c.Port, "user", c.User)
	return nil
}

// verbosityOptions raise the log level for a single command.
type verbosityOptions struct {
	Verbose bool
}

func (v *verbosityOptions) Declare(d *dispatch.BundleDeclaration) {
	d.Option(&v.Verbose, "verbose|v", dispatch.WithDescription("log every step"))
}

// Scope hands the invocation a debug-level copy of the context logger.
func (v *verbosityOptions) Scope(ctx context.Context) (context.Context, context.CancelFunc) {
	if !v.Verbose {
		return ctx, func() {}
	}

	return ctxlog.New(ctx, ctxlog.WithLevel(ctxlog.Logger(ctx), slog.LevelDebug)), func() {}
}

func (v *verbosityOptions) OnError(ctx context.Context, line string, err error) {
	ctxlog.Debug(ctx, "command failed", "line", line, "error", err)
}

type deployCommand struct {
	fs afero.Fs

	ProjectFile string
	DryRun      bool
	Parameters  map[string]string
	Connection  connectionOptions
	Verbosity   verbosityOptions
	Timeout     dispatch.TimeoutOptions
}

func (c *deployCommand) Declare(d *dispatch.Declaration) {
	d.Description("Deploy the scripts of a project file to a database server").
		Route("deploy|dep").
		Argument(&c.ProjectFile, "projectFile", dispatch.WithDescription("path to the pgup.json project")).
		Option(&c.DryRun, "dry-run|n", dispatch.WithDescription("print the scripts without running them")).
		Option(&c.Parameters, "parameter", dispatch.WithDescription("template parameter, as --parameter.name value")).
		Bundle(&c.Connection).
		Bundle(&c.Verbosity).
		Bundle(&c.Timeout).
		Example("pgup deploy pgup.json --host localhost", "deploy to the local server").
		Example("pgup deploy pgup.json --host db --parameter[dbName] my_database --timeout 90s", "override a parameter and bound the run time")
}

func (c *deployCommand) Execute(ctx context.Context, call *dispatch.Call) (int, error) {
	p, err := loadProject(c.fs, c.ProjectFile)
	if err != nil {
		return 0, err
	}

	params := make(map[string]string, len(p.Parameters)+len(c.Parameters))
	for k, v := range p.Parameters {
		params[k] = v
	}
	for k, v := range c.Parameters {
		params[k] = v
	}

	database := c.Connection.Database
	if database == "" {
		database = p.Database
	}

	fmt.Fprintf(call.Stdout, "deploying %s to %s@%s:%d/%s\n", p.Name, c.Connection.User, c.Connection.Host, c.Connection.Port, database)
	for _, script := range p.Scripts {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		ctxlog.Debug(ctx, "running script", "script", script, "parameters", len(params))
		if c.DryRun {
			fmt.Fprintf(call.Stdout, "  would run %s\n", script)
			continue
		}
		fmt.Fprintf(call.Stdout, "  ran %s\n", script)
	}

	return dispatch.ExitSuccess, nil
}

type listCommand struct {
	fs afero.Fs

	Dir string
}

func (c *listCommand) Declare(d *dispatch.Declaration) {
	d.Description("List the project files of a directory").
		Route("list|ls").
		Argument(&c.Dir, "dir", dispatch.AsOptional(), dispatch.WithDefault("."), dispatch.WithDescription("directory to search")).
		Example("pgup list", "list the projects of the working directory").
		Example("pgup ls deployments", "")
}

func (c *listCommand) Execute(ctx context.Context, call *dispatch.Call) (int, error) {
	matches, err := afero.Glob(c.fs, filepath.Join(c.Dir, "*.json"))
	if err != nil {
		return 0, err
	}
	sort.Strings(matches)

	for _, m := range matches {
		p, err := loadProject(c.fs, m)
		if err != nil {
			ctxlog.Warn(ctx, "skipping project", "file", m, "error", err)
			continue
		}
		fmt.Fprintf(call.Stdout, "%s\t%s\t%d scripts\n", m, p.Name, len(p.Scripts))
	}

	return dispatch.ExitSuccess, nil
}

type describeCommand struct {
	registry func() *dispatch.Registry
}

func (c *describeCommand) Declare(d *dispatch.Declaration) {
	d.Description("Print every command as YAML").
		Route("describe").
		Example("pgup describe", "")
}

func (c *describeCommand) Execute(ctx context.Context, call *dispatch.Call) (int, error) {
	if err := c.registry().WriteDescriptors(call.Stdout); err != nil {
		return 0, err
	}

	return dispatch.ExitSuccess, nil
}

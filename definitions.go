package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/pgup/dispatch/errs"
	"github.com/pgup/dispatch/i18n"
	"github.com/pgup/dispatch/types"
)

// Exit codes returned by Dispatch. Handler codes pass through unchanged.
const (
	ExitSuccess   = 0
	ExitUsage     = 2
	ExitAmbiguous = 3
	ExitNotFound  = 4
	ExitInternal  = 5
	ExitTimeout   = 124
)

// Outcome tells how a line was handled.
type Outcome int

const (
	// Dispatched means a handler ran, or a hook ended the dispatch with an exit code
	Dispatched Outcome = iota
	// HelpShown means help was printed instead of running a handler
	HelpShown
	// NotFound means no command matched the line
	NotFound
	// Ambiguous means several commands matched equally and strict ties are enabled
	Ambiguous
	// Invalid means the line matched but a value could not be converted
	Invalid
)

func (o Outcome) String() string {
	switch o {
	case Dispatched:
		return "dispatched"
	case HelpShown:
		return "help"
	case NotFound:
		return "not found"
	case Ambiguous:
		return "ambiguous"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes the handling of one line.
type Result struct {
	Outcome  Outcome
	ExitCode int
	// Command is the ID of the selected command, if any
	Command string
	// Candidates lists the IDs of the commands offered to the user on a
	// not-found or ambiguous line
	Candidates []string
	Err        error
}

// Handler is a command contract. Declare describes the route, arguments,
// options, bundles and examples of the command and binds them to fields of
// the handler; Execute runs the command after the bound fields are set.
//
// The factory registered with WithCommand is called once while building the
// registry and once for every dispatch, so each dispatch binds into a fresh
// handler. Declare must declare the same shape on every call.
type Handler interface {
	Declare(d *Declaration)
	Execute(ctx context.Context, call *Call) (int, error)
}

// HandlerFactory creates a fresh Handler.
type HandlerFactory func() Handler

// Call carries the dispatch details passed to Execute.
type Call struct {
	// Line is the line as received
	Line string
	// Command is the ID of the matched command
	Command string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Bundle is a reusable group of options. The handler creates the bundle
// instance, so bundle state never outlives a dispatch.
type Bundle interface {
	Declare(d *BundleDeclaration)
}

// BeforeExecuter is implemented by bundles that run before the handler.
// Returning ErrHelpRequested shows the command help, returning an error made
// by Exit ends the dispatch with that code.
type BeforeExecuter interface {
	OnExecuting(ctx context.Context, line string) error
}

// AfterExecuter is implemented by bundles that run after a successful handler.
type AfterExecuter interface {
	OnExecuted(ctx context.Context, line string) error
}

// ErrorHandler is implemented by bundles that observe handler and hook failures.
type ErrorHandler interface {
	OnError(ctx context.Context, line string, err error)
}

// ContextScoper is implemented by bundles that derive the context passed to
// the hooks and the handler, for instance to add a deadline.
type ContextScoper interface {
	Scope(ctx context.Context) (context.Context, context.CancelFunc)
}

// ErrHelpRequested asks the registry to print the help of the current command.
var ErrHelpRequested = errs.ErrHelpRequested

// ExitError ends a dispatch with Code and no message.
type ExitError struct {
	Code int
}

// Exit returns an error that ends the dispatch with code.
func Exit(code int) error {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return errs.ErrExitRequested.WithArgs(e.Code).Error()
}

func (e *ExitError) Is(target error) bool {
	return errors.Is(errs.ErrExitRequested, target)
}

// UserError is a handler failure whose message is meant for the user.
// Any other handler error is reported with a generic message.
type UserError struct {
	// Code is the exit code, ExitInternal when zero
	Code    int
	Message string
	Err     error
}

// NewUserError formats a user-facing error.
func NewUserError(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// WithCode sets the exit code.
func (e *UserError) WithCode(code int) *UserError {
	e.Code = code
	return e
}

// Wrap records the underlying cause.
func (e *UserError) Wrap(err error) *UserError {
	e.Err = err
	return e
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// SegmentConfig collects the settings of an argument or option declaration.
type SegmentConfig struct {
	Description string
	// Default is converted into the target when the segment is absent
	Default    string
	hasDefault bool
	// Required applies to options
	Required bool
	// Optional applies to arguments
	Optional    bool
	Cardinality *types.Cardinality
	Converter   types.Converter
}

// ConfigureArgumentFunc configures an argument or option declaration.
type ConfigureArgumentFunc func(cfg *SegmentConfig, err *error)

// RegistryOption configures a Registry.
type RegistryOption func(r *Registry)

// NameConversionFunc converts a declared name into a help placeholder.
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToKebabCase converts a string to kebab case "project-file"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToSnakeCase converts a string to snake case "project_file"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToScreamingSnake converts a string to screaming snake case "PROJECT_FILE"
	ToScreamingSnake = func(s string) string {
		return strcase.ToScreamingSnake(s)
	}

	// ToLowerCamel converts a string to lower camel case "projectFile"
	ToLowerCamel = func(s string) string {
		return strcase.ToLowerCamel(s)
	}

	// ToLowerCase converts a string to lower case "projectfile"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	DefaultPlaceholderConverter = ToKebabCase
)

// Registry holds the command models and dispatches lines to them. It is
// immutable after NewRegistry returns and safe for concurrent dispatches.
type Registry struct {
	factories    []HandlerFactory
	commands     []*Command
	stdout       io.Writer
	stderr       io.Writer
	logger       *slog.Logger
	strictTies   bool
	programName  string
	matchTimeout time.Duration
	color        *bool
	placeholder  NameConversionFunc
	messages     *i18n.Bundle
	renderer     Renderer
}

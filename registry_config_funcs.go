package dispatch

import (
	"io"
	"log/slog"
	"time"

	"github.com/pgup/dispatch/i18n"
)

// WithCommand registers a command. The factory must return a fresh handler on
// every call.
func WithCommand(factory HandlerFactory) RegistryOption {
	return func(r *Registry) {
		r.factories = append(r.factories, factory)
	}
}

// WithCommands registers several commands in order.
func WithCommands(factories ...HandlerFactory) RegistryOption {
	return func(r *Registry) {
		r.factories = append(r.factories, factories...)
	}
}

// WithStdout sets the writer for help output and for handlers.
func WithStdout(w io.Writer) RegistryOption {
	return func(r *Registry) {
		r.stdout = w
	}
}

// WithStderr sets the writer for error output.
func WithStderr(w io.Writer) RegistryOption {
	return func(r *Registry) {
		r.stderr = w
	}
}

// WithLogger sets the logger placed in the handler context.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithStrictTies reports several equally ranked matches as Ambiguous instead
// of picking the command with the fewest optional segments.
func WithStrictTies() RegistryOption {
	return func(r *Registry) {
		r.strictTies = true
	}
}

// WithProgramName sets the name shown in usage lines. Examples starting with
// it have it removed before dispatch.
func WithProgramName(name string) RegistryOption {
	return func(r *Registry) {
		r.programName = name
	}
}

// WithMatchTimeout bounds a single grammar match.
func WithMatchTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) {
		r.matchTimeout = d
	}
}

// WithColor forces coloured output on or off. By default colour follows the
// terminal detection of github.com/fatih/color.
func WithColor(enabled bool) RegistryOption {
	return func(r *Registry) {
		r.color = &enabled
	}
}

// WithNameConverter sets how declared names become help placeholders.
func WithNameConverter(converter NameConversionFunc) RegistryOption {
	return func(r *Registry) {
		r.placeholder = converter
	}
}

// WithMessages sets the message bundle for help and error output.
func WithMessages(bundle *i18n.Bundle) RegistryOption {
	return func(r *Registry) {
		r.messages = bundle
	}
}

// WithRenderer replaces the help renderer.
func WithRenderer(renderer Renderer) RegistryOption {
	return func(r *Registry) {
		r.renderer = renderer
	}
}

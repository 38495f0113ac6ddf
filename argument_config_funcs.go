package dispatch

import (
	"github.com/pgup/dispatch/types"
)

// WithDescription the description will be used in usage output presented to the user
func WithDescription(description string) ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Description = description
	}
}

// WithDefault sets the textual value converted into the target when the
// argument or option is absent from the line.
func WithDefault(value string) ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Default = value
		cfg.hasDefault = true
	}
}

// SetRequired when true, the option must be supplied on the command-line.
// Arguments are required unless declared AsOptional.
func SetRequired(required bool) ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Required = required
	}
}

// AsOptional marks a positional argument as optional. Optional arguments must
// come last.
func AsOptional() ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Optional = true
	}
}

// WithCardinality overrides the cardinality inferred from the target type.
// Without a custom converter only a bool target may switch from Flag to Scalar.
func WithCardinality(cardinality types.Cardinality) ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Cardinality = &cardinality
	}
}

// WithConverter replaces the built-in conversion for the target.
func WithConverter(converter types.Converter) ConfigureArgumentFunc {
	return func(cfg *SegmentConfig, err *error) {
		cfg.Converter = converter
	}
}

func newSegmentConfig(configs []ConfigureArgumentFunc) (SegmentConfig, error) {
	var cfg SegmentConfig
	var err error
	for _, config := range configs {
		config(&cfg, &err)
		if err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

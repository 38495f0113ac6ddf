// Package errs holds the translation keys and sentinel errors of the dispatch engine.
package errs

const (
	prefixKey = "dispatch"

	ErrorPrefixKey    = prefixKey + ".error"
	ParseErrorPathKey = ErrorPrefixKey + ".parse"
	MessagePrefixKey  = prefixKey + ".msg"
	HelpPrefixKey     = prefixKey + ".help"
)

// Configuration errors, raised while building a registry
const (
	ErrInvalidPatternKey          = ErrorPrefixKey + ".invalid_pattern"
	ErrInvalidRouteSpecKey        = ErrorPrefixKey + ".invalid_route_spec"
	ErrInvalidOptionSpecKey       = ErrorPrefixKey + ".invalid_option_spec"
	ErrDuplicateAliasKey          = ErrorPrefixKey + ".duplicate_alias"
	ErrReservedAliasKey           = ErrorPrefixKey + ".reserved_alias"
	ErrAmbiguousCommandSegmentKey = ErrorPrefixKey + ".ambiguous_command_segment"
	ErrMissingRouteKey            = ErrorPrefixKey + ".missing_route"
	ErrArgumentOrderKey           = ErrorPrefixKey + ".argument_order"
	ErrDuplicateArgumentKey       = ErrorPrefixKey + ".duplicate_argument"
	ErrDuplicateOptionKey         = ErrorPrefixKey + ".duplicate_option"
	ErrInvalidArgumentNameKey     = ErrorPrefixKey + ".invalid_argument_name"
	ErrNilTargetKey               = ErrorPrefixKey + ".nil_target"
	ErrUnsupportedTypeKey         = ErrorPrefixKey + ".unsupported_type"
	ErrCardinalityMismatchKey     = ErrorPrefixKey + ".cardinality_mismatch"
	ErrNilHandlerKey              = ErrorPrefixKey + ".nil_handler"
	ErrDeclarationMismatchKey     = ErrorPrefixKey + ".declaration_mismatch"
	ErrCommandDeclarationKey      = ErrorPrefixKey + ".command_declaration"
	ErrExampleMismatchKey         = ErrorPrefixKey + ".example_mismatch"
	ErrExampleFailedKey           = ErrorPrefixKey + ".example_failed"
	ErrUnsupportedShellKey        = ErrorPrefixKey + ".unsupported_shell"
	ErrNoCompletionScriptKey      = ErrorPrefixKey + ".no_completion_script"
	ErrCompletionPathKey          = ErrorPrefixKey + ".completion_path"
)

// Runtime errors, raised while dispatching a line
const (
	ErrArgumentConversionKey = ErrorPrefixKey + ".argument_conversion"
	ErrCommandNotFoundKey    = ErrorPrefixKey + ".command_not_found"
	ErrAmbiguousMatchKey     = ErrorPrefixKey + ".ambiguous_match"
	ErrInternalKey           = ErrorPrefixKey + ".internal"
	ErrHandlerPanicKey       = ErrorPrefixKey + ".handler_panic"
	ErrHelpRequestedKey      = ErrorPrefixKey + ".help_requested"
	ErrExitRequestedKey      = ErrorPrefixKey + ".exit_requested"
)

// Conversion errors
const (
	ErrParseIntKey                 = ParseErrorPathKey + ".int"
	ErrParseUintKey                = ParseErrorPathKey + ".uint"
	ErrParseFloatKey               = ParseErrorPathKey + ".float"
	ErrParseBoolKey                = ParseErrorPathKey + ".bool"
	ErrParseOverflowKey            = ParseErrorPathKey + ".overflow"
	ErrParseDurationKey            = ParseErrorPathKey + ".duration"
	ErrParseNonPositiveDurationKey = ParseErrorPathKey + ".non_positive_duration"
	ErrParseTimeKey                = ParseErrorPathKey + ".time"
	ErrParseMissingValueKey        = ParseErrorPathKey + ".missing_value"
	ErrParseMissingKeyKey          = ParseErrorPathKey + ".missing_key"
)

// Help and message keys
const (
	MsgRequiredKey      = MessagePrefixKey + ".required"
	MsgOptionalKey      = MessagePrefixKey + ".optional"
	MsgDefaultsToKey    = MessagePrefixKey + ".defaults_to"
	MsgRepeatableKey    = MessagePrefixKey + ".repeatable"
	MsgCandidatesKey    = MessagePrefixKey + ".candidates"
	MsgInternalErrorKey = MessagePrefixKey + ".internal_error"
	MsgErrorPrefixKey   = MessagePrefixKey + ".error_prefix"
	HelpUsageKey        = HelpPrefixKey + ".usage"
	HelpCommandsKey     = HelpPrefixKey + ".commands"
	HelpArgumentsKey    = HelpPrefixKey + ".arguments"
	HelpOptionsKey      = HelpPrefixKey + ".options"
	HelpExamplesKey     = HelpPrefixKey + ".examples"
	HelpMoreKey         = HelpPrefixKey + ".more"
	HelpNoCommandsKey   = HelpPrefixKey + ".no_commands"
)

package errs

import "github.com/pgup/dispatch/i18n"

// Configuration errors
var (
	ErrInvalidPattern          = i18n.NewError(ErrInvalidPatternKey)
	ErrInvalidRouteSpec        = i18n.NewError(ErrInvalidRouteSpecKey)
	ErrInvalidOptionSpec       = i18n.NewError(ErrInvalidOptionSpecKey)
	ErrDuplicateAlias          = i18n.NewError(ErrDuplicateAliasKey)
	ErrReservedAlias           = i18n.NewError(ErrReservedAliasKey)
	ErrAmbiguousCommandSegment = i18n.NewError(ErrAmbiguousCommandSegmentKey)
	ErrMissingRoute            = i18n.NewError(ErrMissingRouteKey)
	ErrArgumentOrder           = i18n.NewError(ErrArgumentOrderKey)
	ErrDuplicateArgument       = i18n.NewError(ErrDuplicateArgumentKey)
	ErrDuplicateOption         = i18n.NewError(ErrDuplicateOptionKey)
	ErrInvalidArgumentName     = i18n.NewError(ErrInvalidArgumentNameKey)
	ErrNilTarget               = i18n.NewError(ErrNilTargetKey)
	ErrUnsupportedType         = i18n.NewError(ErrUnsupportedTypeKey)
	ErrCardinalityMismatch     = i18n.NewError(ErrCardinalityMismatchKey)
	ErrNilHandler              = i18n.NewError(ErrNilHandlerKey)
	ErrDeclarationMismatch     = i18n.NewError(ErrDeclarationMismatchKey)
	ErrCommandDeclaration      = i18n.NewError(ErrCommandDeclarationKey)
	ErrExampleMismatch         = i18n.NewError(ErrExampleMismatchKey)
	ErrExampleFailed           = i18n.NewError(ErrExampleFailedKey)
	ErrUnsupportedShell        = i18n.NewError(ErrUnsupportedShellKey)
	ErrNoCompletionScript      = i18n.NewError(ErrNoCompletionScriptKey)
	ErrCompletionPath          = i18n.NewError(ErrCompletionPathKey)
)

// Runtime errors
var (
	ErrArgumentConversion = i18n.NewError(ErrArgumentConversionKey)
	ErrCommandNotFound    = i18n.NewError(ErrCommandNotFoundKey)
	ErrAmbiguousMatch     = i18n.NewError(ErrAmbiguousMatchKey)
	ErrInternal           = i18n.NewError(ErrInternalKey)
	ErrHandlerPanic       = i18n.NewError(ErrHandlerPanicKey)
	ErrHelpRequested      = i18n.NewError(ErrHelpRequestedKey)
	ErrExitRequested      = i18n.NewError(ErrExitRequestedKey)
)

// Conversion errors
var (
	ErrParseInt                 = i18n.NewError(ErrParseIntKey)
	ErrParseUint                = i18n.NewError(ErrParseUintKey)
	ErrParseFloat               = i18n.NewError(ErrParseFloatKey)
	ErrParseBool                = i18n.NewError(ErrParseBoolKey)
	ErrParseOverflow            = i18n.NewError(ErrParseOverflowKey)
	ErrParseDuration            = i18n.NewError(ErrParseDurationKey)
	ErrParseNonPositiveDuration = i18n.NewError(ErrParseNonPositiveDurationKey)
	ErrParseTime                = i18n.NewError(ErrParseTimeKey)
	ErrParseMissingValue        = i18n.NewError(ErrParseMissingValueKey)
	ErrParseMissingKey          = i18n.NewError(ErrParseMissingKeyKey)
)

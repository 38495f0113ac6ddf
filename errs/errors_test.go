package errs

import (
	"testing"

	"github.com/pgup/dispatch/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestErrorsAreTranslated(t *testing.T) {
	errors := []*i18n.TrError{
		ErrInvalidPattern,
		ErrInvalidRouteSpec,
		ErrInvalidOptionSpec,
		ErrDuplicateAlias,
		ErrReservedAlias,
		ErrAmbiguousCommandSegment,
		ErrMissingRoute,
		ErrArgumentOrder,
		ErrDuplicateArgument,
		ErrDuplicateOption,
		ErrInvalidArgumentName,
		ErrNilTarget,
		ErrUnsupportedType,
		ErrCardinalityMismatch,
		ErrNilHandler,
		ErrDeclarationMismatch,
		ErrCommandDeclaration,
		ErrExampleMismatch,
		ErrExampleFailed,
		ErrUnsupportedShell,
		ErrNoCompletionScript,
		ErrCompletionPath,
		ErrArgumentConversion,
		ErrCommandNotFound,
		ErrAmbiguousMatch,
		ErrInternal,
		ErrHandlerPanic,
		ErrHelpRequested,
		ErrExitRequested,
		ErrParseInt,
		ErrParseUint,
		ErrParseFloat,
		ErrParseBool,
		ErrParseOverflow,
		ErrParseDuration,
		ErrParseNonPositiveDuration,
		ErrParseTime,
		ErrParseMissingValue,
		ErrParseMissingKey,
	}

	bundle := i18n.Default()
	for _, err := range errors {
		assert.True(t, bundle.HasKey(language.English, err.Key()), "missing translation for %s", err.Key())
	}
}

func TestMessagesAreTranslated(t *testing.T) {
	keys := []string{
		HelpPrefixKey,
		MsgRequiredKey,
		MsgOptionalKey,
		MsgDefaultsToKey,
		MsgRepeatableKey,
		MsgCandidatesKey,
		MsgInternalErrorKey,
		MsgErrorPrefixKey,
		HelpUsageKey,
		HelpCommandsKey,
		HelpArgumentsKey,
		HelpOptionsKey,
		HelpExamplesKey,
		HelpMoreKey,
		HelpNoCommandsKey,
	}

	bundle := i18n.Default()
	for _, key := range keys {
		assert.True(t, bundle.HasKey(language.English, key), "missing translation for %s", key)
	}
}

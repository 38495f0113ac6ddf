package i18n

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefault(t *testing.T) {
	b := Default()

	assert.Same(t, b, Default(), "the default bundle is shared")
	assert.Equal(t, language.English, b.DefaultLanguage())
	assert.Equal(t, "Usage:", b.T("dispatch.help.usage"))
	assert.Equal(t, `invalid route spec "a||b"`, b.T("dispatch.error.invalid_route_spec", "a||b"))
}

func TestBundle_UnknownKey(t *testing.T) {
	b := NewEmptyBundle()

	assert.Equal(t, "some.key", b.T("some.key"))
	assert.Equal(t, "value 3", b.T("value %d", 3))
}

func TestBundle_ArgumentsFormatTranslation(t *testing.T) {
	b := Default()

	key := "dispatch.help.more"
	assert.Equal(t, "Run 'pgup <command> --help' for details on a command.", b.T(key, "pgup"))
	assert.Equal(t, b.T(key, "pgup"), b.TL(language.French, key, "pgup"), "unknown languages fall back to the default")
}

func TestBundle_AddLanguage(t *testing.T) {
	b, err := NewBundle()
	require.NoError(t, err)

	en, ok := b.Message("dispatch.help.usage")
	require.True(t, ok)
	assert.Equal(t, "Usage:", en)

	err = b.AddLanguage(language.German, map[string]string{"dispatch.help.usage": "Verwendung:"})
	assert.ErrorIs(t, err, ErrInvalidTranslations, "a new language must translate every key")

	complete := map[string]string{}
	for _, key := range keys(b) {
		complete[key] = "de:" + key
	}
	complete["dispatch.help.usage"] = "Verwendung:"
	require.NoError(t, b.AddLanguage(language.German, complete))

	assert.True(t, b.HasKey(language.German, "dispatch.help.usage"))
	assert.Equal(t, "Verwendung:", b.TL(language.German, "dispatch.help.usage"))
	assert.Equal(t, []language.Tag{language.German, language.English}, b.Languages())

	b.SetDefaultLanguage(language.German)
	assert.Equal(t, "Verwendung:", b.T("dispatch.help.usage"))
	assert.Equal(t, "Usage:", Default().T("dispatch.help.usage"), "other bundles are unaffected")
}

func TestBundle_AddLanguage_Empty(t *testing.T) {
	err := NewEmptyBundle().AddLanguage(language.French, nil)
	assert.ErrorIs(t, err, ErrEmptyTranslations)
}

func keys(b *Bundle) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []string
	for k := range b.translations[b.defaultLang] {
		out = append(out, k)
	}

	return out
}

func TestTrError(t *testing.T) {
	base := NewError("dispatch.error.invalid_route_spec")
	err := base.WithArgs("a||b")

	assert.Equal(t, `invalid route spec "a||b"`, err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "dispatch.error.invalid_route_spec", err.Key())
	assert.Equal(t, []interface{}{"a||b"}, err.Args())

	cause := errors.New("boom")
	wrapped := err.Wrap(cause)
	assert.Equal(t, `invalid route spec "a||b": boom`, wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.ErrorIs(t, wrapped, cause)

	outer := fmt.Errorf("building: %w", wrapped)
	var tr *TrError
	require.True(t, errors.As(outer, &tr))
	assert.Equal(t, "dispatch.error.invalid_route_spec", tr.Key())

	other := NewError("dispatch.error.invalid_option_spec")
	assert.False(t, errors.Is(err, other))
}

func TestTrError_WithBundle(t *testing.T) {
	b := NewEmptyBundle()
	require.NoError(t, b.AddLanguage(language.English, map[string]string{"greeting": "hello %s"}))

	err := NewError("greeting").WithArgs("world").(*TrError).WithBundle(b)

	assert.Equal(t, "hello world", err.Error())
}

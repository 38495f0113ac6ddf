// Package i18n provides the message bundle used to render errors and help text.
//
// A Bundle holds translations per language and formats messages through
// golang.org/x/text printers, so format verbs in translations are honoured.
// The default bundle is loaded once from the embedded locales directory and is
// never modified afterwards; build a separate bundle with NewBundle to add
// languages.
package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

//go:embed locales/*.json
var defaultLocales embed.FS

var (
	ErrInvalidLanguage                    = errors.New("invalid language in filename")
	ErrDefaultLanguageTranslationsMissing = errors.New("default language translations missing")
	ErrInvalidTranslations                = errors.New("invalid translations")
	ErrEmptyTranslations                  = errors.New("empty translations")
	ErrFailedToSetString                  = errors.New("failed to set string")
	ErrLanguageNotFound                   = errors.New("language not found")
	ErrMissingKey                         = errors.New("missing key")
	ErrExtraKey                           = errors.New("extra key")
)

// Bundle stores translations and the printers used to format them.
type Bundle struct {
	mu           sync.RWMutex
	defaultLang  language.Tag
	translations map[language.Tag]map[string]string
	catalog      *catalog.Builder
	printers     map[language.Tag]*message.Printer
}

var (
	defaultBundle     *Bundle
	defaultBundleOnce sync.Once
)

// Default returns the shared bundle built from the embedded locales.
func Default() *Bundle {
	defaultBundleOnce.Do(func() {
		var err error
		defaultBundle, err = NewBundleWithFS(defaultLocales, "locales")
		if err != nil {
			panic("failed to load embedded locales: " + err.Error())
		}
	})

	return defaultBundle
}

// NewBundle returns a fresh bundle loaded with the embedded locales.
func NewBundle() (*Bundle, error) {
	return NewBundleWithFS(defaultLocales, "locales")
}

// NewEmptyBundle returns a bundle without translations, defaulting to English.
func NewEmptyBundle() *Bundle {
	return &Bundle{
		defaultLang:  language.English,
		translations: make(map[language.Tag]map[string]string),
		catalog:      catalog.NewBuilder(),
		printers:     make(map[language.Tag]*message.Printer),
	}
}

// NewBundleWithFS loads every <lang>.json file found under dirPrefix.
func NewBundleWithFS(fs embed.FS, dirPrefix string) (*Bundle, error) {
	b := NewEmptyBundle()

	entries, err := fs.ReadDir(dirPrefix)
	if err != nil {
		return nil, err
	}

	others := make([]language.Tag, 0, len(entries))
	files := make(map[language.Tag]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		lang, err := language.Parse(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLanguage, entry.Name())
		}
		files[lang] = path.Join(dirPrefix, entry.Name())
		if lang != b.defaultLang {
			others = append(others, lang)
		}
	}

	// the default language is loaded first so the others can be validated against it
	order := append([]language.Tag{b.defaultLang}, others...)
	for _, lang := range order {
		file, ok := files[lang]
		if !ok {
			continue
		}

		data, err := fs.ReadFile(file)
		if err != nil {
			return nil, err
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, file, err)
		}

		if err := b.AddLanguage(lang, translations); err != nil {
			return nil, err
		}
	}

	if _, ok := b.translations[b.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefaultLanguageTranslationsMissing, b.defaultLang)
	}

	return b, nil
}

// T returns the translation for key in the default language, formatted with args.
func (b *Bundle) T(key string, args ...interface{}) string {
	b.mu.RLock()
	lang := b.defaultLang
	b.mu.RUnlock()

	return b.TL(lang, key, args...)
}

// TL returns the translation for key in lang, falling back to the default language.
func (b *Bundle) TL(lang language.Tag, key string, args ...interface{}) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p, ok := b.printers[lang]; ok {
		return render(p, key, args)
	}
	if p, ok := b.printers[b.defaultLang]; ok {
		return render(p, key, args)
	}

	return render(nil, key, args)
}

// render formats the message stored under key. Keys are catalogue lookups,
// not format strings, so args travel as a slice.
func render(p *message.Printer, key string, args []interface{}) string {
	switch {
	case p != nil:
		return p.Sprintf(key, args...)
	case len(args) > 0:
		return fmt.Sprintf(key, args...)
	default:
		return key
	}
}

// AddLanguage merges translations into lang. A non-default language must
// provide exactly the keys of the default language.
func (b *Bundle) AddLanguage(lang language.Tag, translations map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(translations) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTranslations, lang)
	}

	existing := b.translations[lang]
	merged := make(map[string]string, len(existing)+len(translations))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range translations {
		merged[k] = v
	}

	if lang != b.defaultLang && existing == nil {
		if errs := b.validate(lang, merged); len(errs) > 0 {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTranslations, lang, errors.Join(errs...))
		}
	}

	for key, value := range translations {
		if err := b.catalog.SetString(lang, key, value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFailedToSetString, key, err)
		}
	}

	b.translations[lang] = merged
	b.printers[lang] = message.NewPrinter(lang, message.Catalog(b.catalog))

	return nil
}

// HasKey reports whether key is translated in lang.
func (b *Bundle) HasKey(lang language.Tag, key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.translations[lang][key]
	return ok
}

// Message returns the raw, unformatted translation of key in the default language.
func (b *Bundle) Message(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	msg, ok := b.translations[b.defaultLang][key]
	return msg, ok
}

// Languages returns the loaded languages sorted by tag.
func (b *Bundle) Languages() []language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()

	langs := make([]language.Tag, 0, len(b.translations))
	for lang := range b.translations {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		return langs[i].String() < langs[j].String()
	})

	return langs
}

// SetDefaultLanguage changes the language used by T.
func (b *Bundle) SetDefaultLanguage(lang language.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.defaultLang = lang
}

// DefaultLanguage returns the language used by T.
func (b *Bundle) DefaultLanguage() language.Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.defaultLang
}

func (b *Bundle) validate(lang language.Tag, translations map[string]string) []error {
	defaults, ok := b.translations[b.defaultLang]
	if !ok {
		return []error{fmt.Errorf("%w: %s", ErrLanguageNotFound, b.defaultLang)}
	}

	var errs []error
	for key := range defaults {
		if _, ok := translations[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrMissingKey, lang, key))
		}
	}
	for key := range translations {
		if _, ok := defaults[key]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s: %q", ErrExtraKey, lang, key))
		}
	}

	return errs
}

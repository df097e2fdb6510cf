package i18n

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// DefaultNamespace is used by T for keys without a "ns:" prefix.
	DefaultNamespace = "common"

	// FallbackLanguage is consulted when a key is missing in the page language.
	FallbackLanguage = "en-US"
)

// Translator resolves keys for one language with a single fallback language.
//
// Thread-safety: a Translator is immutable once built and safe for
// concurrent use.
type Translator struct {
	lang      string
	fallback  string
	defaultNS string
	resources Resources
}

// NewTranslator creates a translator for lang over resources.
func NewTranslator(resources Resources, lang string) *Translator {
	if resources == nil {
		resources = Resources{}
	}
	if lang == "" {
		lang = FallbackLanguage
	}
	return &Translator{
		lang:      lang,
		fallback:  FallbackLanguage,
		defaultNS: DefaultNamespace,
		resources: resources,
	}
}

// Language returns the page language.
func (t *Translator) Language() string {
	return t.lang
}

// T translates key. A "ns:key" prefix selects the namespace. Lookup order is
// the page language, then the fallback language; a key found in neither is
// returned as-is.
func (t *Translator) T(key string) string {
	ns, name := t.defaultNS, key
	if i := strings.IndexByte(key, ':'); i > 0 {
		ns, name = key[:i], key[i+1:]
	}
	if text, ok := t.resources.Lookup(t.lang, ns, name); ok {
		return text
	}
	if text, ok := t.resources.Lookup(t.fallback, ns, name); ok {
		return text
	}
	return name
}

// Func returns T as a plain function, for template FuncMaps.
func (t *Translator) Func() func(string) string {
	return t.T
}

// Bootstrap loads the bundles named by files for lang and for the fallback
// language and returns a translator for lang.
//
// Load failures are logged and never returned: a page always gets a
// translator, at worst one that echoes keys.
func Bootstrap(ctx context.Context, loader Loader, lang string, files []string, logger *slog.Logger) *Translator {
	if logger == nil {
		logger = slog.Default()
	}
	if len(files) == 0 {
		files = []string{DefaultNamespace}
	}

	resources := Resources{}
	if loader == nil {
		logger.Warn("no translation loader configured", "lang", lang)
		return NewTranslator(resources, lang)
	}

	langs := []string{lang}
	if lang != FallbackLanguage {
		langs = append(langs, FallbackLanguage)
	}
	for _, l := range langs {
		loaded, err := loader.Load(ctx, l, files)
		if err != nil {
			logger.Warn("failed to load translations", "lang", l, "files", files, "error", err)
			continue
		}
		resources.Merge(loaded)
	}
	return NewTranslator(resources, lang)
}

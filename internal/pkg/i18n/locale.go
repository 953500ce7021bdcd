package i18n

import "strings"

const (
	LangUz = "uz"
	LangRu = "ru"
	LangEn = "en"

	DefaultLang = LangUz

	UntitledPlaceholder = "Untitled"
)

// FallbackChain order tried after the requested locale
var FallbackChain = []string{LangUz, LangRu, LangEn}

// Localized one logical text field stored per locale
type Localized struct {
	Uz string
	Ru string
	En string
}

// NormalizeLang lower-cases the requested code, blank means the primary locale
func NormalizeLang(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "" {
		return DefaultLang
	}
	return lang
}

// Get value for a locale, false for unsupported codes
func (l Localized) Get(lang string) (string, bool) {
	switch lang {
	case LangUz:
		return l.Uz, true
	case LangRu:
		return l.Ru, true
	case LangEn:
		return l.En, true
	default:
		return "", false
	}
}

// Resolve tries the requested locale, then every locale of FallbackChain
// (the primary one again even when it was requested), then placeholder.
func (l Localized) Resolve(lang, placeholder string) string {
	if v, ok := l.Get(lang); ok && v != "" {
		return v
	}
	for _, fallback := range FallbackChain {
		if v, _ := l.Get(fallback); v != "" {
			return v
		}
	}
	return placeholder
}

// Title resolves with the "Untitled" placeholder
func (l Localized) Title(lang string) string {
	return l.Resolve(lang, UntitledPlaceholder)
}

// Text resolves with an empty placeholder
func (l Localized) Text(lang string) string {
	return l.Resolve(lang, "")
}

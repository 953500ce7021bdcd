package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, "uz", NormalizeLang(""))
	assert.Equal(t, "uz", NormalizeLang("   "))
	assert.Equal(t, "ru", NormalizeLang("RU"))
	assert.Equal(t, "en", NormalizeLang(" En "))
	assert.Equal(t, "xx", NormalizeLang("xx"))
}

func TestLocalizedResolve(t *testing.T) {
	tests := []struct {
		name     string
		value    Localized
		lang     string
		expected string
	}{
		{
			name:     "requested locale present",
			value:    Localized{Uz: "Salom", Ru: "Привет", En: "Hello"},
			lang:     "ru",
			expected: "Привет",
		},
		{
			name:     "empty russian falls back to primary",
			value:    Localized{Uz: "Salom", En: "Hello"},
			lang:     "ru",
			expected: "Salom",
		},
		{
			name:     "primary missing falls through to russian",
			value:    Localized{Ru: "Привет", En: "Hello"},
			lang:     "en",
			expected: "Hello",
		},
		{
			name:     "primary requested but empty",
			value:    Localized{Ru: "Привет", En: "Hello"},
			lang:     "uz",
			expected: "Привет",
		},
		{
			name:     "unsupported code walks the chain",
			value:    Localized{En: "Hello"},
			lang:     "xx",
			expected: "Hello",
		},
		{
			name:     "nothing set",
			value:    Localized{},
			lang:     "en",
			expected: "fallback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Resolve(tt.lang, "fallback"))
		})
	}
}

func TestLocalizedPlaceholders(t *testing.T) {
	empty := Localized{}
	assert.Equal(t, "Untitled", empty.Title("ru"))
	assert.Equal(t, "", empty.Text("ru"))
	assert.NotPanics(t, func() { _ = empty.Title("zz-invalid") })
}

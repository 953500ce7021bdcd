package util

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

const (
	slugMaxRunes    = 280
	slugFallbackKey = "post"
)

var (
	separatorRun  = regexp.MustCompile(`[-\s]+`)
	asciiSlugJunk = regexp.MustCompile(`[^a-z0-9\s_-]+`)
)

// Slugify converts a title into a Unicode-preserving slug: NFKC normalised,
// lower-cased, anything but letters, digits, underscores, whitespace and
// hyphens removed, separator runs collapsed to one hyphen.
func Slugify(s string) string {
	s = strings.ToLower(norm.NFKC.String(s))
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_' || r == '-' || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return trimSlug(separatorRun.ReplaceAllString(s, "-"))
}

// SlugifyASCII transliterates to ASCII before slugifying.
func SlugifyASCII(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = asciiSlugJunk.ReplaceAllString(s, "")
	return trimSlug(separatorRun.ReplaceAllString(s, "-"))
}

func trimSlug(s string) string {
	return strings.Trim(s, "-_")
}

// SlugExistsFunc reports whether a slug is already taken.
type SlugExistsFunc func(ctx context.Context, slug string) (bool, error)

type SlugGenerator struct {
	transliterate bool
}

func NewSlugGenerator(transliterate bool) *SlugGenerator {
	return &SlugGenerator{transliterate: transliterate}
}

// Base slug for a title, never empty.
func (g *SlugGenerator) Base(title string) string {
	var base string
	if g.transliterate {
		base = SlugifyASCII(title)
	} else {
		base = Slugify(title)
	}
	if runes := []rune(base); len(runes) > slugMaxRunes {
		base = trimSlug(string(runes[:slugMaxRunes]))
	}
	if base == "" {
		return slugFallbackKey
	}
	return base
}

// Unique returns the base slug, or base-1, base-2, ... whichever is free first.
// Not safe against concurrent creators; the unique index is the backstop.
func (g *SlugGenerator) Unique(ctx context.Context, title string, exists SlugExistsFunc) (string, error) {
	base := g.Base(title)
	slug := base
	for counter := 1; ; counter++ {
		taken, err := exists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(counter)
	}
}

// UniqueSlug runs Unique with the Unicode-preserving slugifier.
func UniqueSlug(ctx context.Context, title string, exists SlugExistsFunc) (string, error) {
	return NewSlugGenerator(false).Unique(ctx, title, exists)
}

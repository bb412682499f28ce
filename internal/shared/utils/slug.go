package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)

	handEditedInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// latinDiacritics folds the five Serbian Latin diacritic letters to their
// closest unaccented equivalents.
var latinDiacritics = map[rune]string{
	'č': "c", 'ć': "c", 'đ': "d", 'š': "s", 'ž': "z",
}

// cyrillicToLatin transliterates lowercase Serbian Cyrillic to Latin.
// Letters with diacritic equivalents map to the diacritic form so that the
// fold step above stays the single source of truth for the 5-letter table.
var cyrillicToLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'ђ': "đ",
	'е': "e", 'ж': "ž", 'з': "z", 'и': "i", 'ј': "j", 'к': "k",
	'л': "l", 'љ': "lj", 'м': "m", 'н': "n", 'њ': "nj", 'о': "o",
	'п': "p", 'р': "r", 'с': "s", 'т': "t", 'ћ': "ć", 'у': "u",
	'ф': "f", 'х': "h", 'ц': "c", 'ч': "č", 'џ': "dž", 'ш': "š",
}

// Slugify derives a URL-safe base slug from a post or category title:
// lowercase, transliterate Serbian Cyrillic, fold diacritics, drop everything
// outside [a-z0-9\s-], turn whitespace into single hyphens, collapse hyphen
// runs and trim. Returns "" when nothing survives; callers must treat that
// as a validation error, not a valid slug.
func Slugify(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if latin, ok := cyrillicToLatin[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}

	var folded strings.Builder
	folded.Grow(b.Len())
	for _, r := range b.String() {
		if plain, ok := latinDiacritics[r]; ok {
			folded.WriteString(plain)
			continue
		}
		folded.WriteRune(r)
	}

	s := slugInvalidChars.ReplaceAllString(folded.String(), "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeSlug normalizes a hand-edited slug: lowercase, strip anything
// outside [a-z0-9-], collapse hyphen runs and trim. Used when an author
// overrides the generated slug in the editor.
func SanitizeSlug(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	s = handEditedInvalid.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

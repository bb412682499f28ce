package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"plain ascii", "Hello World", "hello-world"},
		{"serbian latin diacritics", "Čvrsta đavolja šuma žuta ćuprija", "cvrsta-davolja-suma-zuta-cuprija"},
		{"serbian cyrillic", "Стара прича", "stara-prica"},
		{"mixed scripts", "Тradicija Запланja!!", "tradicija-zaplanja"},
		{"punctuation stripped", "What's up, world?!", "whats-up-world"},
		{"hyphen runs collapse", "a -- b --- c", "a-b-c"},
		{"leading and trailing junk", "  ---Hello---  ", "hello"},
		{"digits survive", "Top 10 lista za 2024", "top-10-lista-za-2024"},
		{"only punctuation", "!!! ??? ...", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	titles := []string{
		"Hello World",
		"Čvrsta đavolja šuma",
		"Стара прича",
		"Top 10 lista za 2024",
	}

	for _, title := range titles {
		once := Slugify(title)
		assert.Equal(t, once, Slugify(once), "slugifying a slug must be a no-op: %q", title)
	}
}

func TestSlugifyCharacterClass(t *testing.T) {
	valid := regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	titles := []string{
		"Hello World",
		"Čvrsta đavolja šuma žuta ćuprija",
		"Тradicija Запланja!!",
		"  mixed CASE and    spaces  ",
		"emoji 🎉 party",
	}

	for _, title := range titles {
		s := Slugify(title)
		if s == "" {
			continue
		}
		assert.True(t, valid.MatchString(s), "slug %q from %q breaks the character class", s, title)
	}
}

func TestSanitizeSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"already clean", "my-custom-slug", "my-custom-slug"},
		{"uppercase folded", "My-Custom-Slug", "my-custom-slug"},
		{"spaces dropped not hyphenated", "my custom slug", "mycustomslug"},
		{"invalid chars stripped", "my_slug!#1", "myslug1"},
		{"hyphen runs collapse", "a--b---c", "a-b-c"},
		{"trimmed", "-edges-", "edges"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeSlug(tt.input))
		})
	}
}

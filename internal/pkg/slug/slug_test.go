package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"mixed case", "My First POST", "my-first-post"},
		{"punctuation stripped", "What's New? (2026 Edition)", "whats-new-2026-edition"},
		{"transliteration", "Café résumé", "cafe-resume"},
		{"collapsed hyphens", "a  --  b", "a-b"},
		{"trimmed edges", "  -leading and trailing-  ", "leading-and-trailing"},
		{"numbers kept", "Top 10 Wins", "top-10-wins"},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{"hello", "hello-world", "post-42", "a"}
	for _, s := range valid {
		assert.True(t, IsValid(s), s)
	}

	invalid := []string{"", "Hello", "hello world", "-lead", "trail-", "dou--ble", "café"}
	for _, s := range invalid {
		assert.False(t, IsValid(s), s)
	}
}

func TestMakeProducesValidSlugs(t *testing.T) {
	titles := []string{"Hello World", "Café résumé", "What's New? (2026)", "a  --  b"}
	for _, title := range titles {
		s := Make(title)
		if s != "" {
			assert.True(t, IsValid(s), "Make(%q) = %q", title, s)
		}
	}
}

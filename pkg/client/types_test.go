package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CategoryList
	}{
		{"json array", `["newsroom","achievements"]`, CategoryList{"newsroom", "achievements"}},
		{"comma string", `"newsroom, thought-pieces"`, CategoryList{"newsroom", "thought-pieces"}},
		{"mixed case and padding", `[" Newsroom ","AWARDS-RECOGNITION"]`, CategoryList{"newsroom", "awards-recognition"}},
		{"duplicates collapsed", `["newsroom","newsroom","achievements"]`, CategoryList{"newsroom", "achievements"}},
		{"unknown values dropped", `["newsroom","bogus"]`, CategoryList{"newsroom"}},
		{"all unknown falls back", `["bogus","nope"]`, CategoryList{"newsroom"}},
		{"empty array falls back", `[]`, CategoryList{"newsroom"}},
		{"garbage falls back", `42`, CategoryList{"newsroom"}},
		{"null falls back", `null`, CategoryList{"newsroom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got CategoryList
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostDecodeToleratesStringCategories(t *testing.T) {
	raw := `{"id":"p1","title":"Hello","slug":"hello","categories":"achievements","view_count":7}`

	var post Post
	require.NoError(t, json.Unmarshal([]byte(raw), &post))
	assert.Equal(t, CategoryList{"achievements"}, post.Categories)
	assert.Equal(t, 7, post.ViewCount)
}

func TestPostDecodeDefaultsAbsentCategories(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"key absent", `{"id":"p1","title":"Hello","slug":"hello","view_count":3}`},
		{"key null", `{"id":"p1","title":"Hello","slug":"hello","categories":null}`},
		{"key empty array", `{"id":"p1","title":"Hello","slug":"hello","categories":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var post Post
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &post))
			assert.Equal(t, CategoryList{CategoryNewsroom}, post.Categories)
		})
	}
}

func TestAuthorFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Author{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", Author{FirstName: "Ada"}.FullName())
	assert.Equal(t, "", Author{}.FullName())
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want StringArray
	}{
		{"nil defaults", nil, StringArray{CategoryNewsroom}},
		{"empty defaults", []string{}, StringArray{CategoryNewsroom}},
		{"valid kept in order", []string{"achievements", "newsroom"}, StringArray{"achievements", "newsroom"}},
		{"case and padding normalized", []string{" Newsroom ", "THOUGHT-PIECES"}, StringArray{"newsroom", "thought-pieces"}},
		{"unknown dropped", []string{"newsroom", "bogus"}, StringArray{"newsroom"}},
		{"all unknown defaults", []string{"bogus", "nope"}, StringArray{CategoryNewsroom}},
		{"duplicates collapsed", []string{"newsroom", "newsroom", "achievements"}, StringArray{"newsroom", "achievements"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategories(tt.in))
		})
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("Newsroom"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("news"))
}

func TestStringArrayValue(t *testing.T) {
	v, err := StringArray{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, v)

	v, err = StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringArrayScan(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want StringArray
	}{
		{"json array bytes", []byte(`["newsroom","achievements"]`), StringArray{"newsroom", "achievements"}},
		{"json array string", `["a"]`, StringArray{"a"}},
		{"quoted comma string", `"a,b"`, StringArray{"a", "b"}},
		{"bare comma string", "a,b", StringArray{"a", "b"}},
		{"quoted empty string", `""`, StringArray{}},
		{"empty input", "", StringArray{}},
		{"sql null literal", "null", StringArray{}},
		{"nil value", nil, StringArray{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringArray
			require.NoError(t, got.Scan(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringArrayScanRejectsUnsupportedType(t *testing.T) {
	var got StringArray
	assert.Error(t, got.Scan(42))
}

package riotid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Identity
	}{
		{name: "nameAndTag", input: "Hextech Chest#202", expected: Identity{Name: "Hextech Chest", Tag: "202"}},
		{name: "noSeparator", input: "Faker", expected: Identity{Name: "Faker", Tag: ""}},
		{name: "multipleHashes", input: "Player#Name#TAG1", expected: Identity{Name: "Player", Tag: "Name#TAG1"}},
		{name: "emptyTag", input: "Player#", expected: Identity{Name: "Player", Tag: ""}},
		{name: "unicode", input: "Ólafur ñ#EUW", expected: Identity{Name: "Ólafur ñ", Tag: "EUW"}},
		{name: "empty", input: "", expected: Identity{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Split(tt.input))
		})
	}
}

func TestIdentityString(t *testing.T) {
	assert.Equal(t, "Faker#KR1", Identity{Name: "Faker", Tag: "KR1"}.String())
	assert.Equal(t, "Faker", Identity{Name: "Faker"}.String())
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		slug     string
		expected string
	}{
		{name: "nameAndTag", input: "Hextech Chest#202", slug: "Hextech-Chest--202", expected: "Hextech Chest#202"},
		{name: "spaceBeforeSeparator", input: "A #X", slug: "A--X", expected: "A#X"},
		{name: "spaceAfterSeparator", input: "A# X", slug: "A--X", expected: "A#X"},
		{name: "outerSpaces", input: " Faker # KR1 ", slug: "Faker--KR1", expected: "Faker#KR1"},
		{name: "noTag", input: "Faker", slug: "Faker", expected: "Faker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := Slug(tt.input)
			assert.Equal(t, tt.slug, slug)
			assert.Equal(t, tt.expected, Unslug(slug))
		})
	}
}

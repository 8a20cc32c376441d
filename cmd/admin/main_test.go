package main

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/tendant/simple-cms/internal/domain"
)

func TestParseFlags(t *testing.T) {
	flags := parseFlags([]string{"--name=News", "--images", "positional", "--", "--sort=-createdAt,title"})

	assert.Equal(t, map[string]string{
		"name":   "News",
		"images": "true",
		"sort":   "-createdAt,title",
	}, flags)
}

func TestSortFrom(t *testing.T) {
	assert.Nil(t, sortFrom(""))
	assert.Equal(t, []domain.SortField{
		{Field: "createdAt", Desc: true},
		{Field: "title"},
	}, sortFrom("-createdAt, title"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Café", truncate("Café", 4))

	got := truncate("日本語のタイトルです", 6)
	assert.Equal(t, "日本語...", got)
	assert.True(t, utf8.ValidString(got))
}

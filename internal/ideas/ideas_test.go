package ideas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoTitlesDeterministic(t *testing.T) {
	seeds := []string{"cold email", "youtube automation", "lead generation"}

	first := VideoTitles(seeds, 8)
	second := VideoTitles(seeds, 8)

	require.Len(t, first, 8)
	assert.Equal(t, first, second, "same seeds must generate the same titles")
}

func TestVideoTitlesUniqueAndCapped(t *testing.T) {
	titles := VideoTitles([]string{"funnels"}, 15)

	seen := make(map[string]struct{}, len(titles))

	for _, title := range titles {
		_, dup := seen[title]
		assert.False(t, dup, "duplicate title %q", title)
		seen[title] = struct{}{}

		assert.LessOrEqual(t, len([]rune(title)), 60, "title %q over 60 chars", title)
	}
}

func TestVideoTitlesFallbackSeeds(t *testing.T) {
	titles := VideoTitles(nil, 5)
	require.Len(t, titles, 5)

	for _, title := range titles {
		assert.NotEmpty(t, title)
	}
}

func TestVideoTitlesZeroCount(t *testing.T) {
	assert.Nil(t, VideoTitles([]string{"seo"}, 0))
}

func TestCleanSeed(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"cold email", "Cold Email"},
		{"making this thing", "Making"}, // "this" and "thing" are stopwords
		{"best way", "Strategy"},        // all stopwords falls back
		{"SEO!!!", "Seo"},
		{"", "Strategy"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanSeed(tc.input), "input %q", tc.input)
	}
}

func TestThumbnailConcepts(t *testing.T) {
	concepts := ThumbnailConcepts("fix my outreach bot")
	require.Len(t, concepts, 10)

	assert.Contains(t, concepts[1], "Fix Fix Fast") // first strong hint word is "fix"

	for _, c := range concepts {
		assert.Equal(t, 5, len(strings.Split(c, " | ")), "brief %q should have five fields", c)
	}
}

func TestThumbnailConceptsDefaultKey(t *testing.T) {
	concepts := ThumbnailConcepts("")
	assert.Contains(t, concepts[1], "Fix Your Bot Fast")
}

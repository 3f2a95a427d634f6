package audit

import (
	"strings"
	"testing"
)

func TestScoreSEOPerfectVideo(t *testing.T) {
	// 58-char title with a power word and a digit.
	title := "The Ultimate Guide To Growing Your Channel in 90 Days Flat"
	if got := len(title); got != 58 {
		t.Fatalf("test title length = %d, want 58", got)
	}

	desc := strings.Repeat("Learn the exact system. ", 10) + "Chapters: 0:00 intro. https://example.com/start"
	if len(desc) < 250 {
		t.Fatalf("test description too short: %d", len(desc))
	}

	score, b := ScoreSEO(title, desc, float64p(6.0), float64p(2.0), 0)

	// Title 12+10+8+10, description 15+10+10, engagement 18+7.
	if score != 100 {
		t.Errorf("score = %d, want 100", score)
	}

	if !b.TitleLenOK || !b.PowerWord || !b.HasNumber || !b.DescLenOK || !b.Chapters || !b.Links {
		t.Errorf("breakdown flags = %+v, want all set", b)
	}
}

func TestScoreSEOEngagementBands(t *testing.T) {
	tests := []struct {
		name        string
		likeRate    *float64
		commentRate *float64
		want        int
	}{
		{"rates at caps", float64p(5.0), float64p(1.0), 25},
		{"rates above caps clamp", float64p(12.0), float64p(4.0), 25},
		{"half like rate floors", float64p(2.5), float64p(0), 9},
		{"partial comment rate floors", float64p(0), float64p(0.5), 3},
		{"unknown rates score zero engagement", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Empty title/description so only dup_penalty==0 awards points.
			score, _ := ScoreSEO("", "", tt.likeRate, tt.commentRate, 1)
			if score != tt.want {
				t.Errorf("engagement points = %d, want %d", score, tt.want)
			}
		})
	}
}

func TestScoreSEOBounds(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		desc       string
		dupPenalty int
	}{
		{"empty everything", "", "", 0},
		{"heavy duplication", "cash cash cash cash", "", 5},
		{"long spammy title", strings.Repeat("buy ", 40), strings.Repeat("x", 500), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := ScoreSEO(tt.title, tt.desc, float64p(99), float64p(99), tt.dupPenalty)
			if score < 0 || score > 100 {
				t.Errorf("score = %d, want within [0,100]", score)
			}
		})
	}
}

func TestChapterAndLinkPatterns(t *testing.T) {
	if !hasChapters("Intro 0:00 then 12:30 deep dive") {
		t.Error("timestamp markers should count as chapters")
	}

	if hasChapters("we raised 100:1 odds") {
		t.Error("three-digit prefix is not a chapter marker")
	}

	if !hasLink("watch more at https://example.com") || !hasLink("http://a.b") {
		t.Error("http(s) links should be detected")
	}

	if hasLink("ftp://example.com") {
		t.Error("only http(s) schemes count as links")
	}
}

func TestPowerWordWholeWordMatch(t *testing.T) {
	if !hasPowerWord("My SECRET morning routine") {
		t.Error("power word match should be case-insensitive")
	}

	if hasPowerWord("newest gadgets this year") {
		t.Error("power words must match whole words only")
	}
}

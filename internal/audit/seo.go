package audit

import (
	"math"
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

// SEO rubric point awards. The rubric is additive with independent checks;
// only the two engagement bands award partial credit.
const (
	ptsTitleLen   = 12
	ptsPowerWord  = 10
	ptsHasNumber  = 8
	ptsNoDupWords = 10

	ptsLongDesc = 15
	ptsChapters = 10
	ptsLinks    = 10

	descLenMin = 200

	likeRateCap     = 5.0
	likeRateBand    = 18
	commentRateCap  = 1.0
	commentRateBand = 7

	maxSeoScore = 100
)

// powerWords is the fixed vocabulary of persuasive terms, matched as
// case-insensitive whole words.
var powerWords = regexp.MustCompile(`(?i)\b(best|secret|fast|simple|ultimate|new|proof|free|easy|guide|mistake|hack|win|earn|rich|money|truth|behind|strategy|blueprint)\b`)

var (
	chapterPattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	linkPattern    = regexp.MustCompile(`https?://`)
)

func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func hasPowerWord(s string) bool { return powerWords.MatchString(s) }
func hasChapters(s string) bool  { return chapterPattern.MatchString(s) }
func hasLink(s string) bool      { return linkPattern.MatchString(s) }

// ScoreSEO scores one video against the fixed title/description/engagement
// rubric. Nil rates score as zero engagement; the diagnostics layer, not the
// scorer, is responsible for surfacing them as unknown.
func ScoreSEO(title, description string, likeRate, commentRate *float64, dupPenalty int) (int, domain.SeoBreakdown) {
	pts := 0

	b := domain.SeoBreakdown{
		TitleLenOK: titleLenFit(title),
		PowerWord:  hasPowerWord(title),
		HasNumber:  hasNumber(title),
		DupPenalty: dupPenalty,
		DescLenOK:  utf8.RuneCountInString(description) >= descLenMin,
		Chapters:   hasChapters(description),
		Links:      hasLink(description),
	}

	if b.TitleLenOK {
		pts += ptsTitleLen
	}

	if b.PowerWord {
		pts += ptsPowerWord
	}

	if b.HasNumber {
		pts += ptsHasNumber
	}

	if dupPenalty == 0 {
		pts += ptsNoDupWords
	}

	if b.DescLenOK {
		pts += ptsLongDesc
	}

	if b.Chapters {
		pts += ptsChapters
	}

	if b.Links {
		pts += ptsLinks
	}

	b.LikeRate = math.Max(0, derefOrZero(likeRate))
	b.CommentRate = math.Max(0, derefOrZero(commentRate))

	pts += int(math.Floor(math.Min(b.LikeRate, likeRateCap) / likeRateCap * likeRateBand))
	pts += int(math.Floor(math.Min(b.CommentRate, commentRateCap) / commentRateCap * commentRateBand))

	if pts > maxSeoScore {
		pts = maxSeoScore
	}

	return pts, b
}

func titleLenFit(title string) bool {
	n := utf8.RuneCountInString(title)
	return n >= titleLenMin && n <= titleLenMax
}

func derefOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}

	return *p
}

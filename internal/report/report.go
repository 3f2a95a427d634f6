// Package report turns an audit result into the downloadable PDF. Building
// is split in two: Build assembles the textual document, render writes it to
// PDF, so the content can be tested without parsing PDF output.
package report

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/charliesmith-boop/youtube-audit/internal/audit"
)

const tipsPerVideo = 4

// VideoRow is one line of the report's video table.
type VideoRow struct {
	Title       string
	Description string
	Comments    int64
	Views       int64
	SeoScore    int
}

// Document is the fully assembled report content in print order.
type Document struct {
	ChannelName string
	ChannelURL  string
	GeneratedAt time.Time
	Subscribers int64
	TotalViews  int64

	KPILines           []string
	Rows               []VideoRow
	SeoSummary         []string
	VideoTips          [][]string
	ImprovementSummary []string
	QuickWins          []string
	Keywords           []string
}

// Build assembles the document from an audit result.
func Build(res audit.Result, generatedAt time.Time) Document {
	p := message.NewPrinter(language.English)

	doc := Document{
		ChannelName: res.Channel.Name,
		ChannelURL:  res.Channel.URL,
		GeneratedAt: generatedAt.UTC(),
		Subscribers: res.Channel.Subscribers,
		TotalViews:  res.Channel.TotalViews,
	}

	doc.KPILines = []string{
		fmt.Sprintf("Videos: %d", res.KPIs.Videos),
		p.Sprintf("Avg views: %d", res.KPIs.AvgViews),
		p.Sprintf("Median likes: %d", res.KPIs.MedianLikes),
		p.Sprintf("Avg views/min: %d", res.KPIs.AvgViewsPerMin),
		fmt.Sprintf("Consistency: %d/100", res.KPIs.Consistency),
		fmt.Sprintf("Avg SEO: %d/100", res.KPIs.AvgSeo),
	}

	doc.Rows = make([]VideoRow, 0, len(res.Videos))
	doc.VideoTips = make([][]string, 0, len(res.Videos))

	for _, v := range res.Videos {
		doc.Rows = append(doc.Rows, VideoRow{
			Title:       v.Title,
			Description: v.Description,
			Comments:    int64OrZero(v.Comments),
			Views:       v.Views,
			SeoScore:    v.SeoScore,
		})

		tips := v.Tips
		if len(tips) > tipsPerVideo {
			tips = tips[:tipsPerVideo]
		}

		doc.VideoTips = append(doc.VideoTips, tips)
	}

	doc.SeoSummary = make([]string, 0, len(res.SeoSummary)+1)
	doc.SeoSummary = append(doc.SeoSummary, fmt.Sprintf("Average SEO score: %d/100", res.KPIs.AvgSeo))

	for _, line := range res.SeoSummary {
		doc.SeoSummary = append(doc.SeoSummary, fmt.Sprintf("%s: %d videos", line.Label, line.Count))
	}

	doc.ImprovementSummary = res.Summary
	doc.QuickWins = res.QuickWins

	doc.Keywords = make([]string, 0, len(res.Keywords))
	for _, kw := range res.Keywords {
		doc.Keywords = append(doc.Keywords, kw.Word)
	}

	return doc
}

// Filename is the suggested download name for the document.
func (d Document) Filename() string {
	name := d.ChannelName
	if name == "" {
		name = "channel"
	}

	return fmt.Sprintf("YouTube_Audit_%s.pdf", name)
}

func int64OrZero(v *int64) int64 {
	if v == nil {
		return 0
	}

	return *v
}

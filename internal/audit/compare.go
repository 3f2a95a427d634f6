package audit

import (
	"time"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

// ChannelBatch is one channel's fetched records labeled for comparison
// ("You", "A", "B").
type ChannelBatch struct {
	Label   string
	Channel domain.ChannelMeta
	Records []domain.VideoRecord
}

// ComparisonRow is one video in the merged comparison table.
type ComparisonRow struct {
	Who   string `json:"who"`
	Video Video  `json:"video"`
}

// Comparison is the merged engagement/velocity view across channels.
type Comparison struct {
	Rows []ComparisonRow `json:"rows"`
}

// Compare derives engagement and velocity metrics for every channel's
// batch and merges them in input order. Fetching the batches may happen
// concurrently upstream; this call expects them already complete, since
// comparison output order must be deterministic.
func Compare(batches []ChannelBatch, now time.Time) Comparison {
	var rows []ComparisonRow

	for _, batch := range batches {
		for _, rec := range batch.Records {
			v := Video{VideoRecord: rec}
			v.Metrics = Derive(rec, now)

			rows = append(rows, ComparisonRow{Who: batch.Label, Video: v})
		}
	}

	return Comparison{Rows: rows}
}

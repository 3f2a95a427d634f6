package audit

import (
	"testing"
	"time"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

func TestAnalyzeCadenceWeeklyUploads(t *testing.T) {
	start := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC) // a Monday
	times := make([]time.Time, 6)

	for i := range times {
		times[i] = start.AddDate(0, 0, 7*i)
	}

	stats := AnalyzeCadence(times)

	if stats.UploadsPerWeek != 1.0 {
		t.Errorf("uploads/week = %v, want 1.0", stats.UploadsPerWeek)
	}

	if stats.MedianGapDays == nil || *stats.MedianGapDays != 7.0 {
		t.Errorf("median gap = %v, want 7.0", stats.MedianGapDays)
	}

	if stats.BestDay != "Monday" {
		t.Errorf("best day = %q, want Monday", stats.BestDay)
	}

	if stats.BestHourUTC == nil || *stats.BestHourUTC != 15 {
		t.Errorf("best hour = %v, want 15", stats.BestHourUTC)
	}

	// 0.7*min(1, 1/3) + 0.3*(1/(1+0)) = 0.5333 -> 53
	if stats.Consistency != 53 {
		t.Errorf("consistency = %d, want 53", stats.Consistency)
	}
}

func TestAnalyzeCadenceEmpty(t *testing.T) {
	stats := AnalyzeCadence(nil)

	if stats.UploadsPerWeek != 0 {
		t.Errorf("uploads/week = %v, want 0", stats.UploadsPerWeek)
	}

	if stats.MedianGapDays != nil {
		t.Errorf("median gap = %v, want undefined", *stats.MedianGapDays)
	}

	if stats.BestDay != "N/A" {
		t.Errorf("best day = %q, want N/A", stats.BestDay)
	}

	if stats.BestHourUTC != nil {
		t.Errorf("best hour = %v, want undefined", *stats.BestHourUTC)
	}

	if stats.Consistency != 0 {
		t.Errorf("consistency = %d, want 0", stats.Consistency)
	}
}

func TestAnalyzeCadenceSingleUpload(t *testing.T) {
	only := time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC) // a Wednesday
	stats := AnalyzeCadence([]time.Time{only})

	if stats.UploadsPerWeek != 0 {
		t.Errorf("uploads/week = %v, want 0 with no gaps", stats.UploadsPerWeek)
	}

	if stats.MedianGapDays != nil {
		t.Errorf("median gap = %v, want undefined with no gaps", *stats.MedianGapDays)
	}

	if stats.BestDay != "Wednesday" {
		t.Errorf("best day = %q, want Wednesday", stats.BestDay)
	}

	// With fewer than two gaps the stddev defaults to 5.0, strongly
	// penalizing sparse history: 0.7*0 + 0.3*(1/6) = 0.05 -> 5.
	if stats.Consistency != 5 {
		t.Errorf("consistency = %d, want 5", stats.Consistency)
	}
}

func TestAnalyzeCadenceUnsorted(t *testing.T) {
	base := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.AddDate(0, 0, 14),
		base,
		base.AddDate(0, 0, 7),
	}

	stats := AnalyzeCadence(times)

	if stats.MedianGapDays == nil || *stats.MedianGapDays != 7.0 {
		t.Errorf("median gap = %v, want 7.0 after sorting", stats.MedianGapDays)
	}
}

func TestCadenceFromRecordsDropsUnknownTimestamps(t *testing.T) {
	base := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	records := []domain.VideoRecord{
		{PublishedAt: timep(base)},
		{PublishedAt: nil}, // unparseable upstream, dropped
		{PublishedAt: timep(base.AddDate(0, 0, 7))},
	}

	stats := CadenceFromRecords(records)

	if stats.MedianGapDays == nil || *stats.MedianGapDays != 7.0 {
		t.Errorf("median gap = %v, want 7.0 from the two valid records", stats.MedianGapDays)
	}
}

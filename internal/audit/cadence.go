package audit

import (
	"math"
	"sort"
	"time"

	"github.com/charliesmith-boop/youtube-audit/internal/core/domain"
)

const (
	hoursPerDay = 24.0

	// targetUploadsPerWeek saturates the frequency term: three uploads a
	// week or more counts as fully consistent frequency.
	targetUploadsPerWeek = 3.0

	freqWeight      = 0.7
	stabilityWeight = 0.3

	// sparseGapStddev stands in for the gap deviation when fewer than two
	// gaps exist, strongly penalizing channels with too little history.
	sparseGapStddev = 5.0

	cadenceNA = "N/A"
)

// AnalyzeCadence computes upload frequency and regularity from publish
// instants. Unparseable entries must be dropped by the caller; an empty set
// yields the zero/"N/A" default rather than an error.
func AnalyzeCadence(times []time.Time) domain.CadenceStats {
	if len(times) == 0 {
		return domain.CadenceStats{BestDay: cadenceNA}
	}

	sorted := make([]time.Time, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Sub(sorted[i-1]).Hours()/hoursPerDay)
	}

	stats := domain.CadenceStats{BestDay: bestWeekday(sorted)}
	hour := bestHour(sorted)
	stats.BestHourUTC = &hour

	if len(gaps) > 0 {
		med := median(gaps)
		medRounded := round2(med)
		stats.MedianGapDays = &medRounded

		if med > 0 {
			stats.UploadsPerWeek = round2(7.0 / med)
		}
	}

	gapStddev := sparseGapStddev
	if len(gaps) >= 2 {
		gapStddev = sampleStd(gaps)
	}

	freq := math.Min(1.0, stats.UploadsPerWeek/targetUploadsPerWeek)
	stability := 1.0 / (1.0 + gapStddev)
	stats.Consistency = int(math.Round((freqWeight*freq + stabilityWeight*stability) * 100))

	return stats
}

// CadenceFromRecords runs the analyzer over the batch's known publish
// instants, skipping records whose timestamp failed to parse.
func CadenceFromRecords(videos []domain.VideoRecord) domain.CadenceStats {
	times := make([]time.Time, 0, len(videos))

	for _, v := range videos {
		if v.PublishedAt != nil {
			times = append(times, *v.PublishedAt)
		}
	}

	return AnalyzeCadence(times)
}

func bestWeekday(times []time.Time) string {
	var counts [7]int
	for _, t := range times {
		counts[t.UTC().Weekday()]++
	}

	best := 0
	for d := 1; d < 7; d++ {
		if counts[d] > counts[best] {
			best = d
		}
	}

	return time.Weekday(best).String()
}

func bestHour(times []time.Time) int {
	var counts [24]int
	for _, t := range times {
		counts[t.UTC().Hour()]++
	}

	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] > counts[best] {
			best = h
		}
	}

	return best
}

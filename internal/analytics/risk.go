// Package analytics aggregates a user's event logs into usage summaries
// and risk-hour histograms. Pure functions over already-fetched records;
// all I/O stays with the caller.
package analytics

import (
	"sort"

	"github.com/quitwise/quitwise-backend/internal/store"
)

// topRiskHours bounds how many risk windows feed intervention scheduling.
const topRiskHours = 3

// RiskWindows buckets logs by hour of day and returns the top hours by
// event frequency, at most topRiskHours of them. Ties rank by ascending
// hour. Records without a timestamp are ignored; no events means an
// empty (non-nil) result.
func RiskWindows(logs []store.LogEntry) []int {
	counts := make(map[int]int)
	for _, l := range logs {
		if l.Timestamp.IsZero() {
			continue
		}
		counts[l.Timestamp.Hour()]++
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})

	if len(hours) > topRiskHours {
		hours = hours[:topRiskHours]
	}
	return hours
}

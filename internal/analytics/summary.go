package analytics

import (
	"math"
	"time"

	"github.com/quitwise/quitwise-backend/internal/store"
)

// Summary is the analytics payload served per user: counts and spend over
// the report window plus savings projected from the quit date.
type Summary struct {
	TotalUses        int     `json:"totalUses"`
	TotalCravings    int     `json:"totalCravings"`
	ResistedCravings int     `json:"resistedCravings"`
	TotalSpent       float64 `json:"totalSpent"`
	TotalSaved       float64 `json:"totalSaved"`
	DaysSinceQuit    int     `json:"daysSinceQuit"`
	RiskWindows      []int   `json:"riskWindows"`
	CostPerUnit      float64 `json:"costPerUnit"`
}

// Summarize computes the usage summary for one user from their profile
// and a window of log entries.
func Summarize(profile *store.UserProfile, logs []store.LogEntry, now time.Time) Summary {
	s := Summary{RiskWindows: RiskWindows(logs)}

	for _, l := range logs {
		switch l.Type {
		case "use":
			s.TotalUses++
		case "craving":
			s.TotalCravings++
			if l.Resisted {
				s.ResistedCravings++
			}
		}
	}

	if profile.EconomicProfile != nil {
		s.CostPerUnit = profile.EconomicProfile.CostPerUnit
	}
	s.TotalSpent = float64(s.TotalUses) * s.CostPerUnit

	if profile.QuitGoal != nil && profile.QuitGoal.QuitDate != "" {
		if quit, ok := parseQuitDate(profile.QuitGoal.QuitDate); ok {
			s.DaysSinceQuit = int(math.Floor(now.Sub(quit).Hours() / 24))
			var dailyUsage float64
			if profile.PsychologicalProfile != nil {
				dailyUsage = profile.PsychologicalProfile.DailyUsage
			}
			s.TotalSaved = float64(s.DaysSinceQuit) * dailyUsage * s.CostPerUnit
		}
	}

	return s
}

// parseQuitDate accepts the two shapes profiles have carried historically:
// full RFC 3339 instants and bare YYYY-MM-DD dates.
func parseQuitDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

package query

import (
	"fmt"
	"math"

	"github.com/sells-group/prospector-cli/internal/model"
)

// ComputeStats summarizes the full record set. State/stage frequency tables
// ignore any filter; groupBy adds an optional breakdown keyed by the string
// value of an arbitrary field (missing or falsy values bucket as "Unknown").
func ComputeStats(records []model.ContactRecord, groupBy string) *model.Stats {
	stats := &model.Stats{
		Total:   len(records),
		ByState: make(map[string]int),
		ByStage: make(map[string]int),
	}

	scoreSum := 0
	for i := range records {
		c := &records[i]
		stats.ByState[string(c.ContactState)]++
		stats.ByStage[c.Stage]++
		scoreSum += c.QualityScore

		if c.IsExecutive {
			stats.HighValueTargets.Executives++
		}
		if c.EmailStatus == model.EmailStatusVerified && c.ContactState == model.StateNotContacted {
			stats.HighValueTargets.VerifiedNotContacted++
		}
		if c.QualityScore >= 70 &&
			(c.ContactState == model.StateNotContacted || c.ContactState == model.StateInterestedNotContacted) {
			stats.HighValueTargets.HighQualityNotContacted++
		}
	}

	if len(records) > 0 {
		avg := float64(scoreSum) / float64(len(records))
		stats.AvgQualityScore = math.Round(avg*10) / 10
	}

	if groupBy != "" {
		stats.Breakdown = make(map[string]int)
		for i := range records {
			stats.Breakdown[breakdownKey(&records[i], groupBy)]++
		}
	}

	return stats
}

// breakdownKey stringifies a field value for grouping. Absent and falsy
// values (empty string, zero, false) all bucket together.
func breakdownKey(c *model.ContactRecord, field string) string {
	v, ok := model.Field(c, field)
	if !ok {
		return "Unknown"
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return "Unknown"
		}
		return val
	case float64:
		if val == 0 {
			return "Unknown"
		}
		return fmt.Sprintf("%g", val)
	case bool:
		if !val {
			return "Unknown"
		}
		return "true"
	default:
		return fmt.Sprint(val)
	}
}

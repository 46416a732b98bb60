package algo

import (
	"sort"

	"github.com/huangsam/shiftgrid/schema"
)

// RankSummaries sorts person summaries by their longest streak in descending
// order and returns the top 'limit' entries. Ties fall back to the streak on
// the last scheduled day and then to the person ID. If limit is not positive or
// exceeds the number of summaries, all summaries are returned in sorted order.
func RankSummaries(summaries []schema.PersonSummary, limit int) []schema.PersonSummary {
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].MaxStreak != summaries[j].MaxStreak {
			return summaries[i].MaxStreak > summaries[j].MaxStreak
		}
		if summaries[i].LastStreak != summaries[j].LastStreak {
			return summaries[i].LastStreak > summaries[j].LastStreak
		}
		return summaries[i].PersonID < summaries[j].PersonID
	})
	if limit > 0 && len(summaries) > limit {
		return summaries[:limit]
	}
	return summaries
}

package core

import (
	"sort"

	"github.com/wagonlab/railscan/schema"
)

// RankChanges sorts change results by score in descending order and returns
// the top 'limit' entries. Ties break on signal code so repeated runs stay
// stable. If limit is not positive, all results are returned sorted.
func RankChanges(changes []schema.ParameterChange, limit int) []schema.ParameterChange {
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Result.ChangeScore != changes[j].Result.ChangeScore {
			return changes[i].Result.ChangeScore > changes[j].Result.ChangeScore
		}
		return changes[i].Parameter.SignalCode < changes[j].Parameter.SignalCode
	})
	if limit > 0 && len(changes) > limit {
		return changes[:limit]
	}
	return changes
}

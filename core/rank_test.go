package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wagonlab/railscan/schema"
)

func change(code string, score float64) schema.ParameterChange {
	return schema.ParameterChange{
		Parameter: schema.Parameter{SignalCode: code},
		Result:    schema.ChangeResult{IsChanged: true, ChangeScore: score},
	}
}

func TestRankChangesSortsByScoreDescending(t *testing.T) {
	ranked := RankChanges([]schema.ParameterChange{
		change("F_A_1", 0.2),
		change("F_B_1", 0.9),
		change("F_C_1", 0.5),
	}, 0)

	codes := make([]string, len(ranked))
	for i, c := range ranked {
		codes[i] = c.Parameter.SignalCode
	}
	assert.Equal(t, []string{"F_B_1", "F_C_1", "F_A_1"}, codes)
}

func TestRankChangesTieBreaksOnSignalCode(t *testing.T) {
	ranked := RankChanges([]schema.ParameterChange{
		change("F_ZULU_1", 0.5),
		change("F_ALPHA_1", 0.5),
		change("F_MIKE_1", 0.5),
	}, 0)

	assert.Equal(t, "F_ALPHA_1", ranked[0].Parameter.SignalCode)
	assert.Equal(t, "F_MIKE_1", ranked[1].Parameter.SignalCode)
	assert.Equal(t, "F_ZULU_1", ranked[2].Parameter.SignalCode)
}

func TestRankChangesLimit(t *testing.T) {
	changes := []schema.ParameterChange{
		change("F_A_1", 0.1),
		change("F_B_1", 0.3),
		change("F_C_1", 0.2),
	}

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"limit truncates", 2, []string{"F_B_1", "F_C_1"}},
		{"limit beyond length keeps all", 10, []string{"F_B_1", "F_C_1", "F_A_1"}},
		{"zero limit keeps all", 0, []string{"F_B_1", "F_C_1", "F_A_1"}},
		{"negative limit keeps all", -1, []string{"F_B_1", "F_C_1", "F_A_1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]schema.ParameterChange, len(changes))
			copy(in, changes)
			ranked := RankChanges(in, tt.limit)
			codes := make([]string, len(ranked))
			for i, c := range ranked {
				codes[i] = c.Parameter.SignalCode
			}
			assert.Equal(t, tt.want, codes)
		})
	}
}

func TestRankChangesEmpty(t *testing.T) {
	assert.Empty(t, RankChanges(nil, 5))
}

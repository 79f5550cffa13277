package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-sshlens/pkg/types"
)

func sample() *types.Result {
	return &types.Result{
		Threshold: 13,
		Domains: []types.DomainReport{
			{
				Domain: "host1",
				Attackers: []types.IPSummary{
					{IP: "10.0.0.5", AttackerSummary: types.AttackerSummary{Attempts: 14, DurationSeconds: 13}},
				},
				LongestDurationIP:   "10.0.0.5",
				MostAttemptsIP:      "10.0.0.5",
				UniqueAttackerCount: 2,
				Attempts:            15,
			},
		},
		MostTargetedAccount:  "admin",
		MostTargetedAttempts: 14,
		DomainRanking:        []types.DomainRank{{Domain: "host1", Attempts: 15, UniqueAttackerCount: 2}},
		TotalHackers:         2,
		Diagnostics: types.Diagnostics{
			FilesRead:      1,
			LinesRead:      20,
			LinesMatched:   15,
			OversizedLines: 2,
			SkippedFiles: []types.SkippedFile{{Path: "gone.log", Error: "no such file"}},
		},
	}
}

func TestSummary(t *testing.T) {
	t.Run("renders all aggregates", func(t *testing.T) {
		out := Summary(sample(), "report.log")

		assert.Contains(t, out, "report.log")
		assert.Contains(t, out, "host1")
		assert.Contains(t, out, "10.0.0.5")
		assert.Contains(t, out, "0 Hour 0 Minute 13 Second")
		assert.Contains(t, out, "admin")
		assert.Contains(t, out, "Domain ranking")
		assert.Contains(t, out, "gone.log")
		assert.Contains(t, out, "Oversized lines skipped: 2")
	})

	t.Run("notes when nothing crossed the threshold", func(t *testing.T) {
		res := &types.Result{Threshold: 13}
		out := Summary(res, "")

		assert.Contains(t, out, "no IP crossed the threshold")
		assert.Contains(t, out, "none")
	})
}

func TestToJSON(t *testing.T) {
	s, err := ToJSON(sample())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &decoded))
	assert.Equal(t, "admin", decoded["most_targeted_account"])
	assert.EqualValues(t, 2, decoded["total_hackers"])

	domains := decoded["domains"].([]any)
	require.Len(t, domains, 1)
	first := domains[0].(map[string]any)
	attackers := first["attackers"].([]any)
	require.Len(t, attackers, 1)
	assert.Equal(t, "10.0.0.5", attackers[0].(map[string]any)["ip"])
	assert.EqualValues(t, 13, attackers[0].(map[string]any)["duration_seconds"])
}

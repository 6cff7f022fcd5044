// Package detect decides whether a telemetry column changed value inside an
// analysis window and scores how strongly it varies.
//
// The numeric rule is an OR of two signals (unique ratio, normalized
// standard deviation); the categorical rule uses the unique ratio alone.
// The asymmetry is preserved deliberately: it is how fielded deployments
// behave, and the acceptance tests pin it down.
package detect

import (
	"strconv"
	"strings"

	"github.com/wagonlab/railscan/internal/contract"
	"github.com/wagonlab/railscan/schema"
)

// nullTokens are cell values treated as missing.
var nullTokens = map[string]bool{
	"":     true,
	"nan":  true,
	"null": true,
	"none": true,
	"n/a":  true,
}

// Detector is the production change detector. It is stateless and pure.
type Detector struct{}

var _ contract.ChangeDetector = Detector{} // Compile-time check

// Default is the detector used when callers do not inject their own.
var Default = Detector{}

// Evaluate computes the change verdict and full statistics bundle for a
// column restricted to a window. threshold is in (0,1].
func (Detector) Evaluate(values []string, threshold float64) schema.ChangeResult {
	valid, nulls := dropNulls(values)

	stats := schema.ChangeStats{
		TotalCount: len(values),
		ValidCount: len(valid),
		NullCount:  nulls,
	}

	if len(valid) < 2 {
		stats.UniqueCount = len(valid)
		if len(valid) > 0 {
			stats.UniqueRatio = 1
		}
		return schema.ChangeResult{IsChanged: false, ChangeScore: 0, Stats: stats}
	}

	stats.UniqueCount = countUnique(valid)
	stats.UniqueRatio = float64(stats.UniqueCount) / float64(len(valid))

	nums, numeric := parseNumeric(valid)
	if numeric {
		fillNumericStats(&stats, nums)
	}

	// A single repeated value is never a change, no matter how low the
	// threshold: a short constant column still has ratio 1/n.
	if stats.UniqueCount <= 1 {
		return schema.ChangeResult{IsChanged: false, ChangeScore: 0, Stats: stats}
	}

	if !numeric {
		// Categorical rule: the unique ratio is both the verdict and the
		// ranking score.
		return schema.ChangeResult{
			IsChanged:   stats.UniqueRatio > threshold,
			ChangeScore: clamp01(stats.UniqueRatio),
			Stats:       stats,
		}
	}

	normalizedStd := stats.Std
	if stats.Mean != 0 {
		normalizedStd = stats.Std / abs(stats.Mean)
	}

	// Either signal alone is sufficient: OR, not AND.
	changed := stats.UniqueRatio > threshold || normalizedStd > threshold

	return schema.ChangeResult{
		IsChanged:   changed,
		ChangeScore: clamp01(stats.UniqueRatio * stats.CoV),
		Stats:       stats,
	}
}

// QuickChanged is the simplified path used when full statistics are not
// needed. It applies the categorical unique-count heuristic to any column:
// a column with at least two distinct values counts as changed when its
// unique ratio exceeds the threshold, or when it holds fewer distinct
// values than 90% of the row count (a categorical column that genuinely
// switches state).
func QuickChanged(values []string, threshold float64) bool {
	valid, _ := dropNulls(values)
	if len(valid) < 2 {
		return false
	}
	unique := countUnique(valid)
	if unique <= 1 {
		return false
	}
	ratio := float64(unique) / float64(len(valid))
	if ratio > threshold {
		return true
	}
	return float64(unique) < 0.9*float64(len(valid))
}

// dropNulls filters missing cells and reports how many were dropped.
func dropNulls(values []string) (valid []string, nulls int) {
	valid = make([]string, 0, len(values))
	for _, v := range values {
		if nullTokens[strings.ToLower(strings.TrimSpace(v))] {
			nulls++
			continue
		}
		valid = append(valid, v)
	}
	return valid, nulls
}

// countUnique counts distinct raw cell values.
func countUnique(values []string) int {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return len(set)
}

// parseNumeric attempts to parse every value as a float. A single
// unparseable cell makes the whole column categorical.
func parseNumeric(values []string) ([]float64, bool) {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

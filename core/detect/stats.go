package detect

import (
	"math"

	"github.com/wagonlab/railscan/schema"
)

// fillNumericStats computes the numeric half of the statistics bundle.
// The standard deviation is the population form (divide by n), matching
// how telemetry exports are summarized elsewhere in the pipeline.
func fillNumericStats(stats *schema.ChangeStats, nums []float64) {
	stats.IsNumeric = true

	min, max := nums[0], nums[0]
	var sum float64
	for _, v := range nums {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	n := float64(len(nums))
	mean := sum / n

	var sqSum float64
	for _, v := range nums {
		d := v - mean
		sqSum += d * d
	}
	variance := sqSum / n
	std := math.Sqrt(variance)

	stats.Min = min
	stats.Max = max
	stats.Mean = mean
	stats.Std = std
	stats.Variance = variance
	stats.Range = max - min
	if mean != 0 {
		stats.CoV = std / mean
	}
}

package score

import (
	"math"

	"speedx/internal/model"
)

// Cut points of the aggregate score scale.
const (
	ScoreThresholdGood    = 90.0
	ScoreThresholdWarning = 70.0
)

// penaltyPerSecond is how many score points each second of load time costs.
const penaltyPerSecond = 10.0

// ComputeScore maps a load time in seconds to a score in [0, 100]:
//
//	score = clamp(100 - loadTime*10, 0, 100)
//
// Negative load times saturate at 100. NaN yields 0.
func ComputeScore(loadTime float64) float64 {
	if math.IsNaN(loadTime) {
		return 0
	}
	return clamp(100-loadTime*penaltyPerSecond, 0, 100)
}

// ClassifyScore maps an aggregate score to a tier.
func ClassifyScore(score float64) Tier {
	switch {
	case score >= ScoreThresholdGood:
		return Good
	case score >= ScoreThresholdWarning:
		return Warning
	default:
		return Critical
	}
}

// Classify maps a raw metric value to a tier using the metric's own
// threshold row. Both bounds are inclusive. It panics with ErrInvalidMetric
// when m is not one of the declared metrics.
func Classify(m Metric, value float64) Tier {
	th := m.Threshold()
	switch {
	case value <= th.Good:
		return Good
	case value <= th.Bad:
		return Warning
	default:
		return Critical
	}
}

// PreviousValue returns the metric from the sample recorded just before the
// most recent one. ok is false when fewer than two samples exist.
func PreviousValue(history []model.MetricSample, m Metric) (value float64, ok bool) {
	if len(history) < 2 {
		return 0, false
	}
	return m.Value(history[len(history)-2]), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

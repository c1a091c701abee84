package model

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSample = errors.New("invalid metric sample")

// MetricSample is one analysis result for one URL. Field names match the
// analysis service response and the persisted history layout.
type MetricSample struct {
	LoadTime     float64 `json:"loadTime"`
	TotalSize    float64 `json:"totalSize"`
	RequestCount int     `json:"requestCount"`
}

// Validate rejects samples carrying negative or non-finite values.
func (s MetricSample) Validate() error {
	if !isFiniteNonNegative(s.LoadTime) {
		return fmt.Errorf("%w: loadTime %v", ErrInvalidSample, s.LoadTime)
	}
	if !isFiniteNonNegative(s.TotalSize) {
		return fmt.Errorf("%w: totalSize %v", ErrInvalidSample, s.TotalSize)
	}
	if s.RequestCount < 0 {
		return fmt.Errorf("%w: requestCount %d", ErrInvalidSample, s.RequestCount)
	}
	return nil
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

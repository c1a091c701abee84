package score

import (
	"errors"
	"fmt"

	"speedx/internal/model"
)

var ErrInvalidMetric = errors.New("invalid metric")

// Metric names one of the three values reported by the analysis service.
type Metric int

const (
	LoadTime Metric = iota
	TotalSize
	RequestCount
)

// Metrics lists every metric in display order.
var Metrics = []Metric{LoadTime, TotalSize, RequestCount}

// Threshold holds the inclusive upper bounds for the GOOD and WARNING tiers.
type Threshold struct {
	Good float64
	Bad  float64
}

type metricInfo struct {
	name      string
	label     string
	unit      string
	threshold Threshold
}

var metricTable = [...]metricInfo{
	LoadTime:     {name: "loadTime", label: "Page Load Time", unit: "s", threshold: Threshold{Good: 2, Bad: 5}},
	TotalSize:    {name: "totalSize", label: "Total Request Size", unit: "KB", threshold: Threshold{Good: 1000, Bad: 3000}},
	RequestCount: {name: "requestCount", label: "Number of Requests", unit: "", threshold: Threshold{Good: 30, Bad: 60}},
}

func (m Metric) valid() bool {
	return m >= 0 && int(m) < len(metricTable)
}

func (m Metric) info() metricInfo {
	if !m.valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidMetric, int(m)))
	}
	return metricTable[m]
}

func (m Metric) String() string {
	if !m.valid() {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return metricTable[m].name
}

// Label is the human readable card title.
func (m Metric) Label() string { return m.info().label }

// Unit is the display unit, empty for plain counts.
func (m Metric) Unit() string { return m.info().unit }

// Threshold returns the fixed threshold row for m.
func (m Metric) Threshold() Threshold { return m.info().threshold }

// Value extracts the metric from a sample.
func (m Metric) Value(s model.MetricSample) float64 {
	switch m {
	case LoadTime:
		return s.LoadTime
	case TotalSize:
		return s.TotalSize
	case RequestCount:
		return float64(s.RequestCount)
	}
	panic(fmt.Errorf("%w: %d", ErrInvalidMetric, int(m)))
}

// ParseMetric validates a metric name coming from outside the process.
func ParseMetric(name string) (Metric, error) {
	for i, mi := range metricTable {
		if mi.name == name {
			return Metric(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMetric, name)
}

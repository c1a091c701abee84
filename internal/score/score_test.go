package score

import (
	"errors"
	"math"
	"testing"

	"speedx/internal/model"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name     string
		loadTime float64
		expected float64
	}{
		{name: "zero load time", loadTime: 0, expected: 100},
		{name: "two seconds", loadTime: 2, expected: 80},
		{name: "one second", loadTime: 1, expected: 90},
		{name: "four seconds", loadTime: 4, expected: 60},
		{name: "ten seconds reaches zero", loadTime: 10, expected: 0},
		{name: "clamped at zero", loadTime: 15, expected: 0},
		{name: "negative clamped at hundred", loadTime: -3, expected: 100},
		{name: "fractional", loadTime: 0.25, expected: 97.5},
		{name: "NaN", loadTime: math.NaN(), expected: 0},
		{name: "positive infinity", loadTime: math.Inf(1), expected: 0},
		{name: "negative infinity", loadTime: math.Inf(-1), expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeScore(tt.loadTime)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("ComputeScore(%v) = %v, want %v", tt.loadTime, result, tt.expected)
			}
		})
	}
}

func TestComputeScoreMonotonic(t *testing.T) {
	prev := ComputeScore(-5)
	for lt := -5.0; lt <= 20; lt += 0.125 {
		s := ComputeScore(lt)
		if s > prev {
			t.Fatalf("ComputeScore(%v) = %v, greater than previous %v", lt, s, prev)
		}
		if s < 0 || s > 100 {
			t.Fatalf("ComputeScore(%v) = %v, out of range", lt, s)
		}
		prev = s
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected Tier
	}{
		{100, Good},
		{90, Good},
		{89.99, Warning},
		{70, Warning},
		{69.99, Critical},
		{60, Critical},
		{0, Critical},
	}

	for _, tt := range tests {
		if result := ClassifyScore(tt.score); result != tt.expected {
			t.Errorf("ClassifyScore(%v) = %v, want %v", tt.score, result, tt.expected)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		metric   Metric
		value    float64
		expected Tier
	}{
		{"load time good", LoadTime, 1.5, Good},
		{"load time good boundary", LoadTime, 2, Good},
		{"load time warning", LoadTime, 3, Warning},
		{"load time warning boundary", LoadTime, 5, Warning},
		{"load time critical", LoadTime, 10, Critical},
		{"total size good boundary", TotalSize, 1000, Good},
		{"total size just above good", TotalSize, 1000.01, Warning},
		{"total size warning boundary", TotalSize, 3000, Warning},
		{"total size critical", TotalSize, 3000.5, Critical},
		{"request count good", RequestCount, 10, Good},
		{"request count warning", RequestCount, 50, Warning},
		{"request count critical", RequestCount, 61, Critical},
		{"NaN is critical", LoadTime, math.NaN(), Critical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Classify(tt.metric, tt.value); result != tt.expected {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.metric, tt.value, result, tt.expected)
			}
		})
	}
}

// A 4s load scores 60 (critical on the aggregate scale) while the raw
// value is only a warning on the load time row.
func TestScalesStayIndependent(t *testing.T) {
	if got := ClassifyScore(ComputeScore(4)); got != Critical {
		t.Errorf("aggregate tier = %v, want critical", got)
	}
	if got := Classify(LoadTime, 4); got != Warning {
		t.Errorf("load time tier = %v, want warning", got)
	}
}

func TestClassifyUnknownMetricPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidMetric) {
			t.Fatalf("recover() = %v, want ErrInvalidMetric", r)
		}
	}()
	Classify(Metric(42), 1)
}

func TestParseMetric(t *testing.T) {
	for _, m := range Metrics {
		parsed, err := ParseMetric(m.String())
		if err != nil {
			t.Fatalf("ParseMetric(%q) error: %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("ParseMetric(%q) = %v, want %v", m.String(), parsed, m)
		}
	}

	if _, err := ParseMetric("firstPaint"); !errors.Is(err, ErrInvalidMetric) {
		t.Errorf("ParseMetric(firstPaint) error = %v, want ErrInvalidMetric", err)
	}
}

func TestPreviousValue(t *testing.T) {
	first := model.MetricSample{LoadTime: 2, TotalSize: 500, RequestCount: 10}
	second := model.MetricSample{LoadTime: 3, TotalSize: 900, RequestCount: 12}
	third := model.MetricSample{LoadTime: 1, TotalSize: 100, RequestCount: 5}

	tests := []struct {
		name      string
		history   []model.MetricSample
		metric    Metric
		wantValue float64
		wantOK    bool
	}{
		{name: "empty history", history: nil, metric: LoadTime},
		{name: "single sample", history: []model.MetricSample{first}, metric: LoadTime},
		{name: "two samples", history: []model.MetricSample{first, second}, metric: LoadTime, wantValue: 2, wantOK: true},
		{name: "request count as float", history: []model.MetricSample{first, second}, metric: RequestCount, wantValue: 10, wantOK: true},
		{name: "uses second to last", history: []model.MetricSample{first, second, third}, metric: TotalSize, wantValue: 900, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := PreviousValue(tt.history, tt.metric)
			if ok != tt.wantOK || value != tt.wantValue {
				t.Errorf("PreviousValue() = (%v, %v), want (%v, %v)", value, ok, tt.wantValue, tt.wantOK)
			}
		})
	}
}

func TestTierColor(t *testing.T) {
	tests := map[Tier]string{
		Good:     "#10B981",
		Warning:  "#F59E0B",
		Critical: "#EF4444",
	}
	for tier, color := range tests {
		if got := tier.Color(); got != color {
			t.Errorf("%v.Color() = %s, want %s", tier, got, color)
		}
	}
}

package model

import "time"

// Report is the display-ready result of one analysis.
type Report struct {
	URL        string       `json:"url"`
	Sample     MetricSample `json:"sample"`
	Score      float64      `json:"score"`
	ScoreTier  string       `json:"score_tier"`
	ScoreColor string       `json:"score_color"`
	Metrics    []MetricCard `json:"metrics"`
	AnalyzedAt time.Time    `json:"analyzed_at"`
}

// MetricCard holds one raw metric classified on its own threshold row.
type MetricCard struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Value    float64  `json:"value"`
	Unit     string   `json:"unit,omitempty"`
	Tier     string   `json:"tier"`
	Color    string   `json:"color"`
	Previous *float64 `json:"previous,omitempty"`
}

// HistoryEntry is a recorded sample together with its aggregate score.
type HistoryEntry struct {
	Sample    MetricSample `json:"sample"`
	Score     float64      `json:"score"`
	ScoreTier string       `json:"score_tier"`
}

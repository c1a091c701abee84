package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"speedx/internal/history"
	"speedx/internal/log"
	"speedx/internal/metrics"
	"speedx/internal/model"
	"speedx/internal/score"
)

var ErrBusy = errors.New("an analysis is already in progress")

// Fetcher obtains a metric sample for a URL.
type Fetcher interface {
	Analyze(ctx context.Context, target string) (model.MetricSample, error)
}

// Analyzer runs one analysis at a time and records every result in its
// history store.
type Analyzer struct {
	fetcher Fetcher
	history *history.Store
	busy    atomic.Bool
	now     func() time.Time
}

func NewAnalyzer(fetcher Fetcher, store *history.Store) *Analyzer {
	return &Analyzer{
		fetcher: fetcher,
		history: store,
		now:     time.Now,
	}
}

// Busy reports whether an analysis is in flight.
func (a *Analyzer) Busy() bool {
	return a.busy.Load()
}

// Analyze fetches metrics for targetURL, appends them to the history and
// returns the display report. A failed fetch leaves the history untouched.
// A failed history write is logged and the report is still returned.
func (a *Analyzer) Analyze(ctx context.Context, targetURL string) (*model.Report, error) {
	if !a.busy.CompareAndSwap(false, true) {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeBusy).Inc()
		return nil, ErrBusy
	}
	defer a.busy.Store(false)

	sample, err := a.fetcher.Analyze(ctx, targetURL)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("failed to analyze page: %w", err)
	}

	// The sample is already accepted; a client disconnect must not leave
	// storage behind memory.
	samples, err := a.history.Record(context.WithoutCancel(ctx), targetURL, sample)
	if err != nil {
		metrics.HistoryPersistFailures.Inc()
		log.Logger.Error("history not persisted, in-memory history is ahead of storage",
			zap.String("url", targetURL),
			zap.Error(err),
		)
	}

	report := BuildReport(targetURL, samples, a.now())
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.PerformanceScore.Observe(report.Score)
	for _, card := range report.Metrics {
		metrics.MetricTierTotal.WithLabelValues(card.Name, card.Tier).Inc()
	}

	log.Logger.Info("analysis completed",
		zap.String("url", targetURL),
		zap.Float64("score", report.Score),
		zap.String("score_tier", report.ScoreTier),
		zap.Int("history_length", len(samples)),
	)
	return report, nil
}

// History returns every recorded sample for targetURL with its score.
func (a *Analyzer) History(targetURL string) []model.HistoryEntry {
	samples := a.history.Samples(targetURL)
	entries := make([]model.HistoryEntry, 0, len(samples))
	for _, s := range samples {
		sc := score.ComputeScore(s.LoadTime)
		entries = append(entries, model.HistoryEntry{
			Sample:    s,
			Score:     sc,
			ScoreTier: score.ClassifyScore(sc).String(),
		})
	}
	return entries
}

// URLs lists every URL with recorded history.
func (a *Analyzer) URLs() []string {
	return a.history.URLs()
}

// Latest returns the report for the most recent sample of targetURL.
func (a *Analyzer) Latest(targetURL string) (*model.Report, bool) {
	samples := a.history.Samples(targetURL)
	if len(samples) == 0 {
		return nil, false
	}
	return BuildReport(targetURL, samples, a.now()), true
}

// BuildReport scores the last element of samples. Earlier elements only
// feed the previous-value comparison.
func BuildReport(targetURL string, samples []model.MetricSample, at time.Time) *model.Report {
	if len(samples) == 0 {
		return nil
	}
	latest := samples[len(samples)-1]

	sc := score.ComputeScore(latest.LoadTime)
	tier := score.ClassifyScore(sc)

	report := &model.Report{
		URL:        targetURL,
		Sample:     latest,
		Score:      sc,
		ScoreTier:  tier.String(),
		ScoreColor: tier.Color(),
		Metrics:    make([]model.MetricCard, 0, len(score.Metrics)),
		AnalyzedAt: at,
	}

	for _, m := range score.Metrics {
		value := m.Value(latest)
		mt := score.Classify(m, value)
		card := model.MetricCard{
			Name:  m.String(),
			Label: m.Label(),
			Value: value,
			Unit:  m.Unit(),
			Tier:  mt.String(),
			Color: mt.Color(),
		}
		if prev, ok := score.PreviousValue(samples, m); ok {
			card.Previous = &prev
		}
		report.Metrics = append(report.Metrics, card)
	}

	return report
}

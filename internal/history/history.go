// Package history keeps the per-URL record of past analysis results.
//
// A Store is loaded once from a storage backend, grows by exactly one sample
// per successful analysis and is written back in full after every append.
// Sequences are append-only.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"speedx/internal/model"
	"speedx/internal/storage"
)

// DefaultKey is the storage key holding the serialized history.
const DefaultKey = "analysisHistory"

var ErrCorruptHistory = errors.New("corrupt history")

// Store maps a URL to its samples in chronological order.
type Store struct {
	mu      sync.RWMutex
	samples map[string][]model.MetricSample
	backend storage.Store
	key     string
}

// New returns an empty store persisting to backend under key.
func New(backend storage.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		samples: make(map[string][]model.MetricSample),
		backend: backend,
		key:     key,
	}
}

// Load reads the persisted history. A missing or undecodable value yields an
// empty store; only backend failures are returned.
func Load(ctx context.Context, backend storage.Store, key string, logger *zap.Logger) (*Store, error) {
	s := New(backend, key)

	data, err := backend.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Info("no persisted history, starting empty", zap.String("key", s.key))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if err := s.UnmarshalJSON(data); err != nil {
		logger.Warn("discarding persisted history",
			zap.String("key", s.key),
			zap.Error(err),
		)
		s.samples = make(map[string][]model.MetricSample)
		return s, nil
	}

	logger.Info("history loaded",
		zap.String("key", s.key),
		zap.Int("urls", len(s.samples)),
	)
	return s, nil
}

// Append adds sample to the end of url's sequence and returns a copy of the
// updated sequence.
func (s *Store) Append(url string, sample model.MetricSample) []model.MetricSample {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(url, sample)
}

func (s *Store) appendLocked(url string, sample model.MetricSample) []model.MetricSample {
	s.samples[url] = append(s.samples[url], sample)
	return cloneSamples(s.samples[url])
}

// Save writes the whole mapping to the backend.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.samples)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

// Record appends sample and persists the result in one step. When the write
// fails the sample stays in memory and the write error is returned alongside
// the updated sequence.
func (s *Store) Record(ctx context.Context, url string, sample model.MetricSample) ([]model.MetricSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.appendLocked(url, sample)
	return seq, s.saveLocked(ctx)
}

// Samples returns a copy of url's sequence.
func (s *Store) Samples(url string) []model.MetricSample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSamples(s.samples[url])
}

// URLs returns every URL with at least one sample, sorted.
func (s *Store) URLs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	urls := make([]string, 0, len(s.samples))
	for u := range s.samples {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

// Len returns the number of URLs in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}

func (s *Store) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s.samples)
}

// UnmarshalJSON replaces the in-memory mapping. A null value decodes to an
// empty mapping.
func (s *Store) UnmarshalJSON(data []byte) error {
	var decoded map[string][]model.MetricSample
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptHistory, err)
	}
	if decoded == nil {
		decoded = make(map[string][]model.MetricSample)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = decoded
	return nil
}

func cloneSamples(in []model.MetricSample) []model.MetricSample {
	if len(in) == 0 {
		return nil
	}
	out := make([]model.MetricSample, len(in))
	copy(out, in)
	return out
}

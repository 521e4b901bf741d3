// Package explorer serves the loaded market dataset: it owns the load
// lifecycle and readiness, renders selections into display-ready views,
// applies selector events, and builds cached trend and comparison series.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/office-market-explorer/internal/domain"
	"github.com/couchcryptid/office-market-explorer/internal/observability"
)

// ErrNotLoaded is returned until the first load attempt completes.
var ErrNotLoaded = errors.New("dataset not loaded yet")

// DatasetSource fetches and decodes the market dataset.
type DatasetSource interface {
	Fetch(ctx context.Context) (*domain.Dataset, error)
}

// EventPublisher delivers selection changes downstream.
type EventPublisher interface {
	Publish(ctx context.Context, change domain.SelectionChange) error
}

// snapshot is one immutable load result. Exactly one of dataset and err is set.
type snapshot struct {
	dataset    *domain.Dataset
	err        error
	loadedAt   time.Time
	generation uint64
}

// Explorer answers queries against the current dataset. It is safe for
// concurrent use; the dataset itself is never mutated after load.
type Explorer struct {
	source    DatasetSource
	publisher EventPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	cache     *lruCache

	loadMu  sync.Mutex
	current atomic.Pointer[snapshot]
}

// New creates an Explorer. publisher may be nil to disable selection events.
func New(source DatasetSource, publisher EventPublisher, logger *slog.Logger, metrics *observability.Metrics, trendCacheSize int) *Explorer {
	return &Explorer{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		cache:     newLRUCache(trendCacheSize),
	}
}

// Load performs the startup fetch. A failure leaves the explorer in a
// terminal error state that every query reports.
func (e *Explorer) Load(ctx context.Context) error {
	return e.load(ctx, "startup")
}

// Reload fetches the dataset again and swaps it in atomically. On failure the
// previously served dataset stays in place.
func (e *Explorer) Reload(ctx context.Context) error {
	return e.load(ctx, "reload")
}

func (e *Explorer) load(ctx context.Context, trigger string) error {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	start := time.Now()
	d, err := e.source.Fetch(ctx)
	e.metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())

	prev := e.current.Load()
	if err != nil {
		e.metrics.DatasetLoads.WithLabelValues(trigger, "error").Inc()
		if prev == nil || prev.dataset == nil {
			e.current.Store(&snapshot{err: err})
			e.logger.Error("dataset load failed", "trigger", trigger, "error", err)
		} else {
			e.logger.Warn("dataset reload failed, keeping previous dataset",
				"error", err, "generation", prev.generation)
		}
		return fmt.Errorf("%s load: %w", trigger, err)
	}

	var gen uint64 = 1
	if prev != nil {
		gen = prev.generation + 1
	}
	next := &snapshot{dataset: d, loadedAt: domain.Now(), generation: gen}
	e.current.Store(next)
	e.cache.purge()

	cities := countCities(d)
	e.metrics.DatasetLoads.WithLabelValues(trigger, "success").Inc()
	e.metrics.DatasetLoaded.Set(1)
	e.metrics.DatasetCities.Set(float64(cities))
	e.logger.Info("dataset loaded",
		"trigger", trigger,
		"countries", d.Countries.Len(),
		"cities", cities,
		"generation", gen,
		"duration", time.Since(start),
	)
	return nil
}

// CheckReadiness returns nil once a dataset is being served, or the error
// describing why not.
func (e *Explorer) CheckReadiness(_ context.Context) error {
	_, err := e.snapshot()
	return err
}

// LoadedAt reports when the served dataset was loaded.
func (e *Explorer) LoadedAt() (time.Time, bool) {
	s, err := e.snapshot()
	if err != nil {
		return time.Time{}, false
	}
	return s.loadedAt, true
}

func (e *Explorer) snapshot() (*snapshot, error) {
	s := e.current.Load()
	switch {
	case s == nil:
		return nil, ErrNotLoaded
	case s.dataset == nil:
		return nil, s.err
	}
	return s, nil
}

func countCities(d *domain.Dataset) int {
	n := 0
	for _, name := range d.Countries.Keys() {
		if c := d.Country(name); c != nil {
			n += c.Cities.Len()
		}
	}
	return n
}

package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"media-scan/internal/cache"
	"media-scan/internal/database"
	"media-scan/internal/logging"
	"media-scan/internal/metrics"
	"media-scan/internal/workers"
)

// EventStore is the slice of the event store the engine needs: one batched
// existence query and one batched insert.
type EventStore interface {
	FindExistingPaths(ctx context.Context, plugin string, paths []string) (map[string]struct{}, error)
	InsertEvents(ctx context.Context, events []database.Event) error
}

// Location is one configured media root to index.
type Location struct {
	Name string
	Root string
}

// Engine drives the periodic scan cycles over the configured locations.
type Engine struct {
	store     EventStore
	cache     *cache.Cache
	locations []Location
	interval  time.Duration
	reload    *reloadPolicy
	status    *statusCell
	diag      Reporter

	stopChan chan struct{}
	stopOnce sync.Once

	cycleMu   sync.Mutex
	isRunning bool

	// Process locations concurrently instead of one after another. The
	// scan/dedup/insert/advance chain for a single location always stays
	// sequential.
	parallel bool
}

// New creates an Engine. fullReloadInterval is the number of incremental
// cycles between forced full rescans; zero disables them.
func New(store EventStore, c *cache.Cache, locations []Location, interval time.Duration, fullReloadInterval uint32) *Engine {
	return &Engine{
		store:     store,
		cache:     c,
		locations: locations,
		interval:  interval,
		reload:    newReloadPolicy(fullReloadInterval),
		status:    newStatusCell(),
		diag:      logReporter{},
		stopChan:  make(chan struct{}),
	}
}

// SetParallel enables concurrent processing of locations within a cycle.
func (e *Engine) SetParallel(enabled bool) {
	e.parallel = enabled
}

// SetReporter overrides where diagnostics go. The default logs them.
func (e *Engine) SetReporter(diag Reporter) {
	if diag != nil {
		e.diag = diag
	}
}

// Start runs an immediate first cycle in the background, then one cycle
// per interval until Stop is called.
func (e *Engine) Start() {
	go func() {
		logging.Info("Starting initial scan cycle in background...")
		if err := e.RunCycle(context.Background()); err != nil {
			logging.Error("Initial scan cycle error: %v", err)
		}

		ticker := time.NewTicker(e.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := e.RunCycle(context.Background()); err != nil {
					logging.Error("Scan cycle error: %v", err)
				}
			case <-e.stopChan:
				logging.Info("Scan scheduler stopped")
				return
			}
		}
	}()
}

// Stop halts the periodic scheduler. A cycle already in flight finishes.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
}

// SnapshotStatus returns the current busy/waiting state.
func (e *Engine) SnapshotStatus() ScanStatus {
	return e.status.get()
}

// CyclesUntilFullReload returns how many incremental cycles remain before
// the next forced full rescan. It is zero when full reloads are disabled.
func (e *Engine) CyclesUntilFullReload() uint32 {
	return e.reload.cyclesUntilReload()
}

// IsScanning reports whether a cycle is currently in progress.
func (e *Engine) IsScanning() bool {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()
	return e.isRunning
}

// RunCycle executes one full scan cycle over all locations. If a cycle is
// already in progress the call is a no-op. Per-location failures are
// reported and do not stop the remaining locations.
func (e *Engine) RunCycle(ctx context.Context) error {
	if !e.tryStartCycle() {
		logging.Info("Scan cycle already in progress, skipping...")
		return nil
	}
	defer e.finishCycle()

	metrics.ScanCycleRunning.Set(1)
	defer metrics.ScanCycleRunning.Set(0)
	metrics.ScanCyclesTotal.Inc()

	startTime := time.Now()
	fullReload := e.reload.next()
	if fullReload {
		metrics.ScanFullReloadsTotal.Inc()
		logging.Info("Full reload cycle: ignoring cached cutoffs")
	}

	if e.parallel && len(e.locations) > 1 {
		e.runLocationsParallel(ctx, fullReload)
	} else {
		for _, loc := range e.locations {
			e.runLocation(ctx, loc, fullReload)
		}
	}

	now := time.Now()
	e.status.setWaiting(now)
	metrics.ScanLastCycleTimestamp.Set(float64(now.Unix()))
	metrics.ScanLastCycleDuration.Set(time.Since(startTime).Seconds())
	logging.Info("Scan cycle complete in %v", time.Since(startTime))

	return nil
}

// runLocationsParallel fans the locations out over a bounded worker pool.
func (e *Engine) runLocationsParallel(ctx context.Context, fullReload bool) {
	numWorkers := workers.ForIO(len(e.locations))
	logging.Info("Scanning %d locations with %d workers", len(e.locations), numWorkers)

	sem := make(chan struct{}, numWorkers)
	var wg sync.WaitGroup
	for _, loc := range e.locations {
		wg.Add(1)
		sem <- struct{}{}
		go func(loc Location) {
			defer wg.Done()
			defer func() { <-sem }()
			e.runLocation(ctx, loc, fullReload)
		}(loc)
	}
	wg.Wait()
}

// runLocation processes one location and reports any failure.
func (e *Engine) runLocation(ctx context.Context, loc Location, fullReload bool) {
	e.status.setBusy(loc.Name)

	if err := e.updateLocation(ctx, loc, fullReload); err != nil {
		e.diag.Reportf("location %s: %v", loc.Name, err)
		metrics.ScanLocationErrors.WithLabelValues(loc.Name).Inc()
	}
}

// updateLocation runs the scan, dedup, insert, cutoff-advance chain for a
// single location. The cutoff only advances after a successful insert, so
// any error here means the same window is rescanned next cycle.
func (e *Engine) updateLocation(ctx context.Context, loc Location, fullReload bool) error {
	cutoff, known := e.cache.Cutoff(loc.Root)

	switch {
	case fullReload:
		cutoff = epoch
	case !known:
		// Persist the sentinel before scanning. If we crash mid-scan the
		// next cycle finds the entry and redoes the full scan, nothing
		// is ever skipped.
		cutoff = epoch
		err := e.cache.Modify(func(s *cache.Snapshot) {
			s.TimingCache[loc.Root] = epoch
		})
		if err != nil {
			return fmt.Errorf("failed to persist initial cutoff: %w", err)
		}
	}

	items, newCutoff, err := Scan(loc.Name, loc.Root, cutoff, e.diag)
	if err != nil {
		return err
	}
	metrics.ScanFilesSeen.Add(float64(len(items)))
	logging.Debug("Location %s: %d candidate file(s) after cutoff %v", loc.Name, len(items), cutoff)

	delta, err := e.dedup(ctx, items)
	if err != nil {
		return fmt.Errorf("dedup query failed: %w", err)
	}

	if len(delta) > 0 {
		if err := e.store.InsertEvents(ctx, delta); err != nil {
			return fmt.Errorf("insert failed: %w", err)
		}
		metrics.ScanEventsInserted.Add(float64(len(delta)))
		logging.Info("Location %s: indexed %d new file(s)", loc.Name, len(delta))
	}

	// A forced full reload can compute a cutoff below the stored one if
	// the newest files were deleted since the last cycle. The guard keeps
	// the cutoff non-decreasing either way.
	return e.cache.Modify(func(s *cache.Snapshot) {
		if current, ok := s.TimingCache[loc.Root]; !ok || newCutoff.After(current) {
			s.TimingCache[loc.Root] = newCutoff
		}
	})
}

// dedup turns scan results into events and drops the ones whose path is
// already indexed, using one batched existence query.
func (e *Engine) dedup(ctx context.Context, items []database.Media) ([]database.Event, error) {
	if len(items) == 0 {
		return nil, nil
	}

	paths := make([]string, len(items))
	for i, item := range items {
		paths[i] = item.Path
	}

	existing, err := e.store.FindExistingPaths(ctx, database.PluginTag, paths)
	if err != nil {
		return nil, err
	}

	delta := make([]database.Event, 0, len(items)-len(existing))
	for _, item := range items {
		if _, seen := existing[item.Path]; seen {
			continue
		}
		delta = append(delta, database.NewMediaEvent(item))
	}
	return delta, nil
}

func (e *Engine) tryStartCycle() bool {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()

	if e.isRunning {
		return false
	}
	e.isRunning = true
	return true
}

func (e *Engine) finishCycle() {
	e.cycleMu.Lock()
	defer e.cycleMu.Unlock()
	e.isRunning = false
}

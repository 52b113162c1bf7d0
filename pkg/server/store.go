package server

import (
	"sync"

	"github.com/c9s/bollband/pkg/chart"
	"github.com/c9s/bollband/pkg/types"
)

// Snapshot is an immutable view of the store. Handlers compute and draw from
// a snapshot so they never hold the store lock while rendering.
type Snapshot struct {
	Version  int64
	Prices   types.PriceSeries
	Settings types.BollingerSettings
	Bands    []types.BandPoint
	Err      error
}

// Store guards the overlay controller shared by all the requests.
type Store struct {
	mu      sync.RWMutex
	overlay *chart.Overlay
	prices  types.PriceSeries
	version int64

	subscribers []func(Snapshot)

	// emitted is the last version delivered to the subscribers.
	emitMu   sync.Mutex
	emitCond *sync.Cond
	emitted  int64
}

func NewStore(prices types.PriceSeries, settings types.BollingerSettings) *Store {
	s := &Store{
		overlay: chart.NewOverlay(prices, settings),
		prices:  prices,
		version: 1,
		emitted: 1,
	}
	s.emitCond = sync.NewCond(&s.emitMu)
	return s
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Version:  s.version,
		Prices:   s.prices,
		Settings: s.overlay.Settings(),
		Bands:    s.overlay.Bands(),
		Err:      s.overlay.Err(),
	}
}

// OnChange registers a callback invoked with the new snapshot after every
// change. Callbacks run in version order, one at a time, and must not update
// the store.
func (s *Store) OnChange(cb func(Snapshot)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, cb)
	s.mu.Unlock()
}

// SetPrices swaps the price series, e.g. after a reload.
func (s *Store) SetPrices(prices types.PriceSeries) Snapshot {
	s.mu.Lock()
	s.prices = prices
	s.overlay.SetSeries(prices)
	s.version++
	snapshot := s.snapshot()
	s.emitLocked(snapshot)
	return snapshot
}

// SetSettings replaces the settings. Invalid settings are rejected and the
// current ones are kept.
func (s *Store) SetSettings(settings types.BollingerSettings) (Snapshot, error) {
	return s.update(func(types.BollingerSettings) types.BollingerSettings {
		return settings
	})
}

// Apply merges a partial settings update, see SetSettings.
func (s *Store) Apply(patch *types.SettingsPatch) (Snapshot, error) {
	return s.update(patch.Apply)
}

// Update derives the next settings from the current ones under the store
// lock, so concurrent partial updates do not overwrite each other.
func (s *Store) Update(f func(current types.BollingerSettings) (types.BollingerSettings, error)) (Snapshot, error) {
	var ferr error
	snapshot, err := s.update(func(current types.BollingerSettings) types.BollingerSettings {
		next, err := f(current)
		if err != nil {
			ferr = err
			return current
		}
		return next
	})
	if ferr != nil {
		return snapshot, ferr
	}
	return snapshot, err
}

func (s *Store) update(f func(current types.BollingerSettings) types.BollingerSettings) (Snapshot, error) {
	s.mu.Lock()

	settings := f(s.overlay.Settings())
	if err := settings.Validate(); err != nil {
		snapshot := s.snapshot()
		s.mu.Unlock()
		return snapshot, err
	}

	if settings == s.overlay.Settings() {
		snapshot := s.snapshot()
		s.mu.Unlock()
		return snapshot, nil
	}

	s.overlay.SetSettings(settings)
	s.version++
	snapshot := s.snapshot()
	s.emitLocked(snapshot)
	return snapshot, nil
}

// emitLocked is called with mu held and releases it. Every version is
// emitted once, so a snapshot waits until its predecessor was delivered.
// Subscribers run outside of mu and may read snapshots.
func (s *Store) emitLocked(snapshot Snapshot) {
	subscribers := s.subscribers
	s.mu.Unlock()

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	for s.emitted != snapshot.Version-1 {
		s.emitCond.Wait()
	}

	for _, cb := range subscribers {
		cb(snapshot)
	}

	s.emitted = snapshot.Version
	s.emitCond.Broadcast()
}

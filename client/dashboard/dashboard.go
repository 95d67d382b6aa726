// Package dashboard composes the top-places and aggregate-stats queries
// behind the charts view.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/aboodsamad/TravelMateV0/client/places"
)

// DebounceInterval is how long filter changes are coalesced before a
// fetch is issued.
const DebounceInterval = 300 * time.Millisecond

// Source is the slice of the places client the aggregator needs.
type Source interface {
	TopPlaces(ctx context.Context, country, category string) ([]places.Place, error)
	Stats(ctx context.Context, country, category string) (places.Stats, error)
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

// Snapshot is an immutable view of the aggregator state. TopPlaces and
// Stats are only populated together; a failure of either fetch clears
// both.
type Snapshot struct {
	Status    Status
	Country   string
	Category  string
	TopPlaces []places.Place
	Stats     places.Stats
	Err       error
}

// Aggregator debounces filter changes and issues the two dashboard
// queries concurrently. Both must succeed for a render; either failure
// yields a single error with no partial data.
type Aggregator struct {
	mu     sync.Mutex
	source Source

	onChange func(Snapshot)
	debounce time.Duration
	timerFn  func(time.Duration, func()) *time.Timer

	country   string
	category  string
	status    Status
	topPlaces []places.Place
	stats     places.Stats
	err       error
	seq       uint64
	timer     *time.Timer
}

func NewAggregator(source Source, onChange func(Snapshot)) *Aggregator {
	return &Aggregator{
		source:   source,
		onChange: onChange,
		debounce: DebounceInterval,
		timerFn:  time.AfterFunc,
	}
}

func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *Aggregator) snapshotLocked() Snapshot {
	return Snapshot{
		Status:    a.status,
		Country:   a.country,
		Category:  a.category,
		TopPlaces: a.topPlaces,
		Stats:     a.stats,
		Err:       a.err,
	}
}

// Load fetches immediately with the current filter pair. Used on mount.
func (a *Aggregator) Load(ctx context.Context) {
	a.mu.Lock()
	a.startFetchLocked(ctx)
	a.mu.Unlock()
}

// SetCountry schedules a debounced reload with the new country filter.
func (a *Aggregator) SetCountry(ctx context.Context, country string) {
	a.mu.Lock()
	a.country = country
	a.scheduleLocked(ctx)
	a.mu.Unlock()
}

// SetCategory schedules a debounced reload with the new category filter.
func (a *Aggregator) SetCategory(ctx context.Context, category string) {
	a.mu.Lock()
	a.category = category
	a.scheduleLocked(ctx)
	a.mu.Unlock()
}

// scheduleLocked restarts the debounce timer. Rapid changes collapse
// into one fetch for the final filter pair.
func (a *Aggregator) scheduleLocked(ctx context.Context) {
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = a.timerFn(a.debounce, func() {
		a.mu.Lock()
		a.startFetchLocked(ctx)
		a.mu.Unlock()
	})
}

func (a *Aggregator) startFetchLocked(ctx context.Context) {
	a.seq++
	seq := a.seq
	a.status = StatusLoading
	a.err = nil
	country, category := a.country, a.category
	a.notifyLocked()

	go func() {
		var (
			wg       sync.WaitGroup
			top      []places.Place
			topErr   error
			stats    places.Stats
			statsErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			top, topErr = a.source.TopPlaces(ctx, country, category)
		}()
		go func() {
			defer wg.Done()
			stats, statsErr = a.source.Stats(ctx, country, category)
		}()
		wg.Wait()

		a.mu.Lock()
		defer a.mu.Unlock()
		if seq != a.seq {
			return
		}
		if topErr != nil || statsErr != nil {
			a.status = StatusErrored
			if topErr != nil {
				a.err = topErr
			} else {
				a.err = statsErr
			}
			a.topPlaces = nil
			a.stats = places.Stats{}
		} else {
			a.status = StatusLoaded
			a.topPlaces = top
			a.stats = stats
		}
		a.notifyLocked()
	}()
}

func (a *Aggregator) notifyLocked() {
	if a.onChange != nil {
		a.onChange(a.snapshotLocked())
	}
}

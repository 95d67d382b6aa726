// Package browse owns the catalog browsing state: the table controller,
// the rating modal and the star rendering helpers.
package browse

import (
	"context"
	"net/url"
	"sync"

	"github.com/aboodsamad/TravelMateV0/client/places"
	"github.com/aboodsamad/TravelMateV0/client/query"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusErrored
)

// Fetcher is the slice of the places client the controller needs.
type Fetcher interface {
	List(ctx context.Context, params url.Values) (places.Page, error)
}

// Snapshot is an immutable view of the controller state.
type Snapshot struct {
	Status       Status
	Query        query.State
	Places       []places.Place
	TotalPages   int
	TotalRecords int
	Err          error
}

// Controller drives the paginated place table. Every state transition
// issues exactly one fetch; responses from superseded fetches are
// discarded so only the latest request can update the view.
type Controller struct {
	mu       sync.Mutex
	fetcher  Fetcher
	onChange func(Snapshot)

	query        query.State
	status       Status
	places       []places.Place
	totalPages   int
	totalRecords int
	err          error
	seq          uint64
}

// NewController builds an idle controller. onChange, when non-nil, is
// invoked after every state change, including the start of each load.
func NewController(fetcher Fetcher, onChange func(Snapshot)) *Controller {
	return &Controller{
		fetcher:  fetcher,
		onChange: onChange,
		query:    query.New(),
		status:   StatusIdle,
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Status:       c.status,
		Query:        c.query,
		Places:       c.places,
		TotalPages:   c.totalPages,
		TotalRecords: c.totalRecords,
		Err:          c.err,
	}
}

// Refresh re-runs the current query.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) Sort(ctx context.Context, key string) {
	c.mu.Lock()
	c.query.ToggleSort(key)
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) SetSearch(ctx context.Context, term string) {
	c.mu.Lock()
	c.query.SetSearch(term)
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) SetFilter(ctx context.Context, name, value string) {
	c.mu.Lock()
	c.query.SetFilter(name, value)
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	c.query.ClearFilters()
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

func (c *Controller) NextPage(ctx context.Context) {
	c.GoToPage(ctx, c.Snapshot().Query.Page+1)
}

func (c *Controller) PrevPage(ctx context.Context) {
	c.GoToPage(ctx, c.Snapshot().Query.Page-1)
}

// GoToPage clamps the target against the total reported by the last
// successful fetch.
func (c *Controller) GoToPage(ctx context.Context, page int) {
	c.mu.Lock()
	c.query.SetPage(page, c.totalPages)
	c.startFetchLocked(ctx)
	c.mu.Unlock()
}

// startFetchLocked bumps the sequence token and launches one fetch for
// the current query. A response is applied only while its token is still
// the latest.
func (c *Controller) startFetchLocked(ctx context.Context) {
	c.seq++
	seq := c.seq
	c.status = StatusLoading
	c.err = nil
	params := c.query.Params()
	c.notifyLocked()

	go func() {
		page, err := c.fetcher.List(ctx, params)

		c.mu.Lock()
		defer c.mu.Unlock()
		if seq != c.seq {
			return
		}
		if err != nil {
			c.status = StatusErrored
			c.err = err
		} else {
			c.status = StatusLoaded
			c.places = page.Places
			c.totalPages = page.TotalPages
			c.totalRecords = page.TotalRecords
		}
		c.notifyLocked()
	}()
}

func (c *Controller) notifyLocked() {
	if c.onChange != nil {
		c.onChange(c.snapshotLocked())
	}
}

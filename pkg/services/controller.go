package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"opphub/pkg/models"
)

// Event is a board state transition. Events are values; applying one via
// Reduce never mutates the previous state.
type Event interface{ isEvent() }

// SelectTab switches the active category.
type SelectTab struct{ Tab models.Category }

// QueryChanged replaces the free-text query.
type QueryChanged struct{ Query string }

// FilterChanged replaces one category's filter values.
type FilterChanged struct {
	Category models.Category
	Filters  models.Filters
}

func (SelectTab) isEvent()     {}
func (QueryChanged) isEvent()  {}
func (FilterChanged) isEvent() {}

// Reduce applies one event to the board state and returns the next state.
func Reduce(s models.BoardState, e Event) models.BoardState {
	switch ev := e.(type) {
	case SelectTab:
		return s.WithTab(ev.Tab)
	case QueryChanged:
		return s.WithQuery(ev.Query)
	case FilterChanged:
		return s.WithFilters(ev.Category, ev.Filters)
	}
	return s
}

// TabAfter returns the tab to the right of c, wrapping past the end.
func TabAfter(c models.Category) models.Category {
	return tabAt(tabIndex(c) + 1)
}

// TabBefore returns the tab to the left of c, wrapping past the start.
func TabBefore(c models.Category) models.Category {
	return tabAt(tabIndex(c) - 1)
}

// FirstTab and LastTab anchor home/end keyboard navigation.
func FirstTab() models.Category { return models.Categories[0] }
func LastTab() models.Category  { return models.Categories[len(models.Categories)-1] }

func tabIndex(c models.Category) int {
	for i, cat := range models.Categories {
		if cat == c {
			return i
		}
	}
	return 0
}

func tabAt(i int) models.Category {
	n := len(models.Categories)
	return models.Categories[((i%n)+n)%n]
}

// Debouncer coalesces bursts of calls: only the last call within the quiet
// window fires. The pending timer is explicit state, reset on every call.
type Debouncer struct {
	window time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn after the quiet window, cancelling any pending call.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// ErrStale marks a load whose result arrived after a newer state change.
// Callers discard it instead of rendering over fresher data.
var ErrStale = errors.New("render superseded by a newer state change")

// BoardController owns the live board state and guards against the
// slow-fetch race: every state change bumps a generation counter, and a
// load only returns its views while its generation is still current.
type BoardController struct {
	feeds *FeedService

	mu    sync.Mutex
	state models.BoardState
	gen   atomic.Uint64
}

func NewBoardController(feeds *FeedService, initial models.BoardState) *BoardController {
	c := &BoardController{feeds: feeds, state: initial}
	return c
}

// State returns the current board state.
func (c *BoardController) State() models.BoardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies an event and returns the new state plus the generation
// token a follow-up Load must carry.
func (c *BoardController) Dispatch(e Event) (models.BoardState, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Reduce(c.state, e)
	return c.state, c.gen.Add(1)
}

// Load fetches the active tab's feed and derives both views. If the
// generation token no longer matches the latest dispatch, the result is
// discarded and ErrStale returned.
func (c *BoardController) Load(ctx context.Context, gen uint64, now time.Time, windowDays, soonCap, recentCap int) (BoardViews, error) {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	items, err := c.feeds.Items(ctx, state.Tab)
	if err != nil {
		return BoardViews{}, err
	}
	if gen != c.gen.Load() {
		return BoardViews{}, ErrStale
	}
	return DeriveViews(items, state.Query, state.ActiveFilters(), now, windowDays, soonCap, recentCap), nil
}

package client

import (
	"context"
	"net/url"
	"sync"
	"time"

	"food-journal/internal/model"
	"food-journal/internal/service"
)

// DayLoader re-issues the day query.
type DayLoader interface {
	Load(ctx context.Context, date string) error
}

// DayNavigator tracks the selected day and keeps the shareable route in step.
type DayNavigator struct {
	mu     sync.Mutex
	loader DayLoader
	loc    *time.Location
	now    func() time.Time
	day    time.Time
}

// NewDayNavigator starts on today. now may be nil.
func NewDayNavigator(loader DayLoader, loc *time.Location, now func() time.Time) *DayNavigator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &DayNavigator{
		loader: loader,
		loc:    loc,
		now:    now,
		day:    service.StartOfDay(now().In(loc)),
	}
}

// Day returns the selected day as YYYY-MM-DD.
func (n *DayNavigator) Day() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.day.Format(model.DateLayout)
}

// Route returns the bookmarkable route for the selected day.
func (n *DayNavigator) Route() string {
	return RouteFor(n.Day())
}

// Next moves one day forward.
func (n *DayNavigator) Next(ctx context.Context) error {
	return n.step(ctx, 1)
}

// Prev moves one day back.
func (n *DayNavigator) Prev(ctx context.Context) error {
	return n.step(ctx, -1)
}

// Pick jumps to date (YYYY-MM-DD or an RFC 3339 instant).
func (n *DayNavigator) Pick(ctx context.Context, date string) error {
	d, err := service.ParseDay(date, n.loc)
	if err != nil {
		return err
	}
	return n.set(ctx, d)
}

// FromRoute restores the day from a route such as one produced by Route.
// A missing or invalid date selects today.
func (n *DayNavigator) FromRoute(ctx context.Context, route string) error {
	date := ""
	if u, err := url.Parse(route); err == nil {
		date = u.Query().Get("date")
	}
	return n.set(ctx, service.ResolveDay(date, n.now(), n.loc))
}

func (n *DayNavigator) step(ctx context.Context, days int) error {
	n.mu.Lock()
	d := n.day.AddDate(0, 0, days)
	n.mu.Unlock()
	return n.set(ctx, d)
}

func (n *DayNavigator) set(ctx context.Context, d time.Time) error {
	n.mu.Lock()
	n.day = service.StartOfDay(d)
	date := n.day.Format(model.DateLayout)
	n.mu.Unlock()

	return n.loader.Load(ctx, date)
}

// RouteFor returns the day view route for date.
func RouteFor(date string) string {
	return "/meals?date=" + url.QueryEscape(date)
}

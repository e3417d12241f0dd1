package client

import (
	"context"
	"sync"

	"food-journal/internal/model"
)

// MealAPI is the subset of the API the meal list needs.
type MealAPI interface {
	ListDay(ctx context.Context, date string) (*model.DayView, error)
	DeleteMeal(ctx context.Context, id string) error
}

// MealList renders a day's meals with pending removals applied on top of the
// last authoritative listing.
type MealList struct {
	mu            sync.Mutex
	api           MealAPI
	notifier      Notifier
	date          string
	authoritative []model.Meal
	pending       map[string]struct{}
}

// NewMealList creates an empty list. notifier may be nil.
func NewMealList(api MealAPI, notifier Notifier) *MealList {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &MealList{
		api:      api,
		notifier: notifier,
		pending:  make(map[string]struct{}),
	}
}

// Load fetches the listing for date and makes it authoritative.
func (l *MealList) Load(ctx context.Context, date string) error {
	day, err := l.api.ListDay(ctx, date)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.date = day.Date
	l.mu.Unlock()

	l.Reconcile(day.Meals)
	return nil
}

// Date returns the day currently shown.
func (l *MealList) Date() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.date
}

// Items returns the authoritative meals minus pending removals.
func (l *MealList) Items() []model.Meal {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.Meal, 0, len(l.authoritative))
	for _, m := range l.authoritative {
		if _, gone := l.pending[m.ID.String()]; gone {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Reconcile replaces the authoritative list and drops pending removals the
// new listing already reflects.
func (l *MealList) Reconcile(meals []model.Meal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.authoritative = append([]model.Meal(nil), meals...)

	present := make(map[string]struct{}, len(meals))
	for _, m := range meals {
		present[m.ID.String()] = struct{}{}
	}
	for id := range l.pending {
		if _, ok := present[id]; !ok {
			delete(l.pending, id)
		}
	}
}

// Delete hides the meal immediately, then asks the server to remove it.
// On success the day is refreshed; on failure the meal reappears.
func (l *MealList) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	l.pending[id] = struct{}{}
	date := l.date
	l.mu.Unlock()

	if err := l.api.DeleteMeal(ctx, id); err != nil {
		l.mu.Lock()
		delete(l.pending, id)
		l.mu.Unlock()

		l.notifier.Error("Could not delete meal", err)
		return err
	}

	l.notifier.Success("Meal deleted")

	if err := l.Load(ctx, date); err != nil {
		// The pending removal stays until a later refresh reflects it.
		l.notifier.Error("Could not refresh meals", err)
	}
	return nil
}

// Pending reports how many removals are awaiting confirmation.
func (l *MealList) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

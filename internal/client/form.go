package client

import (
	"context"
	"strings"

	"food-journal/internal/model"
)

// MealWriter is the subset of the API the form submits through.
type MealWriter interface {
	CreateMeal(ctx context.Context, req *model.MealRequest) (*model.Meal, error)
	UpdateMeal(ctx context.Context, id string, req *model.MealRequest) (*model.Meal, error)
}

// MealForm is the add/edit meal drawer. A non-empty ID makes it an edit.
type MealForm struct {
	ID          string
	Description string
	Quantity    string
	Date        string
	Time        *TimePicker
}

// EditForm prefills a form from an existing meal, in the meal's own location.
func EditForm(m model.Meal) *MealForm {
	f := &MealForm{
		ID:          m.ID.String(),
		Description: m.Description,
		Date:        m.ConsumedAt.Format(model.DateLayout),
		Time:        NewTimePicker(m.ConsumedAt.Format(model.TimeLayout), m.ConsumedAt),
	}
	if m.Quantity != nil {
		f.Quantity = *m.Quantity
	}
	return f
}

// Request builds the submission payload combining date and time.
func (f *MealForm) Request() (*model.MealRequest, error) {
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return nil, model.ErrDescriptionRequired
	}

	req := &model.MealRequest{
		ID:          f.ID,
		Description: desc,
		Date:        f.Date,
	}
	if q := strings.TrimSpace(f.Quantity); q != "" {
		req.Quantity = &q
	}
	if f.Time != nil {
		req.Time = f.Time.Confirm()
	}
	return req, nil
}

// Submit creates or updates the meal and reports the outcome to notifier,
// which may be nil.
func (f *MealForm) Submit(ctx context.Context, api MealWriter, notifier Notifier) (*model.Meal, error) {
	if notifier == nil {
		notifier = NopNotifier{}
	}

	req, err := f.Request()
	if err != nil {
		notifier.Error("Description is required", err)
		return nil, err
	}

	var meal *model.Meal
	if f.ID != "" {
		meal, err = api.UpdateMeal(ctx, f.ID, req)
	} else {
		meal, err = api.CreateMeal(ctx, req)
	}
	if err != nil {
		notifier.Error("Could not save meal", err)
		return nil, err
	}

	if f.ID != "" {
		notifier.Success("Meal updated")
	} else {
		notifier.Success("Meal logged")
	}
	return meal, nil
}

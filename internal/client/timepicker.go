package client

import (
	"fmt"
	"time"

	"food-journal/internal/model"
)

const minuteStep = 5

// TimePicker holds an hour (0-23) and a minute on a 5-minute grid (0-55).
type TimePicker struct {
	hour   int
	minute int
}

// NewTimePicker parses initial as HH:mm, falling back to the clock of now.
func NewTimePicker(initial string, now time.Time) *TimePicker {
	p := &TimePicker{}
	if t, err := time.Parse(model.TimeLayout, initial); err == nil {
		p.SetHour(t.Hour())
		p.SetMinute(t.Minute())
		return p
	}
	p.SetHour(now.Hour())
	p.SetMinute(now.Minute())
	return p
}

// SetHour selects h, clamped to 0-23.
func (p *TimePicker) SetHour(h int) {
	switch {
	case h < 0:
		h = 0
	case h > 23:
		h = 23
	}
	p.hour = h
}

// SetMinute selects m rounded to the nearest 5 and clamped to 0-55.
func (p *TimePicker) SetMinute(m int) {
	p.minute = snapMinute(m)
}

// Hour returns the selected hour.
func (p *TimePicker) Hour() int { return p.hour }

// Minute returns the selected minute.
func (p *TimePicker) Minute() int { return p.minute }

// Confirm returns the selection as HH:mm.
func (p *TimePicker) Confirm() string {
	return fmt.Sprintf("%02d:%02d", p.hour, p.minute)
}

// MinuteOptions lists the selectable minutes.
func MinuteOptions() []int {
	out := make([]int, 0, 60/minuteStep)
	for m := 0; m < 60; m += minuteStep {
		out = append(out, m)
	}
	return out
}

func snapMinute(m int) int {
	if m < 0 {
		return 0
	}
	m = (m + minuteStep/2) / minuteStep * minuteStep
	if m > 60-minuteStep {
		m = 60 - minuteStep
	}
	return m
}

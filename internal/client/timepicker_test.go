package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTimePicker(t *testing.T) {
	now := time.Date(2024, 3, 20, 14, 47, 0, 0, time.UTC)

	tests := []struct {
		name     string
		initial  string
		expected string
	}{
		{name: "Parses initial value", initial: "08:30", expected: "08:30"},
		{name: "Rounds initial minute", initial: "08:32", expected: "08:30"},
		{name: "Empty uses clock", initial: "", expected: "14:45"},
		{name: "Invalid uses clock", initial: "25:99", expected: "14:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewTimePicker(tt.initial, now).Confirm())
		})
	}
}

func TestTimePicker_SetMinute(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{0, 0}, {2, 0}, {3, 5}, {7, 5}, {8, 10}, {55, 55}, {57, 55}, {59, 55}, {-4, 0},
	}

	p := &TimePicker{}
	for _, tt := range tests {
		p.SetMinute(tt.in)
		assert.Equal(t, tt.expected, p.Minute(), "minute %d", tt.in)
	}
}

func TestTimePicker_SetHourClamps(t *testing.T) {
	p := &TimePicker{}

	p.SetHour(-1)
	assert.Equal(t, 0, p.Hour())

	p.SetHour(24)
	assert.Equal(t, 23, p.Hour())

	p.SetHour(7)
	p.SetMinute(5)
	assert.Equal(t, "07:05", p.Confirm())
}

func TestMinuteOptions(t *testing.T) {
	opts := MinuteOptions()

	assert.Len(t, opts, 12)
	assert.Equal(t, 0, opts[0])
	assert.Equal(t, 55, opts[len(opts)-1])
}

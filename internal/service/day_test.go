package service

import (
	"testing"
	"time"

	"food-journal/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConsumedAt(t *testing.T) {
	now := time.Date(2024, 3, 20, 14, 45, 12, 500, time.UTC)

	tests := []struct {
		name        string
		date        string
		clock       string
		expected    time.Time
		expectedErr error
	}{
		{
			name:     "Neither date nor time uses now",
			expected: now,
		},
		{
			name:     "Date only borrows current clock",
			date:     "2024-03-15",
			expected: time.Date(2024, 3, 15, 14, 45, 12, 0, time.UTC),
		},
		{
			name:     "Date and time",
			date:     "2024-03-15",
			clock:    "08:30",
			expected: time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name:     "Time only uses today",
			clock:    "07:05",
			expected: time.Date(2024, 3, 20, 7, 5, 0, 0, time.UTC),
		},
		{
			name:     "RFC 3339 date takes the calendar date",
			date:     "2024-03-15T22:10:00Z",
			expected: time.Date(2024, 3, 15, 14, 45, 12, 0, time.UTC),
		},
		{
			name:        "Bad date",
			date:        "15/03/2024",
			expectedErr: model.ErrInvalidDate,
		},
		{
			name:        "Bad time",
			date:        "2024-03-15",
			clock:       "8.30pm",
			expectedErr: model.ErrInvalidTime,
		},
		{
			name:        "Out of range time",
			clock:       "24:00",
			expectedErr: model.ErrInvalidTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveConsumedAt(tt.date, tt.clock, now, time.UTC)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestResolveConsumedAt_UsesTimeBasis(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 23:30 UTC on the 14th is 08:30 on the 15th in Tokyo.
	now := time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC)

	got, err := ResolveConsumedAt("2024-03-16", "", now, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 16, 8, 30, 0, 0, tokyo), got)

	got, err = ResolveConsumedAt("", "12:00", now, tokyo)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, tokyo), got)
}

func TestDayBounds(t *testing.T) {
	day := time.Date(2024, 3, 15, 17, 4, 0, 0, time.UTC)

	start, end := DayBounds(day)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestResolveDay(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		input    string
		expected string
	}{
		{"2024-03-15", "2024-03-15"},
		{"2024-03-15T23:59:00Z", "2024-03-15"},
		{"", "2024-03-20"},
		{"yesterday", "2024-03-20"},
		{"2024-02-30", "2024-03-20"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveDay(tt.input, now, time.UTC).Format(model.DateLayout))
		})
	}
}

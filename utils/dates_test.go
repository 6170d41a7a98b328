package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	t.Parallel()

	christmas := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{name: "dotted day-month-year", input: "25.12.2025", want: christmas, ok: true},
		{name: "iso year-month-day", input: "2025-12-25", want: christmas, ok: true},
		{name: "slash month-day-year", input: "12/25/2025", want: christmas, ok: true},
		{name: "single digit components dotted", input: "1.6.2025", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "single digit components iso", input: "2025-6-1", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "iso with trailing time", input: "2025-12-25T18:00:00", want: christmas, ok: true},
		{name: "free text fallback", input: "25 December 2025", want: christmas, ok: true},
		{name: "garbage", input: "not-a-date", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "components out of range", input: "2025-99-99", ok: false},
		{name: "year too old", input: "25.12.1899", ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeDate(tc.input)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, tc.want.Equal(got), "got %s, want %s", got, tc.want)
			}
		})
	}
}

// Every representation of the same calendar date normalizes identically.
func TestNormalizeDateAgreesAcrossForms(t *testing.T) {
	t.Parallel()

	inputs := []string{"25.12.2025", "2025-12-25", "12/25/2025"}
	want := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)

	for _, in := range inputs {
		got, ok := NormalizeDate(in)
		require.True(t, ok, "input %q", in)
		assert.True(t, want.Equal(got), "input %q normalized to %s", in, got)
	}
}

// The dotted European form wins over a slash reading of the same digits.
func TestNormalizeDatePriority(t *testing.T) {
	t.Parallel()

	got, ok := NormalizeDate("2.3.2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), got)

	got, ok = NormalizeDate("2/3/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), got)
}

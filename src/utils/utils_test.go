package utils

import (
	"errors"
	"testing"
	"time"

	"fn-peaks/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const layout = "01/02/2006 15:04:05"

func TestParseTimeConfiguredLayout(t *testing.T) {
	got, err := ParseTime("03/15/2024 13:45:00", layout, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC), got)
}

func TestParseTimeFallbacks(t *testing.T) {
	got, err := ParseTime("2024-03-15T10:00:00+02:00", layout, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)))

	got, err = ParseTime(" 2024-03-15 ", layout, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseTimeRejectsGarbage(t *testing.T) {
	_, err := ParseTime("15.03.2024", layout, time.UTC)
	require.Error(t, err)

	var invalid *helpers.InvalidTimeError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "15.03.2024", invalid.Input)
}

func TestParseRange(t *testing.T) {
	r, err := ParseRange("01/01/2024 00:00:00", "01/31/2024 00:00:00", layout, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, r.End.Sub(r.Start))

	_, err = ParseRange("01/01/2024 00:00:00", "bad", layout, time.UTC)
	assert.Error(t, err)
}

func TestDayPath(t *testing.T) {
	y, m, d := DayPath(time.Date(2024, 2, 5, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2024", "02", "05"}, []string{y, m, d})
}

func TestDayCalendar(t *testing.T) {
	assert.Nil(t, NewDayCalendar(""))

	cal := NewDayCalendar("xnys")
	require.NotNil(t, cal)
	assert.True(t, cal.IsBusinessDay(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)), "monday")
	assert.False(t, cal.IsBusinessDay(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), "saturday")
}

func TestDayCalendarFallback(t *testing.T) {
	cal := &DayCalendar{Fallback: true}
	assert.True(t, cal.IsBusinessDay(time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cal.IsBusinessDay(time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)))
}

func TestRingBufferWrapsAndOrders(t *testing.T) {
	rb := NewRingBuffer[int](3)
	for i := 1; i <= 5; i++ {
		rb.Append(i)
	}

	assert.Equal(t, 3, rb.Len())
	assert.Equal(t, []int{3, 4, 5}, rb.GetAll())
	assert.Equal(t, []int{5, 4}, rb.GetLatest(2))
	assert.Equal(t, []int{5, 4, 3}, rb.GetLatest(10))
	assert.Empty(t, NewRingBuffer[int](2).GetLatest(1))
}

func TestRingBufferRetain(t *testing.T) {
	rb := NewRingBuffer[int](4)
	for i := 1; i <= 6; i++ {
		rb.Append(i)
	}

	removed := rb.Retain(func(v int) bool { return v%2 == 0 })

	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{4, 6}, rb.GetAll())
	rb.Append(7)
	assert.Equal(t, []int{7, 6, 4}, rb.GetLatest(3))
}

package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barber-booking/backend/internal/timeslot"
)

func datesEngine(t *testing.T, closed map[time.Weekday]bool, horizon int) *Engine {
	t.Helper()
	grid, err := timeslot.NewGrid("09:00", "17:30", 30)
	require.NoError(t, err)
	return NewEngine(grid, closed, horizon, zap.NewNop())
}

func TestOfferableDates_ConsecutiveDays(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{}, 30)
	today := time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

	got := e.OfferableDates(today, DaySet{}, 5)
	require.Len(t, got, 5)
	assert.Equal(t, "2026-03-10", got[0].Date, "today is always the first candidate")
	assert.Equal(t, "2026-03-14", got[4].Date)
	assert.Equal(t, "Tue", got[0].Weekday)
	assert.Equal(t, "Sat", got[4].Weekday)
}

func TestOfferableDates_SkipsBlockedAndExtends(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{}, 30)
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	got := e.OfferableDates(today, DaySet{"2026-03-11": true, "2026-03-13": true}, 5)
	require.Len(t, got, 5)
	dates := []string{got[0].Date, got[1].Date, got[2].Date, got[3].Date, got[4].Date}
	assert.Equal(t, []string{"2026-03-10", "2026-03-12", "2026-03-14", "2026-03-15", "2026-03-16"}, dates)
}

func TestOfferableDates_ClosedWeekdays(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{time.Saturday: true}, 30)
	today := time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC) // Friday

	got := e.OfferableDates(today, DaySet{}, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "2026-03-13", got[0].Date)
	assert.Equal(t, "2026-03-15", got[1].Date, "Saturday skipped")
	assert.Equal(t, "2026-03-16", got[2].Date)
}

func TestOfferableDates_HorizonExhausted(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{}, 4)
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	blocked := DaySet{"2026-03-11": true, "2026-03-12": true, "2026-03-13": true}
	got := e.OfferableDates(today, blocked, 5)
	require.Len(t, got, 1, "only today fits inside the horizon")
	assert.Equal(t, "2026-03-10", got[0].Date)
}

func TestOfferableDates_Deterministic(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{time.Sunday: true}, 30)
	today := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	blocked := DaySet{"2026-03-12": true}

	a := e.OfferableDates(today, blocked, 5)
	b := e.OfferableDates(today, blocked, 5)
	assert.Equal(t, a, b)
}

func TestOfferableDates_ZeroCount(t *testing.T) {
	e := datesEngine(t, map[time.Weekday]bool{}, 30)
	assert.Empty(t, e.OfferableDates(time.Now(), DaySet{}, 0))
}

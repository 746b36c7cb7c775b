package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/timeslot"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	grid, err := timeslot.NewGrid("09:00", "17:30", 30)
	require.NoError(t, err)
	return NewEngine(grid, map[time.Weekday]bool{}, 30, zap.NewNop())
}

func testNow() time.Time {
	// Tuesday morning.
	return time.Date(2026, 3, 10, 10, 5, 0, 0, time.UTC)
}

func TestIsBookable_FreeSlot(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{BlockedDays: DaySet{}, BlockedSlots: SlotMap{}}

	assert.True(t, e.IsBookable("2026-03-11", "10:00", "u1", snap, testNow()))
}

func TestIsBookable_BlockPrecedence(t *testing.T) {
	e := newTestEngine(t)

	// A day block hides everything on the date, even the user's own slot.
	snap := Snapshot{
		Reservations: []reservation.Reservation{{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"}},
		BlockedDays:  DaySet{"2026-03-11": true},
		BlockedSlots: SlotMap{},
	}
	assert.False(t, e.IsBookable("2026-03-11", "10:00", "u1", snap, testNow()))

	snap = Snapshot{
		BlockedDays:  DaySet{},
		BlockedSlots: SlotMap{"2026-03-11": {"10:00": true}},
	}
	assert.False(t, e.IsBookable("2026-03-11", "10:00", "u1", snap, testNow()))
	assert.True(t, e.IsBookable("2026-03-11", "10:30", "u1", snap, testNow()))
}

func TestIsBookable_OwnSlotIsReplaceable(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{
		Reservations: []reservation.Reservation{{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"}},
		BlockedDays:  DaySet{},
		BlockedSlots: SlotMap{},
	}

	assert.True(t, e.IsBookable("2026-03-11", "10:00", "u1", snap, testNow()), "own slot reads as bookable")
	assert.False(t, e.IsBookable("2026-03-11", "10:00", "u2", snap, testNow()))
}

func TestIsBookable_WalkInConflictsWithOwner(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{
		Reservations: []reservation.Reservation{{ID: "1", Date: "2026-03-11", Time: "10:00"}},
		BlockedDays:  DaySet{},
		BlockedSlots: SlotMap{},
	}

	// An empty owner id belongs to nobody, so nobody gets the replace
	// exemption, not even another anonymous request.
	assert.False(t, e.IsBookable("2026-03-11", "10:00", "u1", snap, testNow()))
	assert.False(t, e.IsBookable("2026-03-11", "10:00", "", snap, testNow()))
}

func TestIsBookable_PastSameDay(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{BlockedDays: DaySet{}, BlockedSlots: SlotMap{}}
	now := testNow() // 10:05

	assert.False(t, e.IsBookable("2026-03-10", "09:30", "u1", snap, now))
	assert.False(t, e.IsBookable("2026-03-10", "10:00", "u1", snap, now), "slot start equal or before now is past")
	assert.True(t, e.IsBookable("2026-03-10", "10:30", "u1", snap, now))

	// Other days are never past-gated.
	assert.True(t, e.IsBookable("2026-03-11", "09:00", "u1", snap, now))
}

func TestSlotInPast_MalformedInputFailsOpen(t *testing.T) {
	e := newTestEngine(t)

	assert.False(t, e.SlotInPast("not-a-date", "09:00", testNow()))
	assert.False(t, e.SlotInPast("2026-03-10", "garbage", testNow()))
}

func TestUserReservation(t *testing.T) {
	e := newTestEngine(t)
	reservations := []reservation.Reservation{
		{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"},
		{ID: "2", UserID: "u2", Date: "2026-03-11", Time: "11:00"},
		{ID: "3", UserID: "u1", Date: "2026-03-12", Time: "09:00"},
	}

	got := e.UserReservation("u1", "2026-03-11", reservations)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	assert.Nil(t, e.UserReservation("u3", "2026-03-11", reservations))
	assert.Nil(t, e.UserReservation("", "2026-03-11", reservations), "walk-ins have no owner")
}

func TestUserReservation_DuplicatesResolveDeterministically(t *testing.T) {
	e := newTestEngine(t)
	reservations := []reservation.Reservation{
		{ID: "b", UserID: "u1", Date: "2026-03-11", Time: "14:00"},
		{ID: "a", UserID: "u1", Date: "2026-03-11", Time: "10:00"},
	}

	got := e.UserReservation("u1", "2026-03-11", reservations)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID, "earliest slot wins")
}

func TestDayView_Statuses(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{
		Reservations: []reservation.Reservation{
			{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"},
			{ID: "2", UserID: "u2", Date: "2026-03-11", Time: "11:00"},
			{ID: "3", Date: "2026-03-11", Time: "12:00"},
		},
		BlockedDays:  DaySet{},
		BlockedSlots: SlotMap{"2026-03-11": {"13:00": true}},
	}

	view := e.DayView("2026-03-11", "u1", snap, testNow())
	require.Len(t, view, 18)

	byTime := map[string]string{}
	for _, v := range view {
		byTime[v.Time] = v.Status
	}
	assert.Equal(t, StatusYours, byTime["10:00"])
	assert.Equal(t, StatusBooked, byTime["11:00"])
	assert.Equal(t, StatusBooked, byTime["12:00"], "walk-in shows as booked")
	assert.Equal(t, StatusBlocked, byTime["13:00"])
	assert.Equal(t, StatusFree, byTime["09:00"])
}

func TestDayView_BlockedDayWinsOverReservation(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{
		Reservations: []reservation.Reservation{{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"}},
		BlockedDays:  DaySet{"2026-03-11": true},
		BlockedSlots: SlotMap{},
	}

	view := e.DayView("2026-03-11", "u1", snap, testNow())
	for _, v := range view {
		assert.Equal(t, StatusBlocked, v.Status, v.Time)
	}
}

func TestDayView_PastSlotsOnToday(t *testing.T) {
	e := newTestEngine(t)
	snap := Snapshot{BlockedDays: DaySet{}, BlockedSlots: SlotMap{}}

	view := e.DayView("2026-03-10", "u1", snap, testNow()) // 10:05
	byTime := map[string]string{}
	for _, v := range view {
		byTime[v.Time] = v.Status
	}
	assert.Equal(t, StatusPast, byTime["09:00"])
	assert.Equal(t, StatusPast, byTime["10:00"])
	assert.Equal(t, StatusFree, byTime["10:30"])
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barber-booking/backend/internal/domain/availability"
	"barber-booking/backend/internal/domain/news"
	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/timeslot"
)

func newTestCoordinator(t *testing.T, hub *Hub) *Coordinator {
	t.Helper()
	grid, err := timeslot.NewGrid("09:00", "17:30", 30)
	require.NoError(t, err)

	engine := availability.NewEngine(grid, map[time.Weekday]bool{}, 30, zap.NewNop())
	c := NewCoordinator(engine, hub, 5, zap.NewNop())
	c.now = func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	}
	return c
}

// drain waits until the coordinator has absorbed pending stream messages.
func drain(c *Coordinator, check func() bool) bool {
	deadline := time.After(2 * time.Second)
	for {
		if check() {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestCoordinator_ReplacesSnapshotWholesale(t *testing.T) {
	c := newTestCoordinator(t, nil)
	resCh := make(chan []reservation.Reservation, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, Streams{Reservations: resCh})

	resCh <- []reservation.Reservation{
		{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"},
		{ID: "2", UserID: "u2", Date: "2026-03-11", Time: "11:00"},
	}
	require.True(t, drain(c, func() bool { return len(c.Snapshot().Reservations) == 2 }))

	// The next emission is the complete state: the removed reservation
	// must not linger.
	resCh <- []reservation.Reservation{
		{ID: "2", UserID: "u2", Date: "2026-03-11", Time: "11:00"},
	}
	require.True(t, drain(c, func() bool { return len(c.Snapshot().Reservations) == 1 }))
	assert.Equal(t, "u2", c.Snapshot().Reservations[0].UserID)
}

func TestCoordinator_OfferableDatesSkipBlocked(t *testing.T) {
	c := newTestCoordinator(t, nil)
	daysCh := make(chan availability.DaySet, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, Streams{BlockedDays: daysCh})

	dates := c.Dates()
	require.Len(t, dates, 5)
	assert.Equal(t, "2026-03-10", dates[0].Date)
	assert.Equal(t, "Tue", dates[0].Weekday)

	daysCh <- availability.DaySet{"2026-03-11": true}
	require.True(t, drain(c, func() bool {
		d := c.Dates()
		return len(d) == 5 && d[1].Date == "2026-03-12"
	}))
}

func TestCoordinator_AdvancesInvalidatedSelectedDate(t *testing.T) {
	hub := NewHub()
	c := newTestCoordinator(t, hub)
	daysCh := make(chan availability.DaySet, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, Streams{BlockedDays: daysCh})

	hub.OnSignIn("u1", true, false)
	_, err := hub.SelectDate("u1", "2026-03-11")
	require.NoError(t, err)

	daysCh <- availability.DaySet{"2026-03-11": true}
	require.True(t, drain(c, func() bool {
		s, err := hub.Get("u1")
		return err == nil && s.SelectedDate == "2026-03-10"
	}))
}

func TestCoordinator_DayViewFromSnapshot(t *testing.T) {
	c := newTestCoordinator(t, nil)
	resCh := make(chan []reservation.Reservation, 1)
	slotsCh := make(chan availability.SlotMap, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, Streams{Reservations: resCh, BlockedSlots: slotsCh})

	resCh <- []reservation.Reservation{
		{ID: "1", UserID: "u1", Date: "2026-03-11", Time: "10:00"},
		{ID: "2", Date: "2026-03-11", Time: "11:00"}, // walk-in
	}
	slotsCh <- availability.SlotMap{"2026-03-11": {"12:00": true}}
	require.True(t, drain(c, func() bool {
		return len(c.Snapshot().Reservations) == 2 && len(c.Snapshot().BlockedSlots) == 1
	}))

	view := c.DayView("2026-03-11", "u1")
	byTime := map[string]string{}
	for _, v := range view {
		byTime[v.Time] = v.Status
	}
	assert.Equal(t, availability.StatusYours, byTime["10:00"])
	assert.Equal(t, availability.StatusBooked, byTime["11:00"], "walk-ins read as booked for everyone")
	assert.Equal(t, availability.StatusBlocked, byTime["12:00"])
	assert.Equal(t, availability.StatusFree, byTime["09:00"])
}

func TestCoordinator_LatestNews(t *testing.T) {
	c := newTestCoordinator(t, nil)
	newsCh := make(chan news.Announcement, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx, Streams{News: newsCh})

	assert.Nil(t, c.LatestNews())

	newsCh <- news.Announcement{ID: "a1", Message: "New opening hours"}
	require.True(t, drain(c, func() bool { return c.LatestNews() != nil }))
	assert.Equal(t, "New opening hours", c.LatestNews().Message)
}

func TestCoordinator_StopsOnCancel(t *testing.T) {
	c := newTestCoordinator(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx, Streams{})
	cancel()
	c.Wait()
}

func TestHub_Routing(t *testing.T) {
	hub := NewHub()

	s := hub.OnSignIn("u1", false, false)
	assert.Equal(t, StateAwaitingPhone, s.State)

	s, err := hub.OnPhoneSaved("u1")
	require.NoError(t, err)
	assert.Equal(t, StateClient, s.State)

	s = hub.OnSignIn("admin1", true, true)
	assert.Equal(t, StateAdmin, s.State)

	hub.OnSignOut("u1")
	_, err = hub.Get("u1")
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestHub_SelectedDateSurvivesReauth(t *testing.T) {
	hub := NewHub()
	hub.OnSignIn("u1", true, false)
	_, err := hub.SelectDate("u1", "2026-03-12")
	require.NoError(t, err)

	s := hub.OnSignIn("u1", true, false)
	assert.Equal(t, "2026-03-12", s.SelectedDate)
}

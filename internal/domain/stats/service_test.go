package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/domain/schedule"
)

type fakeSource struct {
	reservations []reservation.Reservation
	days         []string
	slots        []schedule.BlockedSlot
}

func (f *fakeSource) ListAll(_ context.Context) ([]reservation.Reservation, error) {
	return f.reservations, nil
}

func (f *fakeSource) ListBlockedDays(_ context.Context) ([]string, error) {
	return f.days, nil
}

func (f *fakeSource) ListBlockedSlots(_ context.Context) ([]schedule.BlockedSlot, error) {
	return f.slots, nil
}

func TestShopStats(t *testing.T) {
	src := &fakeSource{
		reservations: []reservation.Reservation{
			{ID: "1", UserID: "u1", Date: "2026-03-09", Time: "10:00"},
			{ID: "2", UserID: "u2", Date: "2026-03-10", Time: "11:00"},
			{ID: "3", Date: "2026-03-10", Time: "12:00"},
			{ID: "4", UserID: "u3", Date: "2026-03-12", Time: "09:00"},
		},
		days:  []string{"2026-03-15"},
		slots: []schedule.BlockedSlot{{Date: "2026-03-11", Time: "10:00"}, {Date: "2026-03-11", Time: "10:30"}},
	}
	svc := NewService(src, src)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	}

	got, err := svc.ShopStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, got.Reservations.Total)
	assert.Equal(t, 2, got.Reservations.Today)
	assert.Equal(t, 3, got.Reservations.Upcoming, "today's and future reservations")
	assert.Equal(t, 1, got.Reservations.WalkIns)
	assert.Equal(t, 1, got.Blocking.BlockedDays)
	assert.Equal(t, 2, got.Blocking.BlockedSlots)
}

func TestShopStats_EmptyBook(t *testing.T) {
	svc := NewService(&fakeSource{}, &fakeSource{})

	got, err := svc.ShopStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.Reservations.Total)
	assert.Zero(t, got.Blocking.BlockedDays)
}

package schedule

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barber-booking/backend/internal/timeslot"
)

type fakeScheduleStore struct {
	days  map[string]bool
	slots map[string]map[string]bool
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{days: map[string]bool{}, slots: map[string]map[string]bool{}}
}

func (f *fakeScheduleStore) IsDayBlocked(_ context.Context, date string) (bool, error) {
	return f.days[date], nil
}

func (f *fakeScheduleStore) SetDayBlocked(_ context.Context, date, _ string) error {
	f.days[date] = true
	return nil
}

func (f *fakeScheduleStore) DeleteDayBlocked(_ context.Context, date string) error {
	delete(f.days, date)
	return nil
}

func (f *fakeScheduleStore) ListBlockedDays(_ context.Context) ([]string, error) {
	out := []string{}
	for d := range f.days {
		out = append(out, d)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeScheduleStore) BlockedTimes(_ context.Context, date string) (map[string]bool, error) {
	if t, ok := f.slots[date]; ok {
		return t, nil
	}
	return map[string]bool{}, nil
}

func (f *fakeScheduleStore) BlockSlots(_ context.Context, date string, labels []string) error {
	if f.slots[date] == nil {
		f.slots[date] = map[string]bool{}
	}
	for _, l := range labels {
		f.slots[date][l] = true
	}
	return nil
}

func (f *fakeScheduleStore) UnblockSlot(_ context.Context, date, label string) error {
	if f.slots[date] == nil {
		return ErrNotBlocked
	}
	delete(f.slots[date], label)
	return nil
}

func (f *fakeScheduleStore) ListBlockedSlotDates(_ context.Context) ([]string, error) {
	out := []string{}
	for d, times := range f.slots {
		if len(times) > 0 {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out, nil
}

func setupScheduleService(t *testing.T) (*Service, *fakeScheduleStore) {
	t.Helper()
	grid, err := timeslot.NewGrid("09:00", "17:30", 30)
	require.NoError(t, err)
	store := newFakeScheduleStore()
	return NewService(store, grid), store
}

func TestBlockDay(t *testing.T) {
	svc, store := setupScheduleService(t)

	require.NoError(t, svc.BlockDay(context.Background(), "admin1", "2026-03-11"))
	assert.True(t, store.days["2026-03-11"])

	err := svc.BlockDay(context.Background(), "admin1", "2026-03-11")
	assert.True(t, IsErrAlreadyBlocked(err), "double block must be reported")
}

func TestBlockDay_BadDate(t *testing.T) {
	svc, _ := setupScheduleService(t)

	for _, d := range []string{"", "11-03-2026", "2026/03/11", "tomorrow"} {
		err := svc.BlockDay(context.Background(), "admin1", d)
		assert.True(t, IsErrBadRequest(err), d)
	}
}

func TestUnblockDay(t *testing.T) {
	svc, store := setupScheduleService(t)

	require.NoError(t, svc.BlockDay(context.Background(), "admin1", "2026-03-11"))
	require.NoError(t, svc.UnblockDay(context.Background(), "2026-03-11"))
	assert.False(t, store.days["2026-03-11"])

	err := svc.UnblockDay(context.Background(), "2026-03-11")
	assert.True(t, IsErrNotBlocked(err))
}

func TestBlockRange(t *testing.T) {
	svc, store := setupScheduleService(t)

	out, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "11:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, out.Blocked)
	assert.Empty(t, out.Skipped)
	assert.True(t, store.slots["2026-03-11"]["10:30"])
}

func TestBlockRange_SkipsAlreadyBlocked(t *testing.T) {
	svc, _ := setupScheduleService(t)

	_, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "10:30"})
	require.NoError(t, err)

	out, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "11:30"})
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "11:30"}, out.Blocked)
	assert.Equal(t, []string{"10:00", "10:30"}, out.Skipped)
}

func TestBlockRange_FullyBlockedRangeWritesNothing(t *testing.T) {
	svc, _ := setupScheduleService(t)

	_, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "10:30"})
	require.NoError(t, err)

	out, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "10:30"})
	require.NoError(t, err)
	assert.Empty(t, out.Blocked)
	assert.Len(t, out.Skipped, 2)
}

func TestBlockRange_Invalid(t *testing.T) {
	svc, _ := setupScheduleService(t)

	_, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "11:00", End: "10:00"})
	assert.True(t, IsErrBadRequest(err), "inverted range")

	_, err = svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:15", End: "11:00"})
	assert.True(t, IsErrBadRequest(err), "off-grid bound")

	_, err = svc.BlockRange(context.Background(), RangeInput{Date: "bad", Start: "10:00", End: "11:00"})
	assert.True(t, IsErrBadRequest(err))
}

func TestUnblockSlot(t *testing.T) {
	svc, store := setupScheduleService(t)

	_, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "10:00", End: "10:00"})
	require.NoError(t, err)

	require.NoError(t, svc.UnblockSlot(context.Background(), "2026-03-11", "10:00"))
	assert.False(t, store.slots["2026-03-11"]["10:00"])

	err = svc.UnblockSlot(context.Background(), "2026-03-11", "10:00")
	assert.True(t, IsErrNotBlocked(err))
}

func TestListBlockedSlots_SortedByDateThenTime(t *testing.T) {
	svc, _ := setupScheduleService(t)

	_, err := svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-12", Start: "09:00", End: "09:30"})
	require.NoError(t, err)
	_, err = svc.BlockRange(context.Background(), RangeInput{Date: "2026-03-11", Start: "15:00", End: "15:00"})
	require.NoError(t, err)

	got, err := svc.ListBlockedSlots(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, BlockedSlot{Date: "2026-03-11", Time: "15:00"}, got[0])
	assert.Equal(t, BlockedSlot{Date: "2026-03-12", Time: "09:00"}, got[1])
	assert.Equal(t, BlockedSlot{Date: "2026-03-12", Time: "09:30"}, got[2])
}

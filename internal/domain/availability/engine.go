package availability

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/timeslot"
)

// DaySet is the set of fully blocked dates, keyed "YYYY-MM-DD".
type DaySet map[string]bool

// SlotMap maps date -> slot label -> blocked.
type SlotMap map[string]map[string]bool

// Blocked reports whether the slot (date, label) is blocked.
func (m SlotMap) Blocked(date, label string) bool {
	return m[date][label]
}

// Snapshot is the in-memory availability state the engine decides over.
// Snapshots come from store subscriptions and may be stale; callers that
// mutate state re-read the contested records first.
type Snapshot struct {
	Reservations []reservation.Reservation
	BlockedDays  DaySet
	BlockedSlots SlotMap
}

// Engine makes pure bookability decisions over snapshots. It never touches
// the store and never returns errors: malformed input resolves to the
// conservative answer and is logged as a data-integrity concern.
type Engine struct {
	grid    *timeslot.Grid
	closed  map[time.Weekday]bool
	horizon int
	log     *zap.Logger
}

func NewEngine(grid *timeslot.Grid, closed map[time.Weekday]bool, horizonDays int, log *zap.Logger) *Engine {
	if horizonDays <= 0 {
		horizonDays = 30
	}
	return &Engine{grid: grid, closed: closed, horizon: horizonDays, log: log}
}

// Grid exposes the slot grid the engine decides over.
func (e *Engine) Grid() *timeslot.Grid {
	return e.grid
}

// IsBookable decides whether requestingUID may book (date, label) given the
// snapshot. A slot already held by the requester is bookable: the caller
// treats that as a replace, not a duplicate.
func (e *Engine) IsBookable(date, label, requestingUID string, snap Snapshot, now time.Time) bool {
	if snap.BlockedDays[date] {
		return false
	}
	if snap.BlockedSlots.Blocked(date, label) {
		return false
	}
	if e.slotInPast(date, label, now) {
		return false
	}
	for _, res := range snap.Reservations {
		if !res.SameSlot(date, label) {
			continue
		}
		// Walk-ins (empty userId) belong to nobody and always conflict.
		if res.UserID == "" || res.UserID != requestingUID {
			return false
		}
	}
	return true
}

// SlotInPast reports whether the slot's start time is at or before now.
func (e *Engine) SlotInPast(date, label string, now time.Time) bool {
	return e.slotInPast(date, label, now)
}

// SlotBlocked is the pure blocked-slot lookup.
func (e *Engine) SlotBlocked(date, label string, slots SlotMap) bool {
	return slots.Blocked(date, label)
}

// UserReservation returns the user's reservation on date, or nil. The data
// model allows at most one; duplicates indicate corruption from concurrent
// writes and are logged, with the earliest slot returned deterministically.
func (e *Engine) UserReservation(uid, date string, reservations []reservation.Reservation) *reservation.Reservation {
	if uid == "" {
		return nil
	}
	var matches []reservation.Reservation
	for _, res := range reservations {
		if res.UserID == uid && res.Date == date {
			matches = append(matches, res)
		}
	}
	switch len(matches) {
	case 0:
		return nil
	case 1:
		return &matches[0]
	}

	e.log.Error("invariant violation: multiple reservations for user on one date",
		zap.String("uid", uid),
		zap.String("date", date),
		zap.Int("count", len(matches)),
	)
	sort.Slice(matches, func(i, j int) bool {
		return timeslot.Before(matches[i].Time, matches[j].Time)
	})
	return &matches[0]
}

// slotInPast reports whether the slot's start datetime is at or before now.
// Only same-day slots can be in the past; a malformed date or label fails
// open here (never-in-the-past) and is logged.
func (e *Engine) slotInPast(date, label string, now time.Time) bool {
	day, err := time.ParseInLocation("2006-01-02", date, now.Location())
	if err != nil {
		e.log.Warn("unparsable reservation date", zap.String("date", date), zap.Error(err))
		return false
	}
	if !sameDay(day, now) {
		return false
	}
	mins, err := timeslot.Minutes(label)
	if err != nil {
		e.log.Warn("unparsable slot label", zap.String("time", label), zap.Error(err))
		return false
	}
	start := day.Add(time.Duration(mins) * time.Minute)
	return !start.After(now)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

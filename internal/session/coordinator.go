package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"barber-booking/backend/internal/domain/availability"
	"barber-booking/backend/internal/domain/news"
	"barber-booking/backend/internal/domain/reservation"
)

// Streams are the store subscriptions the coordinator consumes. Each channel
// delivers full-state replacements; a nil channel is simply never selected.
type Streams struct {
	Reservations <-chan []reservation.Reservation
	BlockedDays  <-chan availability.DaySet
	BlockedSlots <-chan availability.SlotMap
	News         <-chan news.Announcement
}

// Coordinator holds the live availability snapshot assembled from store
// streams and keeps the offerable-date window and per-user view state in
// step with it. Reads are served from memory; bookings still re-read the
// store before writing.
type Coordinator struct {
	engine *availability.Engine
	hub    *Hub
	count  int
	now    func() time.Time
	log    *zap.Logger

	mu     sync.RWMutex
	snap   availability.Snapshot
	dates  []availability.OfferableDate
	latest *news.Announcement

	done chan struct{}
}

func NewCoordinator(engine *availability.Engine, hub *Hub, offeredDates int, log *zap.Logger) *Coordinator {
	if offeredDates <= 0 {
		offeredDates = 5
	}
	return &Coordinator{
		engine: engine,
		hub:    hub,
		count:  offeredDates,
		now:    time.Now,
		log:    log,
		snap: availability.Snapshot{
			BlockedDays:  availability.DaySet{},
			BlockedSlots: availability.SlotMap{},
		},
		done: make(chan struct{}),
	}
}

// Start consumes the streams until ctx is cancelled. Each message replaces
// the matching snapshot slice wholesale; nothing is merged.
func (c *Coordinator) Start(ctx context.Context, s Streams) {
	c.refreshDates()

	go func() {
		defer close(c.done)
		resCh, daysCh, slotsCh, newsCh := s.Reservations, s.BlockedDays, s.BlockedSlots, s.News
		for {
			select {
			case <-ctx.Done():
				return

			case list, ok := <-resCh:
				if !ok {
					resCh = nil
					c.log.Warn("reservation stream closed")
					continue
				}
				c.mu.Lock()
				c.snap.Reservations = list
				c.mu.Unlock()

			case days, ok := <-daysCh:
				if !ok {
					daysCh = nil
					c.log.Warn("blocked-day stream closed")
					continue
				}
				c.mu.Lock()
				c.snap.BlockedDays = days
				c.mu.Unlock()
				c.refreshDates()

			case slots, ok := <-slotsCh:
				if !ok {
					slotsCh = nil
					c.log.Warn("blocked-slot stream closed")
					continue
				}
				c.mu.Lock()
				c.snap.BlockedSlots = slots
				c.mu.Unlock()

			case a, ok := <-newsCh:
				if !ok {
					newsCh = nil
					continue
				}
				c.mu.Lock()
				c.latest = &a
				c.mu.Unlock()
			}
		}
	}()
}

// Wait blocks until the consume loop has exited.
func (c *Coordinator) Wait() {
	<-c.done
}

// refreshDates recomputes the offerable-date window from scratch and moves
// any user whose selected date fell out of it onto the first offerable one.
func (c *Coordinator) refreshDates() {
	c.mu.Lock()
	blocked := c.snap.BlockedDays
	c.dates = c.engine.OfferableDates(c.now(), blocked, c.count)
	dates := c.dates
	c.mu.Unlock()

	if c.hub == nil {
		return
	}
	offerable := map[string]bool{}
	for _, d := range dates {
		offerable[d.Date] = true
	}
	fallback := ""
	if len(dates) > 0 {
		fallback = dates[0].Date
	}
	moved := c.hub.ReselectWhere(offerable, fallback)
	if moved > 0 {
		c.log.Info("advanced selected dates off newly blocked days", zap.Int("sessions", moved))
	}
}

// Snapshot returns a shallow copy of the current availability state.
func (c *Coordinator) Snapshot() availability.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Dates returns the current offerable-date window.
func (c *Coordinator) Dates() []availability.OfferableDate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]availability.OfferableDate, len(c.dates))
	copy(out, c.dates)
	return out
}

// DayView renders the per-slot availability of one date for one requester.
func (c *Coordinator) DayView(date, requestingUID string) []availability.SlotView {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	return c.engine.DayView(date, requestingUID, snap, c.now())
}

// UserReservation returns the requester's reservation on date from the live
// snapshot, or nil.
func (c *Coordinator) UserReservation(uid, date string) *reservation.Reservation {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	return c.engine.UserReservation(uid, date, snap.Reservations)
}

// LatestNews returns the newest streamed announcement, or nil before the
// first one arrives.
func (c *Coordinator) LatestNews() *news.Announcement {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

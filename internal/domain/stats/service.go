package stats

import (
	"context"
	"time"

	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/domain/schedule"
)

// ReservationSource lists the reservation book.
type ReservationSource interface {
	ListAll(ctx context.Context) ([]reservation.Reservation, error)
}

// BlockSource lists the admin's blocking state.
type BlockSource interface {
	ListBlockedDays(ctx context.Context) ([]string, error)
	ListBlockedSlots(ctx context.Context) ([]schedule.BlockedSlot, error)
}

type Service struct {
	resv   ReservationSource
	blocks BlockSource
	now    func() time.Time
}

func NewService(resv ReservationSource, blocks BlockSource) *Service {
	return &Service{resv: resv, blocks: blocks, now: time.Now}
}

// ShopStats computes dashboard counters from the live reservation book.
func (s *Service) ShopStats(ctx context.Context) (*ShopStats, error) {
	all, err := s.resv.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	days, err := s.blocks.ListBlockedDays(ctx)
	if err != nil {
		return nil, err
	}
	slots, err := s.blocks.ListBlockedSlots(ctx)
	if err != nil {
		return nil, err
	}

	today := s.now().Format("2006-01-02")
	out := &ShopStats{
		Blocking: BlockingStats{BlockedDays: len(days), BlockedSlots: len(slots)},
	}
	out.Reservations.Total = len(all)
	for _, res := range all {
		if res.Date == today {
			out.Reservations.Today++
		}
		if res.Date >= today {
			out.Reservations.Upcoming++
		}
		if res.UserID == "" {
			out.Reservations.WalkIns++
		}
	}
	return out, nil
}

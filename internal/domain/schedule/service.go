package schedule

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"barber-booking/backend/internal/timeslot"
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a canonical "YYYY-MM-DD" date string.
func ValidDate(s string) bool {
	return dateRegex.MatchString(s)
}

// Store is the slice of the schedule repo the service needs.
type Store interface {
	IsDayBlocked(ctx context.Context, date string) (bool, error)
	SetDayBlocked(ctx context.Context, date, by string) error
	DeleteDayBlocked(ctx context.Context, date string) error
	ListBlockedDays(ctx context.Context) ([]string, error)
	BlockedTimes(ctx context.Context, date string) (map[string]bool, error)
	BlockSlots(ctx context.Context, date string, labels []string) error
	UnblockSlot(ctx context.Context, date, label string) error
	ListBlockedSlotDates(ctx context.Context) ([]string, error)
}

// Service owns admin day- and slot-blocking.
type Service struct {
	repo Store
	grid *timeslot.Grid
}

func NewService(repo Store, grid *timeslot.Grid) *Service {
	return &Service{repo: repo, grid: grid}
}

// BlockDay closes a whole date to new bookings. Blocking an already-blocked
// date is rejected so the admin sees what actually happened.
func (s *Service) BlockDay(ctx context.Context, adminUID, date string) error {
	if !ValidDate(date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	blocked, err := s.repo.IsDayBlocked(ctx, date)
	if err != nil {
		return err
	}
	if blocked {
		return fmt.Errorf("%w: date %s", ErrAlreadyBlocked, date)
	}
	return s.repo.SetDayBlocked(ctx, date, adminUID)
}

// UnblockDay reopens a date.
func (s *Service) UnblockDay(ctx context.Context, date string) error {
	if !ValidDate(date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	blocked, err := s.repo.IsDayBlocked(ctx, date)
	if err != nil {
		return err
	}
	if !blocked {
		return fmt.Errorf("%w: date %s", ErrNotBlocked, date)
	}
	return s.repo.DeleteDayBlocked(ctx, date)
}

// ListBlockedDays returns all blocked dates, ascending.
func (s *Service) ListBlockedDays(ctx context.Context) ([]string, error) {
	return s.repo.ListBlockedDays(ctx)
}

// BlockRange blocks every grid slot between start and end inclusive on one
// date. Slots already blocked are skipped and reported, not failed.
func (s *Service) BlockRange(ctx context.Context, in RangeInput) (*RangeResult, error) {
	if !ValidDate(in.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	labels, err := s.grid.Range(in.Start, in.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	current, err := s.repo.BlockedTimes(ctx, in.Date)
	if err != nil {
		return nil, err
	}

	res := &RangeResult{Blocked: []string{}, Skipped: []string{}}
	for _, l := range labels {
		if current[l] {
			res.Skipped = append(res.Skipped, l)
		} else {
			res.Blocked = append(res.Blocked, l)
		}
	}
	if len(res.Blocked) == 0 {
		return res, nil
	}

	if err := s.repo.BlockSlots(ctx, in.Date, res.Blocked); err != nil {
		return nil, err
	}
	return res, nil
}

// UnblockSlot clears one blocked (date, time).
func (s *Service) UnblockSlot(ctx context.Context, date, label string) error {
	if !ValidDate(date) {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrBadRequest)
	}
	if !s.grid.Contains(label) {
		return fmt.Errorf("%w: unknown slot %q", ErrBadRequest, label)
	}

	times, err := s.repo.BlockedTimes(ctx, date)
	if err != nil {
		return err
	}
	if !times[label] {
		return fmt.Errorf("%w: slot %s on %s", ErrNotBlocked, label, date)
	}
	return s.repo.UnblockSlot(ctx, date, label)
}

// ListBlockedSlots flattens the blocked-slot map, sorted by date then time.
func (s *Service) ListBlockedSlots(ctx context.Context) ([]BlockedSlot, error) {
	dates, err := s.repo.ListBlockedSlotDates(ctx)
	if err != nil {
		return nil, err
	}

	out := []BlockedSlot{}
	for _, date := range dates {
		times, err := s.repo.BlockedTimes(ctx, date)
		if err != nil {
			return nil, err
		}
		labels := make([]string, 0, len(times))
		for l := range times {
			if times[l] {
				labels = append(labels, l)
			}
		}
		sort.Slice(labels, func(i, j int) bool {
			return timeslot.Before(labels[i], labels[j])
		})
		for _, l := range labels {
			out = append(out, BlockedSlot{Date: date, Time: l})
		}
	}
	return out, nil
}

package booking

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"barber-booking/backend/internal/domain/availability"
	"barber-booking/backend/internal/domain/reservation"
	"barber-booking/backend/internal/domain/schedule"
	"barber-booking/backend/internal/utils"
)

// ReservationStore is the slice of the reservation repo the lifecycle needs.
type ReservationStore interface {
	Create(ctx context.Context, res reservation.Reservation) (string, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*reservation.Reservation, error)
	GetBySlot(ctx context.Context, date, label string) ([]reservation.Reservation, error)
	GetByUserAndDate(ctx context.Context, uid, date string) ([]reservation.Reservation, error)
	ListAll(ctx context.Context) ([]reservation.Reservation, error)
}

// BlockStore is the slice of the schedule repo the lifecycle needs.
type BlockStore interface {
	IsDayBlocked(ctx context.Context, date string) (bool, error)
	BlockedTimes(ctx context.Context, date string) (map[string]bool, error)
	ListBlockedDays(ctx context.Context) ([]string, error)
}

// Requester is the signed-in identity placing a booking.
type Requester struct {
	UID   string
	Name  string
	Phone string
}

// AdminEntry is one reservation as listed to the admin, flagged when it sits
// on a date that was blocked after it was made.
type AdminEntry struct {
	reservation.Reservation
	OnBlockedDay bool `json:"onBlockedDay"`
}

// Service owns the reservation lifecycle. Every mutation re-reads the
// contested records immediately before writing: the streamed snapshots that
// drive the availability views are advisory, the point reads decide.
type Service struct {
	resv   ReservationStore
	blocks BlockStore
	engine *availability.Engine
	now    func() time.Time
	log    *zap.Logger
}

func NewService(resv ReservationStore, blocks BlockStore, engine *availability.Engine, log *zap.Logger) *Service {
	return &Service{resv: resv, blocks: blocks, engine: engine, now: time.Now, log: log}
}

// BookSlot books (date, time) for the requester, replacing any reservation
// the requester already holds on that date. Returns the created reservation
// and whether an earlier one was replaced.
func (s *Service) BookSlot(ctx context.Context, user Requester, in reservation.CreateInput) (*reservation.Reservation, bool, error) {
	in.Trim()
	if user.UID == "" {
		return nil, false, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}
	if user.Phone == "" {
		return nil, false, fmt.Errorf("%w: phone number required before booking", ErrInvalidInput)
	}
	if !schedule.ValidDate(in.Date) {
		return nil, false, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !s.engine.Grid().Contains(in.Time) {
		return nil, false, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, in.Time)
	}

	snap, err := s.readSlotState(ctx, user.UID, in.Date, in.Time)
	if err != nil {
		return nil, false, err
	}

	now := s.now()
	if s.engine.SlotInPast(in.Date, in.Time, now) {
		return nil, false, fmt.Errorf("%w: %s %s", ErrPastSlot, in.Date, in.Time)
	}
	if !s.engine.IsBookable(in.Date, in.Time, user.UID, *snap, now) {
		return nil, false, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, in.Date, in.Time)
	}

	prior := s.engine.UserReservation(user.UID, in.Date, snap.Reservations)
	if prior != nil {
		if err := s.resv.Delete(ctx, prior.ID); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	res := reservation.Reservation{
		UserID:    user.UID,
		Name:      utils.CleanName(user.Name),
		Phone:     user.Phone,
		Date:      in.Date,
		Time:      in.Time,
		CreatedAt: now.UTC(),
		CreatedBy: user.UID,
	}
	id, err := s.resv.Create(ctx, res)
	if err != nil {
		if prior != nil {
			// The old reservation is gone and the new one was not written.
			s.log.Error("booking insert failed after replacing prior reservation",
				zap.String("uid", user.UID),
				zap.String("date", in.Date),
				zap.String("lostSlot", prior.Time),
				zap.Error(err),
			)
			return nil, false, fmt.Errorf("%w: prior reservation at %s was removed", ErrPartialFailure, prior.Time)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	res.ID = id

	s.log.Info("slot booked",
		zap.String("uid", user.UID),
		zap.String("date", in.Date),
		zap.String("time", in.Time),
		zap.Bool("replaced", prior != nil),
	)
	return &res, prior != nil, nil
}

// CancelSlot removes the requester's reservation on date. Cancelling with
// nothing booked is reported, not failed.
func (s *Service) CancelSlot(ctx context.Context, uid, date string) (*reservation.Reservation, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInput)
	}
	if !schedule.ValidDate(date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	matches, err := s.resv.GetByUserAndDate(ctx, uid, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no reservation on %s", ErrNothingToCancel, date)
	}
	if len(matches) > 1 {
		s.log.Error("invariant violation: multiple reservations for user on one date",
			zap.String("uid", uid),
			zap.String("date", date),
			zap.Int("count", len(matches)),
		)
	}

	// Delete every match so duplicate records do not outlive the cancel.
	for _, m := range matches {
		if err := s.resv.Delete(ctx, m.ID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	cancelled := s.engine.UserReservation(uid, date, matches)

	s.log.Info("reservation cancelled",
		zap.String("uid", uid),
		zap.String("date", date),
		zap.String("time", cancelled.Time),
	)
	return cancelled, nil
}

// AdminCreate books a walk-in client directly. The reservation carries no
// user id, so it conflicts with every signed-in requester. The slot must pass
// the full availability decision: not on a blocked day or blocked slot, not
// in the past, and unoccupied — with no replace exemption.
func (s *Service) AdminCreate(ctx context.Context, adminUID string, in reservation.AdminCreateInput) (*reservation.Reservation, error) {
	in.Trim()
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	phone, err := utils.NormalizePhone(in.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !schedule.ValidDate(in.Date) {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if !s.engine.Grid().Contains(in.Time) {
		return nil, fmt.Errorf("%w: unknown slot %q", ErrInvalidInput, in.Time)
	}
	// Walk-ins go through the same fresh reads and decision as a client
	// booking. The empty uid gets no replace exemption, so a blocked day,
	// a blocked slot, or any occupant rejects the slot.
	snap, err := s.readSlotState(ctx, "", in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if s.engine.SlotInPast(in.Date, in.Time, now) {
		return nil, fmt.Errorf("%w: %s %s", ErrPastSlot, in.Date, in.Time)
	}
	if !s.engine.IsBookable(in.Date, in.Time, "", *snap, now) {
		return nil, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, in.Date, in.Time)
	}

	res := reservation.Reservation{
		Name:      utils.CleanName(in.Name),
		Phone:     phone,
		Date:      in.Date,
		Time:      in.Time,
		CreatedAt: now.UTC(),
		CreatedBy: adminUID,
	}
	id, err := s.resv.Create(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	res.ID = id

	s.log.Info("walk-in reservation created",
		zap.String("admin", adminUID),
		zap.String("date", in.Date),
		zap.String("time", in.Time),
	)
	return &res, nil
}

// AdminDelete removes any reservation by id.
func (s *Service) AdminDelete(ctx context.Context, adminUID, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing reservation id", ErrInvalidInput)
	}
	res, err := s.resv.Get(ctx, id)
	if err != nil {
		if reservation.IsErrNotFound(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := s.resv.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.log.Info("reservation deleted by admin",
		zap.String("admin", adminUID),
		zap.String("date", res.Date),
		zap.String("time", res.Time),
	)
	return nil
}

// AdminList returns every reservation ordered by date then time, flagging
// those stranded on dates blocked after they were made.
func (s *Service) AdminList(ctx context.Context) ([]AdminEntry, error) {
	all, err := s.resv.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	days, err := s.blocks.ListBlockedDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	blocked := availability.DaySet{}
	for _, d := range days {
		blocked[d] = true
	}

	out := make([]AdminEntry, 0, len(all))
	for _, res := range all {
		out = append(out, AdminEntry{Reservation: res, OnBlockedDay: blocked[res.Date]})
	}
	return out, nil
}

// readSlotState gathers the fresh point reads a booking decision needs:
// the day block, the date's slot blocks, the slot's occupants, and the
// requester's own reservation on the date.
func (s *Service) readSlotState(ctx context.Context, uid, date, label string) (*availability.Snapshot, error) {
	dayBlocked, err := s.blocks.IsDayBlocked(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	times, err := s.blocks.BlockedTimes(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	occupants, err := s.resv.GetBySlot(ctx, date, label)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	mine, err := s.resv.GetByUserAndDate(ctx, uid, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	seen := map[string]bool{}
	merged := make([]reservation.Reservation, 0, len(occupants)+len(mine))
	for _, res := range append(occupants, mine...) {
		if seen[res.ID] {
			continue
		}
		seen[res.ID] = true
		merged = append(merged, res)
	}

	snap := &availability.Snapshot{
		Reservations: merged,
		BlockedDays:  availability.DaySet{},
		BlockedSlots: availability.SlotMap{date: times},
	}
	if dayBlocked {
		snap.BlockedDays[date] = true
	}
	return snap, nil
}

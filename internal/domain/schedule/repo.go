package schedule

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"barber-booking/backend/internal/domain/availability"
	"barber-booking/backend/internal/store"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) daysCol() *firestore.CollectionRef {
	return r.fs.Collection(store.ColBlockedDays)
}

func (r *Repo) slotsCol() *firestore.CollectionRef {
	return r.fs.Collection(store.ColBlockedSlots)
}

// IsDayBlocked point-reads the block flag for one date.
func (r *Repo) IsDayBlocked(ctx context.Context, date string) (bool, error) {
	doc, err := r.daysCol().Doc(date).Get(ctx)
	if err != nil {
		if store.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read blocked day: %w", err)
	}
	return doc.Exists(), nil
}

// SetDayBlocked writes the day-block record, keyed by date.
func (r *Repo) SetDayBlocked(ctx context.Context, date, by string) error {
	_, err := r.daysCol().Doc(date).Set(ctx, BlockedDay{
		Date:      date,
		BlockedAt: time.Now().UTC(),
		BlockedBy: by,
	})
	if err != nil {
		return fmt.Errorf("failed to block day: %w", err)
	}
	return nil
}

// DeleteDayBlocked removes the day-block record.
func (r *Repo) DeleteDayBlocked(ctx context.Context, date string) error {
	if _, err := r.daysCol().Doc(date).Delete(ctx); err != nil {
		return fmt.Errorf("failed to unblock day: %w", err)
	}
	return nil
}

// ListBlockedDays returns all blocked dates in ascending order.
func (r *Repo) ListBlockedDays(ctx context.Context) ([]string, error) {
	iter := r.daysCol().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []string{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate blocked days: %w", err)
		}
		out = append(out, doc.Ref.ID)
	}
	return out, nil
}

// BlockedTimes point-reads the blocked slot labels for one date.
func (r *Repo) BlockedTimes(ctx context.Context, date string) (map[string]bool, error) {
	doc, err := r.slotsCol().Doc(date).Get(ctx)
	if err != nil {
		if store.NotFound(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("failed to read blocked slots: %w", err)
	}
	var d slotDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to parse blocked slots: %w", err)
	}
	if d.Times == nil {
		d.Times = map[string]bool{}
	}
	return d.Times, nil
}

// BlockSlots merges the given labels into the date's blocked set. One
// administrative action may block a whole contiguous range.
func (r *Repo) BlockSlots(ctx context.Context, date string, labels []string) error {
	times := map[string]bool{}
	for _, l := range labels {
		times[l] = true
	}
	_, err := r.slotsCol().Doc(date).Set(ctx, map[string]any{"times": times}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to block slots: %w", err)
	}
	return nil
}

// ListBlockedSlotDates returns the dates that carry blocked slots, ascending.
func (r *Repo) ListBlockedSlotDates(ctx context.Context) ([]string, error) {
	iter := r.slotsCol().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	out := []string{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate blocked slots: %w", err)
		}
		out = append(out, doc.Ref.ID)
	}
	return out, nil
}

// UnblockSlot clears a single label on a date.
func (r *Repo) UnblockSlot(ctx context.Context, date, label string) error {
	_, err := r.slotsCol().Doc(date).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{"times", label}, Value: firestore.Delete},
	})
	if err != nil {
		if store.NotFound(err) {
			return fmt.Errorf("%w: no blocked slots on %s", ErrNotBlocked, date)
		}
		return fmt.Errorf("failed to unblock slot: %w", err)
	}
	return nil
}

// WatchDays streams full-snapshot replacements of the blocked-day set.
func (r *Repo) WatchDays(ctx context.Context) <-chan availability.DaySet {
	out := make(chan availability.DaySet, 1)
	snaps := r.daysCol().Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			set := availability.DaySet{}
			iter := snap.Documents
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					break
				}
				set[doc.Ref.ID] = true
			}
			iter.Stop()
			select {
			case out <- set:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// WatchSlots streams full-snapshot replacements of the blocked-slot map.
func (r *Repo) WatchSlots(ctx context.Context) <-chan availability.SlotMap {
	out := make(chan availability.SlotMap, 1)
	snaps := r.slotsCol().Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			m := availability.SlotMap{}
			iter := snap.Documents
			for {
				doc, err := iter.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					break
				}
				var d slotDoc
				if err := doc.DataTo(&d); err != nil {
					continue
				}
				if len(d.Times) > 0 {
					m[doc.Ref.ID] = d.Times
				}
			}
			iter.Stop()
			select {
			case out <- m:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

package reservation

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"barber-booking/backend/internal/store"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(store.ColReservations)
}

// Create inserts a reservation under a fresh document id and returns the id.
func (r *Repo) Create(ctx context.Context, res Reservation) (string, error) {
	ref := r.col().NewDoc()
	res.ID = ref.ID

	if _, err := ref.Create(ctx, res); err != nil {
		return "", fmt.Errorf("failed to create reservation: %w", err)
	}
	return res.ID, nil
}

// Delete removes a reservation by id. Deleting an absent id is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// Get retrieves a reservation by id.
func (r *Repo) Get(ctx context.Context, id string) (*Reservation, error) {
	doc, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if store.NotFound(err) {
			return nil, fmt.Errorf("%w: reservation %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read reservation: %w", err)
	}
	var res Reservation
	if err := doc.DataTo(&res); err != nil {
		return nil, fmt.Errorf("failed to parse reservation: %w", err)
	}
	res.ID = doc.Ref.ID
	return &res, nil
}

// GetBySlot returns all reservations occupying (date, time). The data-model
// invariant allows at most one, but the read must not mask duplicates: the
// caller decides how loudly to treat them.
func (r *Repo) GetBySlot(ctx context.Context, date, label string) ([]Reservation, error) {
	q := r.col().Where("date", "==", date).Where("time", "==", label)
	return r.collect(q.Documents(ctx))
}

// GetByUserAndDate returns the user's reservations on date. At most one should
// exist; more than one is an invariant violation surfaced to the caller.
func (r *Repo) GetByUserAndDate(ctx context.Context, uid, date string) ([]Reservation, error) {
	q := r.col().Where("userId", "==", uid).Where("date", "==", date)
	return r.collect(q.Documents(ctx))
}

// ListAll returns every reservation, ordered by date then time.
func (r *Repo) ListAll(ctx context.Context) ([]Reservation, error) {
	q := r.col().OrderBy("date", firestore.Asc).OrderBy("time", firestore.Asc)
	return r.collect(q.Documents(ctx))
}

// ListByDate returns all reservations on date, ordered by time.
func (r *Repo) ListByDate(ctx context.Context, date string) ([]Reservation, error) {
	q := r.col().Where("date", "==", date).OrderBy("time", firestore.Asc)
	return r.collect(q.Documents(ctx))
}

// Watch streams full-snapshot replacements of the reservation collection.
// Each emission is the complete current set; consumers replace, never merge.
// The channel closes when ctx is cancelled or the stream fails.
func (r *Repo) Watch(ctx context.Context) <-chan []Reservation {
	out := make(chan []Reservation, 1)
	snaps := r.col().Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			list, err := r.collect(snap.Documents)
			if err != nil {
				continue
			}
			select {
			case out <- list:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Reservation, error) {
	defer iter.Stop()

	out := []Reservation{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate reservations: %w", err)
		}
		var res Reservation
		if err := doc.DataTo(&res); err != nil {
			continue
		}
		res.ID = doc.Ref.ID
		out = append(out, res)
	}
	return out, nil
}

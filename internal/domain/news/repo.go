package news

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
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
	return r.fs.Collection(store.ColAnnouncements)
}

// Create writes the announcement under a fresh id. The timestamp is assigned
// by the store so ordering does not depend on server clocks.
func (r *Repo) Create(ctx context.Context, a Announcement) (string, error) {
	a.ID = uuid.NewString()
	if _, err := r.col().Doc(a.ID).Create(ctx, a); err != nil {
		return "", fmt.Errorf("failed to create announcement: %w", err)
	}
	return a.ID, nil
}

// Latest returns the most recent announcement.
func (r *Repo) Latest(ctx context.Context) (*Announcement, error) {
	iter := r.col().OrderBy("timestamp", firestore.Desc).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("%w: no announcements", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read announcements: %w", err)
	}
	var a Announcement
	if err := doc.DataTo(&a); err != nil {
		return nil, fmt.Errorf("failed to parse announcement: %w", err)
	}
	a.ID = doc.Ref.ID
	return &a, nil
}

// List returns announcements newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	iter := r.col().OrderBy("timestamp", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	out := []Announcement{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate announcements: %w", err)
		}
		var a Announcement
		if err := doc.DataTo(&a); err != nil {
			continue
		}
		a.ID = doc.Ref.ID
		out = append(out, a)
	}
	return out, nil
}

// WatchLatest streams the newest announcement as it changes. The channel
// closes when ctx is cancelled or the stream fails.
func (r *Repo) WatchLatest(ctx context.Context) <-chan Announcement {
	out := make(chan Announcement, 1)
	snaps := r.col().OrderBy("timestamp", firestore.Desc).Limit(1).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snaps.Stop()
		for {
			snap, err := snaps.Next()
			if err != nil {
				return
			}
			doc, err := snap.Documents.Next()
			snap.Documents.Stop()
			if err != nil {
				continue
			}
			var a Announcement
			if err := doc.DataTo(&a); err != nil {
				continue
			}
			a.ID = doc.Ref.ID
			select {
			case out <- a:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

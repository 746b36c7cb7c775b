package profile

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"barber-booking/backend/internal/store"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) col() *firestore.CollectionRef {
	return r.fs.Collection(store.ColUserProfiles)
}

// Get retrieves a profile by uid.
func (r *Repo) Get(ctx context.Context, uid string) (*UserProfile, error) {
	doc, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if store.NotFound(err) {
			return nil, fmt.Errorf("%w: profile %s", ErrNotFound, uid)
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var p UserProfile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	p.UID = uid
	return &p, nil
}

// Merge upserts the given fields into the profile document.
func (r *Repo) Merge(ctx context.Context, uid string, fields map[string]any) error {
	if _, err := r.col().Doc(uid).Set(ctx, fields, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

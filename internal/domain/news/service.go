package news

import (
	"context"
	"fmt"

	"barber-booking/backend/internal/utils"
)

// maxMessageLen caps announcement length; clients render these inline.
const maxMessageLen = 500

// Store is the slice of the announcement repo the service needs.
type Store interface {
	Create(ctx context.Context, a Announcement) (string, error)
	Latest(ctx context.Context) (*Announcement, error)
	List(ctx context.Context, limit int) ([]Announcement, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Post publishes a new announcement, replacing the previous one in every
// client's banner.
func (s *Service) Post(ctx context.Context, postedBy string, in PostInput) (*Announcement, error) {
	in.Trim()
	if in.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrBadRequest)
	}

	a := Announcement{
		Message:  utils.TrimMax(in.Message, maxMessageLen),
		PostedBy: postedBy,
	}
	id, err := s.store.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return &a, nil
}

// Latest returns the current announcement, or ErrNotFound when none exists.
func (s *Service) Latest(ctx context.Context) (*Announcement, error) {
	return s.store.Latest(ctx)
}

// List returns recent announcements, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Announcement, error) {
	return s.store.List(ctx, limit)
}

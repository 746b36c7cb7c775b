package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"barber-booking/backend/internal/utils"
)

// Store is the slice of the profile repo the service needs.
type Store interface {
	Get(ctx context.Context, uid string) (*UserProfile, error)
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Ensure upserts the profile from the asserted identity on sign-in. The
// stored phone number survives; display name and email track the provider.
func (s *Service) Ensure(ctx context.Context, id Identity) (*UserProfile, error) {
	if id.UID == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}

	now := s.now().UTC()
	fields := map[string]any{
		"uid":         id.UID,
		"displayName": utils.CleanName(id.DisplayName),
		"email":       id.Email,
		"updatedAt":   now,
	}

	existing, err := s.store.Get(ctx, id.UID)
	switch {
	case IsErrNotFound(err):
		fields["createdAt"] = now
	case err != nil:
		return nil, err
	case existing.DisplayName == fields["displayName"] && existing.Email == id.Email:
		return existing, nil
	}

	if err := s.store.Merge(ctx, id.UID, fields); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id.UID)
}

// Profile returns the profile for uid.
func (s *Service) Profile(ctx context.Context, uid string) (*UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	return s.store.Get(ctx, uid)
}

// SavePhone normalizes and stores the caller's mobile number.
func (s *Service) SavePhone(ctx context.Context, uid string, in PhoneInput) (*UserProfile, error) {
	if uid == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrBadRequest)
	}
	in.Trim()
	phone, err := utils.NormalizePhone(in.Phone)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidPhone) {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return nil, err
	}

	err = s.store.Merge(ctx, uid, map[string]any{
		"uid":       uid,
		"phone":     phone,
		"updatedAt": s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return s.store.Get(ctx, uid)
}

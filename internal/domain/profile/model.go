package profile

import (
	"strings"
	"time"
)

// UserProfile is the booking identity record kept alongside Firebase Auth.
// Phone is the canonical local mobile form and is required before booking.
type UserProfile struct {
	UID         string    `firestore:"uid" json:"uid"`
	DisplayName string    `firestore:"displayName" json:"displayName"`
	Email       string    `firestore:"email,omitempty" json:"email,omitempty"`
	Phone       string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// HasPhone reports whether the profile can place bookings.
func (p UserProfile) HasPhone() bool {
	return p.Phone != ""
}

// PhoneInput is the phone update request body.
type PhoneInput struct {
	Phone string `json:"phone"`
}

func (in *PhoneInput) Trim() {
	in.Phone = strings.TrimSpace(in.Phone)
}

// Identity is what the auth token asserts about the caller.
type Identity struct {
	UID         string
	DisplayName string
	Email       string
}

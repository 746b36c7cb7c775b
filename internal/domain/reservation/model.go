package reservation

import (
	"strings"
	"time"
)

// Reservation is one client's claim on one (date, time) slot.
// UserID is empty for walk-ins entered by the admin; those reservations are
// not tied to a signed-in identity and never match a requesting user.
type Reservation struct {
	ID        string    `firestore:"id" json:"id"`
	UserID    string    `firestore:"userId,omitempty" json:"userId,omitempty"`
	Name      string    `firestore:"name" json:"name"`
	Phone     string    `firestore:"phone" json:"phone"`
	Date      string    `firestore:"date" json:"date"` // "YYYY-MM-DD"
	Time      string    `firestore:"time" json:"time"` // "HH:MM" slot label
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	CreatedBy string    `firestore:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// SameSlot reports whether r occupies the given slot.
func (r Reservation) SameSlot(date, label string) bool {
	return r.Date == date && r.Time == label
}

// CreateInput is the client booking request body.
type CreateInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (in *CreateInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
}

// AdminCreateInput is the admin walk-in booking request body.
type AdminCreateInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

func (in *AdminCreateInput) Trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
}

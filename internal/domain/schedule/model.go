package schedule

import (
	"strings"
	"time"
)

// BlockedDay marks a calendar date closed to new bookings. Existing
// reservations on the date are untouched; admin views flag them instead.
type BlockedDay struct {
	Date      string    `firestore:"date" json:"date"`
	BlockedAt time.Time `firestore:"blockedAt" json:"blockedAt"`
	BlockedBy string    `firestore:"blockedBy,omitempty" json:"blockedBy,omitempty"`
}

// slotDoc is the per-date blocked-slot record: slot label -> blocked.
type slotDoc struct {
	Times map[string]bool `firestore:"times"`
}

// BlockedSlot is one (date, time) closure as listed to the admin.
type BlockedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// DayInput addresses a whole-day block or unblock.
type DayInput struct {
	Date string `json:"date"`
}

func (in *DayInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
}

// RangeInput blocks a contiguous slot range on one date, bounds inclusive.
type RangeInput struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func (in *RangeInput) Trim() {
	in.Date = strings.TrimSpace(in.Date)
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
}

// RangeResult reports what a range block actually changed; slots already
// blocked are skipped, mirroring what the admin sees.
type RangeResult struct {
	Blocked []string `json:"blocked"`
	Skipped []string `json:"skipped"`
}

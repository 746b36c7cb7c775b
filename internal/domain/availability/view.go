package availability

import "time"

// Slot statuses as rendered by clients.
const (
	StatusFree    = "free"
	StatusYours   = "yours"
	StatusBooked  = "booked"
	StatusBlocked = "blocked"
	StatusPast    = "past"
)

// SlotView is one grid slot with its decision for a requesting user.
type SlotView struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

// DayView computes the full slot grid decision for one date. Precedence
// follows IsBookable: day/slot blocks win over everything, then the past-time
// rule, then reservations.
func (e *Engine) DayView(date, requestingUID string, snap Snapshot, now time.Time) []SlotView {
	dayBlocked := snap.BlockedDays[date]

	out := make([]SlotView, 0, len(e.grid.Labels()))
	for _, label := range e.grid.Labels() {
		out = append(out, SlotView{
			Time:   label,
			Status: e.slotStatus(date, label, requestingUID, snap, now, dayBlocked),
		})
	}
	return out
}

func (e *Engine) slotStatus(date, label, uid string, snap Snapshot, now time.Time, dayBlocked bool) string {
	if dayBlocked || snap.BlockedSlots.Blocked(date, label) {
		return StatusBlocked
	}
	if e.slotInPast(date, label, now) {
		return StatusPast
	}
	for _, res := range snap.Reservations {
		if !res.SameSlot(date, label) {
			continue
		}
		if res.UserID != "" && res.UserID == uid {
			return StatusYours
		}
		return StatusBooked
	}
	return StatusFree
}

package availability

import "time"

// OfferableDate is a date eligible for presentation as selectable.
type OfferableDate struct {
	Date    string `json:"date"` // "YYYY-MM-DD"
	Weekday string `json:"weekday"`
}

// OfferableDates walks forward from today, skipping closed weekdays and
// blocked days, until count dates are collected or the horizon is exhausted.
// The result is recomputed in full on every call; identical inputs yield
// identical output.
func (e *Engine) OfferableDates(today time.Time, blocked DaySet, count int) []OfferableDate {
	if count <= 0 {
		return []OfferableDate{}
	}

	out := make([]OfferableDate, 0, count)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	for i := 0; i < e.horizon && len(out) < count; i++ {
		d := day.AddDate(0, 0, i)
		if e.closed[d.Weekday()] {
			continue
		}
		key := d.Format("2006-01-02")
		if blocked[key] {
			continue
		}
		out = append(out, OfferableDate{
			Date:    key,
			Weekday: d.Weekday().String()[:3],
		})
	}
	return out
}

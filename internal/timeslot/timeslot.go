package timeslot

import (
	"fmt"
	"regexp"
)

// Slot labels are fixed-width 24-hour "HH:MM" strings. The lexicographic order
// of well-formed labels equals their chronological order, but every component
// that sorts or range-compares slots goes through Minutes so that a single
// comparator owns the rule.

var labelRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Valid reports whether s is a well-formed slot label.
func Valid(s string) bool {
	return labelRegex.MatchString(s)
}

// Minutes converts an "HH:MM" label to minutes from midnight.
func Minutes(label string) (int, error) {
	if !Valid(label) {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}
	var h, m int
	if _, err := fmt.Sscanf(label, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid slot label %q", label)
	}
	return h*60 + m, nil
}

// Label formats minutes from midnight as an "HH:MM" label.
func Label(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Before reports whether label a is chronologically before b.
// Malformed labels sort last.
func Before(a, b string) bool {
	am, aerr := Minutes(a)
	bm, berr := Minutes(b)
	if aerr != nil {
		return false
	}
	if berr != nil {
		return true
	}
	return am < bm
}

// Grid is the ordered list of bookable slot labels for a business day.
type Grid struct {
	labels []string
	index  map[string]int
}

// NewGrid builds the slot list from open to close (inclusive) at step-minute
// granularity. The defaults 09:00-17:30 at 30 minutes yield 18 slots.
func NewGrid(open, close string, stepMinutes int) (*Grid, error) {
	start, err := Minutes(open)
	if err != nil {
		return nil, fmt.Errorf("open time: %w", err)
	}
	end, err := Minutes(close)
	if err != nil {
		return nil, fmt.Errorf("close time: %w", err)
	}
	if stepMinutes <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", stepMinutes)
	}
	if end < start {
		return nil, fmt.Errorf("close %s before open %s", close, open)
	}

	g := &Grid{index: map[string]int{}}
	for m := start; m <= end; m += stepMinutes {
		g.index[Label(m)] = len(g.labels)
		g.labels = append(g.labels, Label(m))
	}
	return g, nil
}

// Labels returns the ordered slot list. Callers must not mutate it.
func (g *Grid) Labels() []string {
	return g.labels
}

// Contains reports whether label is one of the grid's slots.
func (g *Grid) Contains(label string) bool {
	_, ok := g.index[label]
	return ok
}

// Range returns the grid slots between start and end inclusive, in order.
// Both bounds must be grid slots and start must not be after end.
func (g *Grid) Range(start, end string) ([]string, error) {
	si, ok := g.index[start]
	if !ok {
		return nil, fmt.Errorf("unknown slot %q", start)
	}
	ei, ok := g.index[end]
	if !ok {
		return nil, fmt.Errorf("unknown slot %q", end)
	}
	if si > ei {
		return nil, fmt.Errorf("start %s after end %s", start, end)
	}
	out := make([]string, 0, ei-si+1)
	out = append(out, g.labels[si:ei+1]...)
	return out, nil
}

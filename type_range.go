package taxlot

import (
	"fmt"
	"time"
)

// Range represents a half-open time window [From, To). A zero Range matches
// every instant.
type Range struct{ From, To time.Time }

// NewRange creates a new range. If 'from' is after 'to', they are swapped.
func NewRange(from, to time.Time) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// YearRange returns the range covering the whole civil year in UTC.
func YearRange(year int) Range {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Range{From: from, To: from.AddDate(1, 0, 0)}
}

// IsZero reports whether the range is unbounded.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains returns true if t falls within the range. From is included, To is
// excluded, so adjacent yearly ranges never overlap.
func (r Range) Contains(t time.Time) bool {
	if r.IsZero() {
		return true
	}
	return !t.Before(r.From) && t.Before(r.To)
}

// Identifier computes a short unique identifier for the Range, used in
// report headers and export file names.
func (r Range) Identifier() string {
	if r.IsZero() {
		return "all-time"
	}
	if YearRange(r.From.Year()) == r {
		return r.From.Format("2006")
	}
	return fmt.Sprintf("%s_%s", r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
}

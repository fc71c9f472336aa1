package taxlot

import (
	"fmt"
	"time"
)

// longTermThreshold is the holding duration strictly above which a disposal
// qualifies as long-term. A lot disposed exactly 365 days after acquisition
// is still short-term.
const longTermThreshold = 365 * 24 * time.Hour

// HoldingPeriod classifies a disposal by the age of the earliest lot it
// consumed.
type HoldingPeriod int

const (
	// UnknownTerm marks a disposal for which no lot could be matched.
	UnknownTerm HoldingPeriod = iota
	// ShortTerm marks a disposal whose earliest matched lot was held 365 days or less.
	ShortTerm
	// LongTerm marks a disposal whose earliest matched lot was held more than 365 days.
	LongTerm
)

func (h HoldingPeriod) String() string {
	switch h {
	case ShortTerm:
		return "short_term"
	case LongTerm:
		return "long_term"
	default:
		return "unknown"
	}
}

// ParseHoldingPeriod parses a string into a HoldingPeriod.
func ParseHoldingPeriod(s string) (HoldingPeriod, error) {
	switch s {
	case "short_term":
		return ShortTerm, nil
	case "long_term":
		return LongTerm, nil
	case "unknown":
		return UnknownTerm, nil
	default:
		return 0, fmt.Errorf("unknown holding period: %q", s)
	}
}

// holdingPeriodOf classifies a disposal at 'sold' against the acquisition
// time of the earliest lot consumed.
func holdingPeriodOf(acquired, sold time.Time) HoldingPeriod {
	if sold.Sub(acquired) > longTermThreshold {
		return LongTerm
	}
	return ShortTerm
}

// MarshalJSON implements the json.Marshaler interface.
func (h HoldingPeriod) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

func (h *HoldingPeriod) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("holding period must be a JSON string, got %s", s)
	}
	parsed, err := ParseHoldingPeriod(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

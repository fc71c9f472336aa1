package taxlot

import "fmt"

// Direction tells whether a transfer moves an asset into or out of the
// tracked address.
type Direction int

const (
	// In is an incoming transfer, treated as an acquisition.
	In Direction = iota
	// Out is an outgoing transfer, treated as a disposal.
	Out
)

func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return "unknown"
	}
}

// ParseDirection parses a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "in":
		return In, nil
	case "out":
		return Out, nil
	default:
		return 0, fmt.Errorf("unknown direction: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("direction must be a JSON string, got %s", s)
	}
	parsed, err := ParseDirection(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

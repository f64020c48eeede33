package launch

import (
	"bytes"
	"fmt"
)

// Outcome is the tri-state result of a launch.
type Outcome int

const (
	// Pending means the result is not known yet (JSON null).
	Pending Outcome = iota
	// Succeeded is JSON true.
	Succeeded
	// Failed is JSON false.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "pending"
	}
}

// MarshalJSON encodes the outcome as true, false or null.
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case Succeeded:
		return []byte("true"), nil
	case Failed:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false or null.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*o = Succeeded
	case "false":
		*o = Failed
	case "null":
		*o = Pending
	default:
		return fmt.Errorf("launch outcome: want true, false or null, got %s", data)
	}
	return nil
}

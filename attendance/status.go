package attendance

import "fmt"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

// ParseStatus checks raw input against the closed status set. Unknown values
// are rejected here, before anything reaches the store.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPresent, StatusAbsent, StatusLeave:
		return Status(raw), nil
	}
	return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", raw)}
}

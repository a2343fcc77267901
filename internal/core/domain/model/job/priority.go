package job

import (
	"fmt"
	"strconv"

	"scheduler/internal/pkg/errs"
)

// Priority orders due jobs inside one processing tick. Higher runs first.
type Priority int

const (
	PriorityLow     Priority = -10
	PriorityNormal  Priority = 0
	PriorityHigh    Priority = 10
	PriorityHighest Priority = 20
)

// ParsePriority maps an external priority label onto a Priority.
// "urgent" means highest and "medium" means normal; the native labels and
// numeric priorities pass through and an empty label is normal.
func ParsePriority(label string) (Priority, error) {
	switch label {
	case "urgent", "highest":
		return PriorityHighest, nil
	case "high":
		return PriorityHigh, nil
	case "medium", "normal", "":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	default:
		if n, err := strconv.Atoi(label); err == nil {
			return Priority(n), nil
		}
		return PriorityNormal, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("unknown label %q", label))
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityHighest:
		return "highest"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

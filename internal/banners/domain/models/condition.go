package models

import "time"

// ConditionKind enumerates the special conditions this build understands.
type ConditionKind int

const (
	ConditionNone ConditionKind = iota
	ConditionOddMinutes
	ConditionEvenMinutes
	ConditionUnknown
)

const (
	oddMinutesTag  = "odd-minutes"
	evenMinutesTag = "even-minutes"
)

// Condition is an optional predicate restricting a banner by current time.
// Tag keeps the raw value from the record for diagnostics.
type Condition struct {
	Kind ConditionKind
	Tag  string
}

func ParseCondition(tag string) Condition {
	switch tag {
	case "":
		return Condition{Kind: ConditionNone}
	case oddMinutesTag:
		return Condition{Kind: ConditionOddMinutes, Tag: tag}
	case evenMinutesTag:
		return Condition{Kind: ConditionEvenMinutes, Tag: tag}
	default:
		return Condition{Kind: ConditionUnknown, Tag: tag}
	}
}

func (c Condition) Known() bool {
	return c.Kind != ConditionUnknown
}

// Holds evaluates the predicate for t. Minutes are taken in UTC.
// Unknown conditions never hold.
func (c Condition) Holds(t time.Time) bool {
	switch c.Kind {
	case ConditionNone:
		return true
	case ConditionOddMinutes:
		return t.UTC().Minute()%2 == 1
	case ConditionEvenMinutes:
		return t.UTC().Minute()%2 == 0
	default:
		return false
	}
}

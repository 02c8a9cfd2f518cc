package eventbus

import (
	"fmt"
	"strings"
)

// Priority determines the order in which listeners receive an event.
// Listeners with a higher priority receive an event before listeners with a lower priority.
// Listeners with equal priority receive events in the order they were registered.
type Priority int

const (
	Highest Priority = iota
	High
	Normal // Normal is the default priority for listeners.
	Low
	Lowest
)

var priorityNames = [...]string{
	Highest: "highest",
	High:    "high",
	Normal:  "normal",
	Low:     "low",
	Lowest:  "lowest",
}

// Priorities returns all valid priorities, from highest to lowest.
func Priorities() []Priority {
	return []Priority{Highest, High, Normal, Low, Lowest}
}

// Valid reports whether p is one of the five defined priorities.
func (p Priority) Valid() bool {
	return p >= Highest && p <= Lowest
}

// Before reports whether listeners with priority p receive events before listeners with priority other.
func (p Priority) Before(other Priority) bool {
	return p < other
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority parses a priority name, as returned by [Priority.String].
// Comparison is case-insensitive.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for p, name := range priorityNames {
		if name == s {
			return Priority(p), nil
		}
	}
	return Normal, fmt.Errorf("unknown priority '%s'", s)
}

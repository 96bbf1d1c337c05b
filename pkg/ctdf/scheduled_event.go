package ctdf

import (
	"fmt"
	"time"
)

// ScheduledEvent is something planned to happen as Scheduled that may actually happen as Actual,
// eg. an arrival time or a platform.
type ScheduledEvent[T comparable] struct {
	Scheduled T `json:"scheduled" groups:"basic"`
	Actual    T `json:"actual" groups:"basic"`
}

// NewScheduledEvent builds a ScheduledEvent. A missing or zero actual value falls back to the scheduled one.
func NewScheduledEvent[T comparable](scheduled T, actual ...T) ScheduledEvent[T] {
	event := ScheduledEvent[T]{
		Scheduled: scheduled,
		Actual:    scheduled,
	}

	if len(actual) > 0 && !isZero(actual[0]) {
		event.Actual = actual[0]
	}

	return event
}

// Changed reports whether the actual value differs from the scheduled one
func (e ScheduledEvent[T]) Changed() bool {
	return e.Actual != e.Scheduled
}

func (e ScheduledEvent[T]) String() string {
	return fmt.Sprint(e.Actual)
}

// Delay is the difference between the actual and the scheduled time
func Delay(event ScheduledEvent[time.Time]) time.Duration {
	if event.Scheduled.IsZero() || event.Actual.IsZero() {
		return 0
	}

	return event.Actual.Sub(event.Scheduled)
}

func isZero[T comparable](value T) bool {
	if zeroer, ok := any(value).(interface{ IsZero() bool }); ok {
		return zeroer.IsZero()
	}

	var zero T
	return value == zero
}

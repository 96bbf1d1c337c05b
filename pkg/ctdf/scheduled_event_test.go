package ctdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduledEvent(t *testing.T) {
	event := NewScheduledEvent("7")
	assert.Equal(t, "7", event.Scheduled)
	assert.Equal(t, "7", event.Actual)
	assert.False(t, event.Changed())

	event = NewScheduledEvent("7", "9")
	assert.Equal(t, "7", event.Scheduled)
	assert.Equal(t, "9", event.Actual)
	assert.True(t, event.Changed())
	assert.Equal(t, "9", event.String())

	event = NewScheduledEvent("7", "")
	assert.Equal(t, "7", event.Actual)
}

func TestScheduledEventTimes(t *testing.T) {
	scheduled := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	event := NewScheduledEvent(scheduled, time.Time{})
	assert.Equal(t, scheduled, event.Actual)
	assert.Equal(t, time.Duration(0), Delay(event))

	event = NewScheduledEvent(scheduled, scheduled.Add(4*time.Minute))
	assert.True(t, event.Changed())
	assert.Equal(t, 4*time.Minute, Delay(event))

	event = NewScheduledEvent(scheduled, scheduled.Add(-time.Minute))
	assert.Equal(t, -time.Minute, Delay(event))

	assert.Equal(t, time.Duration(0), Delay(ScheduledEvent[time.Time]{Actual: scheduled}))
}

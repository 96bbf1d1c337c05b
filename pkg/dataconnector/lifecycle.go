package dataconnector

import (
	"context"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"
)

const (
	StateIdle    = "idle"
	StateRunning = "running"
	StateStopped = "stopped"

	eventStart = "start"
	eventStop  = "stop"
	// eventFail is fired by the loop itself when a refresh ends it
	eventFail  = "fail"
	eventReset = "reset"
)

func newLifecycle(name string) *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle, StateStopped}, Dst: StateRunning},
			{Name: eventStop, Src: []string{StateRunning}, Dst: StateStopped},
			{Name: eventFail, Src: []string{StateRunning}, Dst: StateStopped},
			{Name: eventReset, Src: []string{StateStopped}, Dst: StateIdle},
		},
		fsm.Callbacks{
			"enter_state": func(ctx context.Context, e *fsm.Event) {
				log.Debug().
					Str("connector", name).
					Str("event", e.Event).
					Str("from", e.Src).
					Str("to", e.Dst).
					Msg("Connector state changed")
			},
		},
	)
}

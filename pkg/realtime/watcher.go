package realtime

import (
	"context"
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/travigo/onboard/pkg/ctdf"
)

// Watcher logs the state of a train every period while its condition holds
type Watcher struct {
	train     ctdf.Train
	period    time.Duration
	condition *vm.Program
	pretty    bool
}

type WatcherOption func(*Watcher) error

// WithCondition only logs snapshots the expression evaluates to true for, eg. `Speed > 50 && Delay > 0`
func WithCondition(condition string) WatcherOption {
	return func(w *Watcher) error {
		if condition == "" {
			return nil
		}

		program, err := expr.Compile(condition, expr.Env(Snapshot{}), expr.AsBool())
		if err != nil {
			return fmt.Errorf("invalid condition: %w", err)
		}

		w.condition = program
		return nil
	}
}

func WithPrettyPrint(enabled bool) WatcherOption {
	return func(w *Watcher) error {
		w.pretty = enabled
		return nil
	}
}

func NewWatcher(train ctdf.Train, period time.Duration, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		train:  train,
		period: period,
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) Matches(snapshot Snapshot) (bool, error) {
	if w.condition == nil {
		return true, nil
	}

	result, err := expr.Run(w.condition, snapshot)
	if err != nil {
		return false, err
	}

	return result.(bool), nil
}

// Run watches until ctx is cancelled
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	for {
		w.check()

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Watcher) check() {
	snapshot, err := TakeSnapshot(w.train)
	if err != nil {
		log.Debug().Err(err).Msg("No vehicle data available")
		return
	}

	matches, err := w.Matches(snapshot)
	if err != nil {
		log.Error().Err(err).Msg("Failed to evaluate condition")
		return
	}
	if !matches {
		return
	}

	if w.pretty {
		pretty.Println(snapshot)
		return
	}

	log.Info().
		Str("id", snapshot.ID).
		Str("train", fmt.Sprintf("%s %s", snapshot.Type, snapshot.Number)).
		Float64("speed", snapshot.SpeedKmh).
		Str("position", snapshot.Position).
		Float64("delay", snapshot.Delay).
		Str("next", snapshot.NextStation).
		Str("destination", snapshot.Destination).
		Msg("Vehicle status")
}

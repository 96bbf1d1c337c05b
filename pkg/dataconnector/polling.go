package dataconnector

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/looplab/fsm"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// DefaultPeriod is the target time between the start of two refresh cycles
const DefaultPeriod = time.Second

// ErrNotRunning is returned when waiting on a connector whose loop is not running
var ErrNotRunning = errors.New("connector is not running")

// Refresher performs one fetch-and-store cycle against the API.
// Returning a ConnectivityError keeps the polling loop alive, any other error ends it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type RefreshFunc func(ctx context.Context) error

func (f RefreshFunc) Refresh(ctx context.Context) error {
	return f(ctx)
}

// PollingDataConnector keeps its cache fresh by running Refresh in a background loop at a fixed cadence
type PollingDataConnector struct {
	*DataConnector

	refresher Refresher
	period    time.Duration

	mutex     sync.Mutex
	lifecycle *fsm.FSM
	stop      chan struct{}
	wg        *conc.WaitGroup

	running   atomic.Bool
	connected atomic.Bool

	errMutex sync.Mutex
	err      error

	// changed is closed and replaced whenever connected or running flips
	changedMutex sync.Mutex
	changed      chan struct{}
}

type PollingOption func(*PollingDataConnector)

func WithPeriod(period time.Duration) PollingOption {
	return func(p *PollingDataConnector) {
		if period > 0 {
			p.period = period
		}
	}
}

func NewPollingDataConnector(connector *DataConnector, refresher Refresher, opts ...PollingOption) *PollingDataConnector {
	p := &PollingDataConnector{
		DataConnector: connector,
		refresher:     refresher,
		period:        DefaultPeriod,
		lifecycle:     newLifecycle(connector.APIURL),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Start begins polling in the background. Calling it on a running connector does nothing.
func (p *PollingDataConnector) Start() {
	p.StartContext(context.Background())
}

// StartContext is Start with a context that is handed to every Refresh.
// Cancelling it ends the loop, Stop does not cancel it.
func (p *PollingDataConnector) StartContext(ctx context.Context) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.running.Load() {
		return
	}

	// A loop that ended by itself has already exited
	if p.wg != nil {
		p.wg.Wait()
		p.wg = nil
	}

	p.setErr(nil)
	p.fire(eventStart)

	stop := make(chan struct{})
	p.stop = stop
	p.running.Store(true)

	p.wg = conc.NewWaitGroup()
	p.wg.Go(func() {
		p.run(ctx, stop)
	})

	log.Info().Str("connector", p.APIURL).Dur("period", p.period).Msg("Started polling data connector")
}

// Stop signals the loop to exit and blocks until it has.
// No refresh runs after Stop returns. The error that ended the loop, if any, is returned.
func (p *PollingDataConnector) Stop() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.wg == nil {
		return nil
	}

	p.running.Store(false)
	p.notify()
	close(p.stop)
	p.stop = nil

	p.wg.Wait()
	p.wg = nil

	p.fire(eventStop)
	ConnectedStatus.WithLabelValues(p.APIURL).Set(0)

	log.Info().Str("connector", p.APIURL).Msg("Stopped polling data connector")

	return p.Err()
}

// Reset stops the connector and discards its cache so it can be reused with Start
func (p *PollingDataConnector) Reset() error {
	err := p.Stop()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.DataConnector.Reset()
	p.connected.Store(false)
	p.setErr(nil)
	p.fire(eventReset)

	return err
}

// Connected reports whether the connector is running and has refreshed successfully at least once
func (p *PollingDataConnector) Connected() bool {
	return p.connected.Load() && p.running.Load()
}

func (p *PollingDataConnector) Running() bool {
	return p.running.Load()
}

// State is one of StateIdle, StateRunning or StateStopped
func (p *PollingDataConnector) State() string {
	return p.lifecycle.Current()
}

func (p *PollingDataConnector) Period() time.Duration {
	return p.period
}

// Err returns the error that ended the loop
func (p *PollingDataConnector) Err() error {
	p.errMutex.Lock()
	defer p.errMutex.Unlock()

	return p.err
}

// WaitConnected blocks until the connector is connected, its loop has ended or ctx is done
func (p *PollingDataConnector) WaitConnected(ctx context.Context) error {
	for {
		// Taken before checking so a change in between still wakes us
		changed := p.changes()

		if p.Connected() {
			return nil
		}

		if !p.Running() {
			if err := p.Err(); err != nil {
				return err
			}
			return ErrNotRunning
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

func (p *PollingDataConnector) changes() <-chan struct{} {
	p.changedMutex.Lock()
	defer p.changedMutex.Unlock()

	if p.changed == nil {
		p.changed = make(chan struct{})
	}

	return p.changed
}

// notify wakes every WaitConnected call
func (p *PollingDataConnector) notify() {
	p.changedMutex.Lock()
	defer p.changedMutex.Unlock()

	if p.changed != nil {
		close(p.changed)
		p.changed = nil
	}
}

func (p *PollingDataConnector) run(ctx context.Context, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			p.finish(nil)
			return
		default:
		}

		// The target time for the next refresh after this one
		target := time.Now().Add(p.period)

		if err := p.refresh(ctx); err != nil {
			if IsConnectivityError(err) {
				if p.connected.Swap(false) {
					ConnectedStatus.WithLabelValues(p.APIURL).Set(0)
				}
				log.Error().Err(err).Str("connector", p.APIURL).Msg("Failed to reach API")
				continue
			}

			p.finish(err)
			return
		}

		if !p.connected.Swap(true) {
			p.notify()
			log.Info().Str("connector", p.APIURL).Msg("Connected to API")
		}
		ConnectedStatus.WithLabelValues(p.APIURL).Set(1)

		waitTime := time.Until(target)
		if waitTime <= 0 {
			continue
		}

		timer := time.NewTimer(waitTime)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			p.finish(nil)
			return
		case <-timer.C:
		}
	}
}

func (p *PollingDataConnector) refresh(ctx context.Context) (err error) {
	startTime := time.Now()

	var catcher panics.Catcher
	catcher.Try(func() {
		err = p.refresher.Refresh(ctx)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		err = recovered.AsError()
	}

	RefreshDuration.WithLabelValues(p.APIURL).Observe(time.Since(startTime).Seconds())

	switch {
	case err == nil:
		RefreshTotal.WithLabelValues(p.APIURL, refreshResultSuccess).Inc()
	case IsConnectivityError(err):
		RefreshTotal.WithLabelValues(p.APIURL, refreshResultConnectivityError).Inc()
	default:
		RefreshTotal.WithLabelValues(p.APIURL, refreshResultFailure).Inc()
	}

	return err
}

// finish is called by the loop when it ends without being stopped
func (p *PollingDataConnector) finish(err error) {
	p.setErr(err)
	p.running.Store(false)
	p.notify()
	p.fire(eventFail)
	ConnectedStatus.WithLabelValues(p.APIURL).Set(0)

	if err != nil {
		log.Error().Err(err).Str("connector", p.APIURL).Msg("Refresh failed, stopping polling data connector")
	} else {
		log.Info().Str("connector", p.APIURL).Msg("Context done, stopping polling data connector")
	}
}

func (p *PollingDataConnector) fire(event string) {
	if !p.lifecycle.Can(event) {
		return
	}

	if err := p.lifecycle.Event(context.Background(), event); err != nil {
		log.Debug().Err(err).Str("connector", p.APIURL).Str("event", event).Msg("Ignored lifecycle event")
	}
}

func (p *PollingDataConnector) setErr(err error) {
	p.errMutex.Lock()
	defer p.errMutex.Unlock()

	p.err = err
}

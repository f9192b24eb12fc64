// Package monitor polls an idle checker and classifies the system as
// active or idle against a configured threshold, fanning state changes
// out to subscribers.
package monitor

import (
	"errors"
	"sync"
	"time"

	"idlewatch/internal/core/model"
	"idlewatch/internal/idle"
)

// IdleChecker reports the duration of user inactivity.
type IdleChecker interface {
	IdleDuration() (time.Duration, error)
}

// Options contains runtime options independent of user settings.
type Options struct {
	// Now is the clock used for event timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Monitor is a polling state machine over an IdleChecker.
type Monitor struct {
	mu            sync.Mutex
	config        model.MonitorConfig
	options       Options
	state         State
	previousState State
	checker       IdleChecker
	checksEnabled bool
	events        []chan Event
	stopCh        chan struct{}
	running       bool
	paused        bool
}

// New creates a Monitor with the provided configuration.
func New(config model.MonitorConfig, options Options) *Monitor {
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.IdleAfter <= 0 {
		config.IdleAfter = 5 * time.Minute
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &Monitor{
		config:        config,
		options:       options,
		state:         StateActive,
		previousState: StateActive,
		checksEnabled: true,
		stopCh:        make(chan struct{}),
	}
}

// SetIdleChecker injects the idle checker to poll.
func (mon *Monitor) SetIdleChecker(checker IdleChecker) {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	mon.checker = checker
	mon.checksEnabled = checker != nil
}

// Subscribe registers a new observer channel. Events are dropped for
// observers that fall behind rather than blocking the poll loop.
func (mon *Monitor) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	mon.mu.Lock()
	mon.events = append(mon.events, ch)
	mon.mu.Unlock()
	return ch
}

// State returns the current classification.
func (mon *Monitor) State() State {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	return mon.state
}

// Start launches the polling loop.
func (mon *Monitor) Start() {
	mon.mu.Lock()
	if mon.running {
		mon.mu.Unlock()
		return
	}
	mon.running = true
	mon.paused = false
	mon.state = StateActive
	mon.previousState = StateActive
	mon.mu.Unlock()

	mon.emit(Event{
		Type:  EventStateChange,
		State: StateActive,
		At:    mon.options.Now(),
	})

	go mon.run()
}

// Stop terminates the polling loop and closes observer channels.
func (mon *Monitor) Stop() {
	mon.mu.Lock()
	if !mon.running {
		mon.mu.Unlock()
		return
	}
	close(mon.stopCh)
	mon.running = false
	events := mon.events
	mon.events = nil
	mon.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Pause suspends polling without releasing the checker.
func (mon *Monitor) Pause() {
	mon.mu.Lock()
	if mon.paused {
		mon.mu.Unlock()
		return
	}
	mon.paused = true
	mon.previousState = mon.state
	mon.state = StatePaused
	mon.mu.Unlock()

	mon.emit(Event{
		Type:  EventStateChange,
		State: StatePaused,
		At:    mon.options.Now(),
	})
}

// Resume restarts polling after a Pause.
func (mon *Monitor) Resume() {
	mon.mu.Lock()
	if !mon.paused {
		mon.mu.Unlock()
		return
	}
	mon.paused = false
	mon.state = mon.previousState
	currentState := mon.state
	mon.mu.Unlock()

	mon.emit(Event{
		Type:  EventStateChange,
		State: currentState,
		At:    mon.options.Now(),
	})
}

// UpdateConfig replaces the poll interval and idle threshold at runtime.
// The new interval takes effect on the next tick.
func (mon *Monitor) UpdateConfig(config model.MonitorConfig) {
	mon.mu.Lock()
	if config.PollInterval <= 0 {
		config.PollInterval = mon.config.PollInterval
	}
	if config.IdleAfter <= 0 {
		config.IdleAfter = mon.config.IdleAfter
	}
	mon.config = config
	mon.mu.Unlock()
}

// NotifyWake re-baselines after a system sleep: the machine is treated
// as active until the next poll says otherwise.
func (mon *Monitor) NotifyWake() {
	mon.mu.Lock()
	if !mon.running || mon.paused {
		mon.mu.Unlock()
		return
	}
	mon.state = StateActive
	mon.checksEnabled = mon.checker != nil
	mon.emitLocked(Event{
		Type:  EventWakeReset,
		State: mon.state,
		At:    mon.options.Now(),
	})
	mon.mu.Unlock()
}

func (mon *Monitor) run() {
	for {
		mon.mu.Lock()
		interval := mon.config.PollInterval
		mon.mu.Unlock()

		select {
		case <-mon.stopCh:
			return
		case <-time.After(interval):
			mon.poll()
		}
	}
}

func (mon *Monitor) poll() {
	mon.mu.Lock()
	defer mon.mu.Unlock()

	if !mon.running || mon.paused || !mon.checksEnabled || mon.checker == nil {
		return
	}
	now := mon.options.Now()

	idleFor, err := mon.checker.IdleDuration()
	if err != nil {
		if errors.Is(err, idle.ErrUnsupported) {
			// No point re-polling a platform that can never answer.
			mon.checksEnabled = false
		}
		mon.emitLocked(Event{
			Type:    EventQueryError,
			State:   mon.state,
			Message: err.Error(),
			At:      now,
		})
		return
	}

	next := StateActive
	if idleFor >= mon.config.IdleAfter {
		next = StateIdle
	}

	if next != mon.state {
		mon.state = next
		mon.emitLocked(Event{
			Type:    EventStateChange,
			State:   next,
			IdleFor: idleFor,
			At:      now,
		})
	}

	mon.emitLocked(Event{
		Type:    EventSample,
		State:   mon.state,
		IdleFor: idleFor,
		At:      now,
	})
}

func (mon *Monitor) emit(event Event) {
	mon.mu.Lock()
	defer mon.mu.Unlock()
	mon.emitLocked(event)
}

func (mon *Monitor) emitLocked(event Event) {
	events := append([]chan Event(nil), mon.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}

package monitor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idlewatch/internal/core/model"
	"idlewatch/internal/idle"
)

type fakeChecker struct {
	mu       sync.Mutex
	duration time.Duration
	err      error
}

func (checker *fakeChecker) IdleDuration() (time.Duration, error) {
	checker.mu.Lock()
	defer checker.mu.Unlock()
	return checker.duration, checker.err
}

func (checker *fakeChecker) set(duration time.Duration, err error) {
	checker.mu.Lock()
	checker.duration = duration
	checker.err = err
	checker.mu.Unlock()
}

func newTestMonitor(checker IdleChecker) *Monitor {
	mon := New(model.MonitorConfig{
		PollInterval: 10 * time.Millisecond,
		IdleAfter:    100 * time.Millisecond,
	}, Options{})
	mon.SetIdleChecker(checker)
	return mon
}

func waitForEvent(t *testing.T, events <-chan Event, match func(Event) bool) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				t.Fatal("event channel closed before expected event")
			}
			if match(event) {
				return event
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestMonitorTransitionsActiveIdleActive(t *testing.T) {
	checker := &fakeChecker{duration: 0}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	checker.set(time.Second, nil)
	change := waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State == StateIdle
	})
	assert.GreaterOrEqual(t, change.IdleFor, 100*time.Millisecond)
	assert.Equal(t, StateIdle, mon.State())

	checker.set(0, nil)
	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State == StateActive
	})
	assert.Equal(t, StateActive, mon.State())
}

func TestMonitorEmitsSamples(t *testing.T) {
	checker := &fakeChecker{duration: 42 * time.Millisecond}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	sample := waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventSample
	})
	assert.Equal(t, StateActive, sample.State)
	assert.Equal(t, 42*time.Millisecond, sample.IdleFor)
}

func TestMonitorSurvivesQueryErrors(t *testing.T) {
	checker := &fakeChecker{err: idle.ErrUnavailable}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventQueryError
	})

	// A transient failure must not kill the loop: once the checker
	// recovers, samples flow again.
	checker.set(time.Second, nil)
	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State == StateIdle
	})
}

func TestMonitorDisablesChecksWhenUnsupported(t *testing.T) {
	checker := &fakeChecker{err: idle.ErrUnsupported}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventQueryError
	})

	// Further polls are skipped even if the checker would now succeed.
	checker.set(time.Second, nil)
	select {
	case event := <-events:
		assert.NotEqual(t, EventSample, event.Type)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestMonitorPauseAndResume(t *testing.T) {
	checker := &fakeChecker{duration: time.Second}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	mon.Pause()
	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State == StatePaused
	})
	assert.Equal(t, StatePaused, mon.State())

	mon.Resume()
	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State != StatePaused
	})
}

func TestMonitorNotifyWakeResetsToActive(t *testing.T) {
	checker := &fakeChecker{duration: time.Second}
	mon := newTestMonitor(checker)
	events := mon.Subscribe(32)

	mon.Start()
	defer mon.Stop()

	waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventStateChange && event.State == StateIdle
	})

	checker.set(0, nil)
	mon.NotifyWake()
	wake := waitForEvent(t, events, func(event Event) bool {
		return event.Type == EventWakeReset
	})
	assert.Equal(t, StateActive, wake.State)
}

func TestMonitorStopClosesSubscribers(t *testing.T) {
	mon := newTestMonitor(&fakeChecker{})
	events := mon.Subscribe(1)

	mon.Start()
	mon.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel was not closed on Stop")
		}
	}
}

func TestMonitorDefaultsGuardZeroConfig(t *testing.T) {
	mon := New(model.MonitorConfig{}, Options{})
	require.NotNil(t, mon)
	assert.Equal(t, StateActive, mon.State())

	// Starting with a zero config must not spin a hot loop; the guarded
	// defaults kick in and Stop still terminates cleanly.
	mon.Start()
	mon.Stop()
}

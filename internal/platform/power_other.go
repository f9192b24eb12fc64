//go:build !darwin || !cgo

package platform

type unsupportedPowerWatcher struct {
	events chan PowerEvent
}

func newPowerWatcher() PowerWatcher {
	return &unsupportedPowerWatcher{events: make(chan PowerEvent)}
}

func (watcher *unsupportedPowerWatcher) Start() error {
	return ErrPowerEventsUnsupported
}

func (watcher *unsupportedPowerWatcher) Events() <-chan PowerEvent {
	return watcher.events
}

func (watcher *unsupportedPowerWatcher) Stop() {}

//go:build darwin && cgo

package platform

import "C"

//export idlewatchPowerCallback
func idlewatchPowerCallback(eventType C.int) {
	activeWatcherMu.Lock()
	watcher := activeWatcher
	activeWatcherMu.Unlock()
	if watcher == nil {
		return
	}
	if eventType == 0 {
		watcher.deliver(PowerSleep)
	} else {
		watcher.deliver(PowerWake)
	}
}

//go:build darwin && cgo

package platform

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation

#include <IOKit/pwr_mgt/IOPMLib.h>
#include <IOKit/IOMessage.h>
#include <CoreFoundation/CoreFoundation.h>

extern void idlewatchPowerCallback(int eventType);

static io_connect_t powerRootPort;
static IONotificationPortRef powerNotifyPort;
static io_object_t powerNotifier;
static CFRunLoopRef powerRunLoop;

static void powerCallbackC(void *refCon, io_service_t service, natural_t messageType, void *messageArgument) {
	switch (messageType) {
	case kIOMessageCanSystemSleep:
		IOAllowPowerChange(powerRootPort, (long)messageArgument);
		break;
	case kIOMessageSystemWillSleep:
		idlewatchPowerCallback(0);
		IOAllowPowerChange(powerRootPort, (long)messageArgument);
		break;
	case kIOMessageSystemHasPoweredOn:
		idlewatchPowerCallback(1);
		break;
	}
}

static int registerPowerNotifications(void) {
	powerRootPort = IORegisterForSystemPower(NULL, &powerNotifyPort, powerCallbackC, &powerNotifier);
	if (powerRootPort == 0) {
		return -1;
	}
	powerRunLoop = CFRunLoopGetCurrent();
	CFRunLoopAddSource(powerRunLoop, IONotificationPortGetRunLoopSource(powerNotifyPort), kCFRunLoopDefaultMode);
	return 0;
}

static void runPowerLoop(void) {
	CFRunLoopRun();
}

static void stopPowerLoop(void) {
	if (powerRunLoop != NULL) {
		CFRunLoopStop(powerRunLoop);
	}
}

static void deregisterPowerNotifications(void) {
	if (powerRunLoop != NULL && powerNotifyPort != NULL) {
		CFRunLoopRemoveSource(powerRunLoop, IONotificationPortGetRunLoopSource(powerNotifyPort), kCFRunLoopDefaultMode);
	}
	if (powerNotifier != 0) {
		IODeregisterForSystemPower(&powerNotifier);
	}
	if (powerNotifyPort != NULL) {
		IONotificationPortDestroy(powerNotifyPort);
	}
	if (powerRootPort != 0) {
		IOServiceClose(powerRootPort);
	}
	powerRunLoop = NULL;
	powerNotifier = 0;
	powerNotifyPort = NULL;
	powerRootPort = 0;
}
*/
import "C"

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

// The IOKit callback carries no context pointer back into Go, so a
// single active watcher is tracked at package level.
var (
	activeWatcherMu sync.Mutex
	activeWatcher   *darwinPowerWatcher
)

type darwinPowerWatcher struct {
	mu      sync.Mutex
	events  chan PowerEvent
	started bool
	stopped bool
}

func newPowerWatcher() PowerWatcher {
	return &darwinPowerWatcher{events: make(chan PowerEvent, 4)}
}

func (watcher *darwinPowerWatcher) Start() error {
	watcher.mu.Lock()
	if watcher.started {
		watcher.mu.Unlock()
		return errors.New("power watcher already started")
	}
	watcher.started = true
	watcher.mu.Unlock()

	activeWatcherMu.Lock()
	if activeWatcher != nil {
		activeWatcherMu.Unlock()
		return errors.New("another power watcher is active in this process")
	}
	activeWatcher = watcher
	activeWatcherMu.Unlock()

	registered := make(chan error, 1)
	go func() {
		// IORegisterForSystemPower binds the notification source to the
		// current thread's run loop; registration and CFRunLoopRun must
		// happen on the same OS thread.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if C.registerPowerNotifications() != 0 {
			registered <- errors.New("IORegisterForSystemPower failed")
			return
		}
		registered <- nil

		C.runPowerLoop()
		C.deregisterPowerNotifications()
	}()

	if err := <-registered; err != nil {
		activeWatcherMu.Lock()
		activeWatcher = nil
		activeWatcherMu.Unlock()
		return err
	}
	return nil
}

func (watcher *darwinPowerWatcher) Events() <-chan PowerEvent {
	return watcher.events
}

func (watcher *darwinPowerWatcher) Stop() {
	watcher.mu.Lock()
	if !watcher.started || watcher.stopped {
		watcher.mu.Unlock()
		return
	}
	watcher.stopped = true
	watcher.mu.Unlock()

	C.stopPowerLoop()

	activeWatcherMu.Lock()
	if activeWatcher == watcher {
		activeWatcher = nil
	}
	activeWatcherMu.Unlock()
}

func (watcher *darwinPowerWatcher) deliver(eventType PowerEventType) {
	watcher.mu.Lock()
	stopped := watcher.stopped
	watcher.mu.Unlock()
	if stopped {
		return
	}
	select {
	case watcher.events <- PowerEvent{Type: eventType, At: time.Now()}:
	default:
	}
}

// Package tray shows the daemon state in the system tray.
package tray

import (
	"sync"

	"fyne.io/systray"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnTogglePause func(paused bool)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	mu         sync.Mutex
	statusItem *systray.MenuItem
	pauseItem  *systray.MenuItem
	quitItem   *systray.MenuItem
	callbacks  Callbacks
	paused     bool
}

// Run starts the tray loop and blocks until Quit. onReady receives the
// Manager once the tray is available; status updates go through it.
func Run(callbacks Callbacks, onReady func(*Manager)) {
	systray.Run(func() {
		systray.SetTitle("idlewatch")
		systray.SetTooltip("idlewatch — system idle monitor")

		manager := &Manager{callbacks: callbacks}

		manager.statusItem = systray.AddMenuItem("Status: starting...", "Current activity state")
		manager.statusItem.Disable()
		systray.AddSeparator()
		manager.pauseItem = systray.AddMenuItem("Pause monitoring", "Suspend idle polling")
		manager.quitItem = systray.AddMenuItem("Quit", "Stop idlewatch")

		go manager.loop()
		onReady(manager)
	}, func() {})
}

// Quit tears the tray down and unblocks Run.
func Quit() {
	systray.Quit()
}

// SetStatus updates the disabled status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.SetTitle("Status: " + status)
}

// SetPaused flips the pause menu label.
func (manager *Manager) SetPaused(paused bool) {
	manager.mu.Lock()
	manager.paused = paused
	manager.mu.Unlock()
	if paused {
		manager.pauseItem.SetTitle("Resume monitoring")
	} else {
		manager.pauseItem.SetTitle("Pause monitoring")
	}
}

func (manager *Manager) togglePause() bool {
	manager.mu.Lock()
	paused := !manager.paused
	manager.mu.Unlock()
	manager.SetPaused(paused)
	return paused
}

func (manager *Manager) loop() {
	for {
		select {
		case <-manager.pauseItem.ClickedCh:
			paused := manager.togglePause()
			if manager.callbacks.OnTogglePause != nil {
				manager.callbacks.OnTogglePause(paused)
			}
		case <-manager.quitItem.ClickedCh:
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}

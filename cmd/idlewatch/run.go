package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"idlewatch/internal/core/monitor"
	"idlewatch/internal/idle"
	"idlewatch/internal/logging"
	"idlewatch/internal/platform"
	"idlewatch/internal/settings"
	"idlewatch/internal/storage"
	"idlewatch/internal/ui/tray"
)

func newRunCommand() *cobra.Command {
	run := &cobra.Command{
		Use:   "run",
		Short: "Run the idle monitoring daemon",
		RunE:  runDaemon,
	}
	run.Flags().Bool("tray", false, "show a system tray status item")
	return run
}

func runDaemon(cmd *cobra.Command, args []string) error {
	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	loaded, err := storage.LoadSettings(appName)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("tray") {
		loaded.Tray, _ = cmd.Flags().GetBool("tray")
	}

	logger, err := logging.New(loaded.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	handle, err := idle.Acquire(loaded.IdleConfig())
	if err != nil {
		return fmt.Errorf("idle source: %w", err)
	}
	defer func() {
		_ = handle.Close()
	}()

	signalCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(signalCtx)
	defer cancel()

	mon := monitor.New(loaded.MonitorConfig(), monitor.Options{})
	mon.SetIdleChecker(handle)
	events := mon.Subscribe(16)

	power := platform.NewPowerWatcher()
	if err := power.Start(); err != nil {
		if errors.Is(err, platform.ErrPowerEventsUnsupported) {
			logger.Info("sleep/wake notifications not available on this platform")
		} else {
			logger.Warn("power watcher failed to start", zap.Error(err))
		}
	} else {
		defer power.Stop()
	}

	var updates <-chan settings.Settings
	if configPath, pathErr := storage.SettingsPath(appName); pathErr == nil {
		// The watcher sits on the parent directory, so a settings file
		// created after startup is picked up too; the directory just has
		// to exist before the watch is placed.
		if mkErr := os.MkdirAll(filepath.Dir(configPath), 0o755); mkErr != nil {
			logger.Warn("settings watcher unavailable", zap.Error(mkErr))
		} else if updates, err = storage.WatchSettingsFile(ctx, configPath); err != nil {
			logger.Warn("settings watcher unavailable", zap.Error(err))
		}
	}

	mon.Start()
	defer mon.Stop()

	logger.Info("daemon started",
		zap.Duration("poll_interval", loaded.PollInterval),
		zap.Duration("idle_after", loaded.IdleAfter),
		zap.Bool("tray", loaded.Tray),
	)

	deps := daemonDeps{
		logger:  logger,
		monitor: mon,
		events:  events,
		power:   power.Events(),
		updates: updates,
	}

	if loaded.Tray {
		tray.Run(tray.Callbacks{
			OnTogglePause: func(paused bool) {
				if paused {
					mon.Pause()
				} else {
					mon.Resume()
				}
			},
			OnQuit: cancel,
		}, func(manager *tray.Manager) {
			deps.tray = manager
			go func() {
				eventLoop(ctx, deps)
				tray.Quit()
			}()
		})
		return nil
	}

	eventLoop(ctx, deps)
	return nil
}

type daemonDeps struct {
	logger  *zap.Logger
	monitor *monitor.Monitor
	events  <-chan monitor.Event
	power   <-chan platform.PowerEvent
	updates <-chan settings.Settings
	tray    *tray.Manager
}

func eventLoop(ctx context.Context, deps daemonDeps) {
	for {
		select {
		case <-ctx.Done():
			deps.logger.Info("shutting down")
			return

		case event, ok := <-deps.events:
			if !ok {
				return
			}
			handleMonitorEvent(deps, event)

		case powerEvent := <-deps.power:
			deps.logger.Info("power event", zap.String("type", string(powerEvent.Type)))
			if powerEvent.Type == platform.PowerWake {
				deps.monitor.NotifyWake()
			}

		case reloaded, ok := <-deps.updates:
			if !ok {
				deps.updates = nil
				continue
			}
			deps.monitor.UpdateConfig(reloaded.MonitorConfig())
			deps.logger.Info("settings reloaded",
				zap.Duration("poll_interval", reloaded.PollInterval),
				zap.Duration("idle_after", reloaded.IdleAfter),
			)
		}
	}
}

func handleMonitorEvent(deps daemonDeps, event monitor.Event) {
	switch event.Type {
	case monitor.EventStateChange:
		deps.logger.Info("state changed",
			zap.String("state", string(event.State)),
			zap.Duration("idle_for", event.IdleFor),
		)
		if deps.tray != nil {
			deps.tray.SetStatus(string(event.State))
			deps.tray.SetPaused(event.State == monitor.StatePaused)
		}

	case monitor.EventSample:
		deps.logger.Debug("idle sample",
			zap.String("state", string(event.State)),
			zap.Duration("idle_for", event.IdleFor),
		)
		if deps.tray != nil {
			deps.tray.SetStatus(fmt.Sprintf("%s (idle %s)", event.State, event.IdleFor.Truncate(time.Second)))
		}

	case monitor.EventQueryError:
		deps.logger.Warn("idle query failed", zap.String("reason", event.Message))

	case monitor.EventWakeReset:
		deps.logger.Info("re-baselined after wake")
	}
}

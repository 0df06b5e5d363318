package main

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"pomodoro/internal/cli"
	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Pomodoro"

func main() {
	if err := cli.NewRootCommand(appName, run).Execute(); err != nil {
		log.Error().Err(err).Msg("pomodoro")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if showErr := platform.RequestShow(appName); showErr != nil {
				log.Warn().Err(showErr).Msg("notify running instance")
			}
			log.Info().Msg("pomodoro is already running")
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, closeStore, err := cli.OpenStore(appName, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	prefs, err := storage.LoadSettings(appName)
	if err != nil {
		log.Warn().Err(err).Msg("load settings, using defaults")
	}

	keeper := timekeeper.New(prefs.Session, timekeeper.Config{
		Store:       store,
		SaveTimeout: cfg.Store.SaveTimeout,
	})
	defer keeper.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	keeper.Restore(ctx)
	cancel()
	prefs.Session = keeper.Snapshot().Config

	var soundEnabled atomic.Bool
	soundEnabled.Store(prefs.SoundEnabled)
	saveSettings := func() {
		if err := storage.SaveSettings(appName, prefs); err != nil {
			log.Warn().Err(err).Msg("save settings")
		}
	}

	fyneApp := app.NewWithID("com.pomodoro.app")
	fyneApp.SetIcon(resources.AppIcon())

	controls := sessionControls{
		keeper:  keeper,
		session: func() model.SessionConfig { return prefs.Session },
	}

	var timerWindow *timer.Window
	prefsWindow := preferences.New(fyneApp, prefs, func(updated model.Preferences) {
		prefs = updated
		soundEnabled.Store(updated.SoundEnabled)
		timerWindow.SetSoundEnabled(updated.SoundEnabled)
		keeper.UpdateConfig(updated.Session)
		saveSettings()
	})

	timerWindow = timer.New(fyneApp, prefs.SoundEnabled, timer.Callbacks{
		OnStart:  controls.start,
		OnPause:  keeper.Pause,
		OnReset:  keeper.Reset,
		OnToggle: controls.toggle,
		OnSettings: func() {
			prefsWindow.UpdatePreferences(prefs)
			prefsWindow.Show()
		},
		OnToggleSound: func(enabled bool) {
			prefs.SoundEnabled = enabled
			soundEnabled.Store(enabled)
			saveSettings()
		},
	})
	keeper.SetView(timerWindow)

	quit := func() {
		closeThenQuit(keeper.Close, func() {
			fyne.Do(fyneApp.Quit)
		})
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        timerWindow.Show,
			OnTogglePause: controls.toggle,
			OnReset:       keeper.Reset,
			OnPreferences: func() {
				prefsWindow.UpdatePreferences(prefs)
				prefsWindow.Show()
			},
			OnQuit: quit,
		})
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	} else {
		log.Info().Msg("system tray unsupported on this platform")
		timerWindow.Window().SetMaster()
	}

	guard.Serve(func() {
		fyne.Do(timerWindow.Show)
	})

	events := keeper.Subscribe(16)
	go watchEvents(fyneApp, events, keeper.Snapshot().Phase, &soundEnabled, timerWindow, trayManager)

	timerWindow.Show()
	fyneApp.Run()
	return nil
}

func watchEvents(fyneApp fyne.App, events <-chan timekeeper.Event, lastPhase timekeeper.Phase, soundEnabled *atomic.Bool, timerWindow *timer.Window, trayManager *tray.Manager) {
	for event := range events {
		snapshot := event.Snapshot
		if status, ok := trayStatus(event); ok && trayManager != nil {
			fyne.Do(func() {
				trayManager.SetStatus(status)
				trayManager.SetRunning(snapshot.Running, snapshot.Phase == timekeeper.PhaseIdle)
			})
		}

		switch event.Type {
		case timekeeper.EventComplete:
			timerWindow.Celebrate()
			if soundEnabled.Load() {
				fyneApp.SendNotification(fyne.NewNotification("Pomodoro", completionMessage(event.Cycles)))
			}
		case timekeeper.EventStateChange:
			if snapshot.Phase != lastPhase && snapshot.Running && soundEnabled.Load() {
				if message := phaseMessage(snapshot.Phase); message != "" {
					fyneApp.SendNotification(fyne.NewNotification("Pomodoro", message))
				}
			}
		}
		lastPhase = snapshot.Phase
	}
}

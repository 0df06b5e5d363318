package timer

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/celebrate"
)

// Callbacks defines timer window action handlers.
type Callbacks struct {
	OnStart       func()
	OnPause       func()
	OnReset       func()
	OnToggle      func()
	OnSettings    func()
	OnToggleSound func(enabled bool)
}

// Window manages the main timer UI.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	timerLabel   *canvas.Text
	phaseLabel   *canvas.Text
	cycleLabel   *widget.Label
	startButton  *widget.Button
	pauseButton  *widget.Button
	settingsBtn  *widget.Button
	soundButton  *widget.Button
	soundEnabled bool
	celebration  *celebrate.Engine
	last         timekeeper.Snapshot
}

// New creates the timer window.
func New(app fyne.App, soundEnabled bool, callbacks Callbacks) *Window {
	window := app.NewWindow("Pomodoro")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerLabel := canvas.NewText("--:--", idleColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 56

	phaseLabel := canvas.NewText(timekeeper.PhaseIdle.Label(), idleColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 18

	cycleLabel := widget.NewLabelWithStyle("Cycle 0 / 0", fyne.TextAlignCenter, fyne.TextStyle{})

	timerWindow := &Window{
		window:       window,
		callbacks:    callbacks,
		timerLabel:   timerLabel,
		phaseLabel:   phaseLabel,
		cycleLabel:   cycleLabel,
		soundEnabled: soundEnabled,
	}

	timerWindow.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if timerWindow.callbacks.OnStart != nil {
			timerWindow.callbacks.OnStart()
		}
	})
	timerWindow.startButton.Importance = widget.HighImportance
	timerWindow.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), func() {
		if timerWindow.callbacks.OnPause != nil {
			timerWindow.callbacks.OnPause()
		}
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if timerWindow.callbacks.OnReset != nil {
			timerWindow.callbacks.OnReset()
		}
	})
	timerWindow.settingsBtn = widget.NewButtonWithIcon("Settings", theme.SettingsIcon(), func() {
		if timerWindow.callbacks.OnSettings != nil {
			timerWindow.callbacks.OnSettings()
		}
	})
	timerWindow.soundButton = widget.NewButton("", timerWindow.toggleSound)
	timerWindow.refreshSoundButton()

	timerWindow.celebration = celebrate.New(celebrate.DefaultConfig(), func(frame celebrate.Frame) {
		fyne.Do(func() {
			timerWindow.phaseLabel.Text = frame.Text
			timerWindow.phaseLabel.Color = frame.Color
			timerWindow.phaseLabel.Refresh()
		})
	})
	timerWindow.celebration.SetOnFinish(func() {
		fyne.Do(func() {
			timerWindow.apply(timerWindow.last)
		})
	})

	controls := container.NewHBox(
		layout.NewSpacer(),
		timerWindow.startButton,
		timerWindow.pauseButton,
		resetButton,
		layout.NewSpacer(),
	)
	footer := container.NewHBox(timerWindow.soundButton, layout.NewSpacer(), timerWindow.settingsBtn)

	content := container.NewVBox(
		phaseLabel,
		timerLabel,
		cycleLabel,
		controls,
		widget.NewSeparator(),
		footer,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(360, 300))

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeySpace && timerWindow.callbacks.OnToggle != nil {
			timerWindow.callbacks.OnToggle()
		}
	})

	return timerWindow
}

// Render implements timekeeper.View.
func (timerWindow *Window) Render(snapshot timekeeper.Snapshot) {
	fyne.Do(func() {
		timerWindow.apply(snapshot)
	})
}

// Celebrate plays the session-complete animation.
func (timerWindow *Window) Celebrate() {
	timerWindow.celebration.Play(context.Background())
}

// Show displays the timer window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Window exposes the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// SetSoundEnabled updates the sound toggle without firing callbacks.
func (timerWindow *Window) SetSoundEnabled(enabled bool) {
	timerWindow.soundEnabled = enabled
	timerWindow.refreshSoundButton()
}

func (timerWindow *Window) apply(snapshot timekeeper.Snapshot) {
	if snapshot.Phase != timekeeper.PhaseIdle || snapshot.Running {
		timerWindow.celebration.Stop()
	}
	timerWindow.last = snapshot

	accent := PhaseColor(snapshot.Phase)
	timerWindow.timerLabel.Text = timekeeper.FormatRemaining(snapshot.Remaining)
	timerWindow.timerLabel.Color = accent
	timerWindow.timerLabel.Refresh()

	timerWindow.phaseLabel.Text = snapshot.Phase.Label()
	timerWindow.phaseLabel.Color = accent
	timerWindow.phaseLabel.Refresh()

	timerWindow.cycleLabel.SetText(fmt.Sprintf("Cycle %d / %d", snapshot.Completed, snapshot.Config.TotalCycles))

	if snapshot.Running {
		timerWindow.startButton.Disable()
		timerWindow.pauseButton.Enable()
	} else {
		timerWindow.startButton.Enable()
		timerWindow.pauseButton.Disable()
	}
	if snapshot.Phase == timekeeper.PhaseIdle {
		timerWindow.startButton.SetText("Start")
		timerWindow.settingsBtn.Enable()
	} else {
		timerWindow.startButton.SetText("Resume")
		timerWindow.settingsBtn.Disable()
	}
}

func (timerWindow *Window) toggleSound() {
	timerWindow.soundEnabled = !timerWindow.soundEnabled
	timerWindow.refreshSoundButton()
	if timerWindow.callbacks.OnToggleSound != nil {
		timerWindow.callbacks.OnToggleSound(timerWindow.soundEnabled)
	}
}

func (timerWindow *Window) refreshSoundButton() {
	if timerWindow.soundEnabled {
		timerWindow.soundButton.SetText("Sound On")
		timerWindow.soundButton.SetIcon(theme.VolumeUpIcon())
	} else {
		timerWindow.soundButton.SetText("Sound Off")
		timerWindow.soundButton.SetIcon(theme.VolumeMuteIcon())
	}
}

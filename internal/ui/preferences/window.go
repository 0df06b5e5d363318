package preferences

import (
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the session settings UI.
type Window struct {
	window    fyne.Window
	prefs     model.Preferences
	onSave    func(model.Preferences)
	cycles    *widget.Entry
	work      *widget.Entry
	short     *widget.Entry
	long      *widget.Entry
	soundTick *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, prefs model.Preferences, onSave func(model.Preferences)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefsWindow := &Window{
		window:    window,
		onSave:    onSave,
		cycles:    widget.NewEntry(),
		work:      widget.NewEntry(),
		short:     widget.NewEntry(),
		long:      widget.NewEntry(),
		soundTick: widget.NewCheck("Notify when a phase ends", nil),
	}
	prefsWindow.UpdatePreferences(prefs)

	form := widget.NewForm(
		widget.NewFormItem("Cycles", prefsWindow.cycles),
		widget.NewFormItem("Pomodoro (min)", prefsWindow.work),
		widget.NewFormItem("Break (min)", prefsWindow.short),
		widget.NewFormItem("Long break (min)", prefsWindow.long),
	)

	saveButton := widget.NewButton("Save", prefsWindow.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, container.NewVBox(form, prefsWindow.soundTick))
	window.SetContent(content)
	window.Resize(fyne.NewSize(340, 260))
	window.SetCloseIntercept(window.Hide)

	return prefsWindow
}

// Show displays the preferences window.
func (prefsWindow *Window) Show() {
	prefsWindow.window.Show()
	prefsWindow.window.RequestFocus()
}

// UpdatePreferences replaces window values.
func (prefsWindow *Window) UpdatePreferences(prefs model.Preferences) {
	prefsWindow.prefs = prefs
	session := prefs.Session.Normalize()
	prefsWindow.cycles.SetText(strconv.Itoa(session.TotalCycles))
	prefsWindow.work.SetText(minutesText(session.Work))
	prefsWindow.short.SetText(minutesText(session.ShortBreak))
	prefsWindow.long.SetText(minutesText(session.LongBreak))
	prefsWindow.soundTick.SetChecked(prefs.SoundEnabled)
}

func (prefsWindow *Window) handleSave() {
	prefs := prefsWindow.prefs
	prefs.Session = model.ParseSessionConfig(
		prefsWindow.cycles.Text,
		prefsWindow.work.Text,
		prefsWindow.short.Text,
		prefsWindow.long.Text,
	)
	prefs.SoundEnabled = prefsWindow.soundTick.Checked

	// Show the values that were actually applied.
	prefsWindow.UpdatePreferences(prefs)
	if prefsWindow.onSave != nil {
		prefsWindow.onSave(prefs)
	}
	prefsWindow.window.Hide()
}

func minutesText(duration time.Duration) string {
	minutes := int(duration / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return strconv.Itoa(minutes)
}

package resources

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed icon.svg
var iconSVG []byte

var appIcon = fyne.NewStaticResource("pomodoro.svg", iconSVG)

// AppIcon returns the application and tray icon.
func AppIcon() fyne.Resource {
	return appIcon
}

package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Cycles         int   `yaml:"cycles"`
	PomodoroLength int   `yaml:"pomodoro_length"`
	BreakTime      int   `yaml:"break_time"`
	LongBreak      int   `yaml:"long_break"`
	SoundEnabled   *bool `yaml:"sound_enabled,omitempty"`
}

// LoadSettings reads user preferences for appName.
// If the settings file does not exist, default preferences are returned.
func LoadSettings(appName string) (model.Preferences, error) {
	settingsPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return model.DefaultPreferences(), err
	}
	return LoadSettingsFile(settingsPath)
}

// SaveSettings writes user preferences for appName.
func SaveSettings(appName string, prefs model.Preferences) error {
	settingsPath, err := resolveConfigPath(appName, settingsFileName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(settingsPath, prefs)
}

// LoadSettingsFile reads user preferences from a YAML file.
func LoadSettingsFile(path string) (model.Preferences, error) {
	prefs := model.DefaultPreferences()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, errors.Wrap(err, "read settings file")
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return prefs, errors.Wrap(err, "parse settings yaml")
	}

	applyYamlSettings(&prefs, fileData)
	return prefs, nil
}

// SaveSettingsFile writes user preferences to a YAML file.
func SaveSettingsFile(path string, prefs model.Preferences) error {
	session := prefs.Session.Normalize()
	soundEnabled := prefs.SoundEnabled
	fileData := yamlSettings{
		Cycles:         session.TotalCycles,
		PomodoroLength: toMinutes(session.Work),
		BreakTime:      toMinutes(session.ShortBreak),
		LongBreak:      toMinutes(session.LongBreak),
		SoundEnabled:   &soundEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return errors.Wrap(err, "marshal settings yaml")
	}
	return writeFileAtomic(path, serialized)
}

func resolveConfigPath(appName, fileName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve user config dir")
	}
	return filepath.Join(configDir, appName, fileName), nil
}

func applyYamlSettings(prefs *model.Preferences, fileData yamlSettings) {
	if fileData.Cycles > 0 {
		prefs.Session.TotalCycles = fileData.Cycles
	}
	if fileData.PomodoroLength > 0 {
		prefs.Session.Work = time.Duration(fileData.PomodoroLength) * time.Minute
	}
	if fileData.BreakTime > 0 {
		prefs.Session.ShortBreak = time.Duration(fileData.BreakTime) * time.Minute
	}
	if fileData.LongBreak > 0 {
		prefs.Session.LongBreak = time.Duration(fileData.LongBreak) * time.Minute
	}
	if fileData.SoundEnabled != nil {
		prefs.SoundEnabled = *fileData.SoundEnabled
	}
}

package model

// Preferences defines editable user preferences.
type Preferences struct {
	Session      SessionConfig
	SoundEnabled bool
}

// DefaultPreferences returns default preferences.
func DefaultPreferences() Preferences {
	return Preferences{
		Session:      DefaultSessionConfig(),
		SoundEnabled: true,
	}
}

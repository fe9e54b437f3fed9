package models

// LegacyDailyLog is the single-record shape stored before the history array
// existed. It only ever described the current day.
type LegacyDailyLog struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Cost  float64 `json:"cost"`
}

// MigrateLegacy converts the legacy single-day record into a history.
func MigrateLegacy(legacy LegacyDailyLog) History {
	return History{{
		Date:  legacy.Date,
		Count: legacy.Count,
		Cost:  legacy.Cost,
	}}
}

// PersistedSettings is Settings as found on disk: older builds stored a
// boolean isLightMode instead of the theme name.
type PersistedSettings struct {
	Settings
	IsLightMode *bool `json:"isLightMode,omitempty"`
}

// MigrateLegacyTheme replaces the isLightMode flag with the equivalent theme.
// The second result reports whether a conversion happened.
func MigrateLegacyTheme(p PersistedSettings) (Settings, bool) {
	s := p.Settings
	if p.IsLightMode == nil {
		return s, false
	}
	if *p.IsLightMode {
		s.Theme = ThemeLight
	} else {
		s.Theme = ThemeDark
	}
	return s, true
}

package models

import "github.com/spf13/cast"

const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

type Settings struct {
	Currency     string  `json:"currency"`
	PricePerPack float64 `json:"pricePerPack"`
	CigsPerPack  int     `json:"cigsPerPack"`
	BaselineCigs int     `json:"baselineCigs"`
	Theme        string  `json:"theme"`
}

func DefaultSettings() Settings {
	return Settings{
		Currency:     "$",
		PricePerPack: 10.00,
		CigsPerPack:  20,
		BaselineCigs: 20,
		Theme:        ThemeSystem,
	}
}

// PricePerEvent is the price of a single cigarette.
func (s Settings) PricePerEvent() float64 {
	if s.CigsPerPack <= 0 {
		return 0
	}
	return s.PricePerPack / float64(s.CigsPerPack)
}

// Valid reports whether persisted settings can be used for cost arithmetic.
func (s Settings) Valid() bool {
	if s.PricePerPack < 0 || s.CigsPerPack <= 0 || s.BaselineCigs < 0 {
		return false
	}
	switch s.Theme {
	case ThemeSystem, ThemeLight, ThemeDark:
		return true
	}
	return false
}

// SettingsInput carries raw, unparsed settings as typed into a form or passed
// as command flags. Empty currency and theme fall back to "$" and "system".
type SettingsInput struct {
	Currency     string `json:"currency"`
	PricePerPack string `json:"pricePerPack"`
	CigsPerPack  string `json:"cigsPerPack"`
	BaselineCigs string `json:"baselineCigs"`
	Theme        string `json:"theme"`
}

// InputFromSettings renders s back into the raw form representation.
func InputFromSettings(s Settings) SettingsInput {
	return SettingsInput{
		Currency:     s.Currency,
		PricePerPack: cast.ToString(s.PricePerPack),
		CigsPerPack:  cast.ToString(s.CigsPerPack),
		BaselineCigs: cast.ToString(s.BaselineCigs),
		Theme:        s.Theme,
	}
}

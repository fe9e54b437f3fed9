package services

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
	"math"
	"smokeless/internal/models"
	"strings"
)

var ErrInvalidSettings = errors.New("invalid settings")

// SettingsError names the first rejected field of a settings update.
type SettingsError struct {
	Field  string
	Reason string
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *SettingsError) Unwrap() error {
	return ErrInvalidSettings
}

type settingsForm struct {
	PricePerPack float64 `json:"pricePerPack" validate:"min:0" message:"price must not be negative"`
	CigsPerPack  int     `json:"cigsPerPack" validate:"required|min:1" message:"pack size must be greater than zero"`
	BaselineCigs int     `json:"baselineCigs" validate:"min:0" message:"baseline must not be negative"`
	Theme        string  `json:"theme" validate:"required|in:system,light,dark" message:"theme must be system, light or dark"`
}

// Report order when several fields are wrong, matching the form layout.
var settingsFieldOrder = []string{"pricePerPack", "cigsPerPack", "baselineCigs", "theme"}

var settingsFieldAliases = map[string]string{
	"PricePerPack": "pricePerPack",
	"CigsPerPack":  "cigsPerPack",
	"BaselineCigs": "baselineCigs",
	"Theme":        "theme",
}

// ParseSettings converts raw form input into Settings.
func ParseSettings(in models.SettingsInput) (models.Settings, error) {
	price, err := parseNumber("pricePerPack", in.PricePerPack, false)
	if err != nil {
		return models.Settings{}, err
	}
	size, err := parseNumber("cigsPerPack", in.CigsPerPack, true)
	if err != nil {
		return models.Settings{}, err
	}
	baseline, err := parseNumber("baselineCigs", in.BaselineCigs, true)
	if err != nil {
		return models.Settings{}, err
	}

	form := settingsForm{
		PricePerPack: price,
		CigsPerPack:  int(size),
		BaselineCigs: int(baseline),
		Theme:        strings.ToLower(strings.TrimSpace(in.Theme)),
	}
	if form.Theme == "" {
		form.Theme = models.ThemeSystem
	}

	v := validate.Struct(&form)
	v.StopOnError = false
	if !v.Validate() {
		return models.Settings{}, firstSettingsError(v.Errors)
	}

	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = "$"
	}

	return models.Settings{
		Currency:     currency,
		PricePerPack: form.PricePerPack,
		CigsPerPack:  form.CigsPerPack,
		BaselineCigs: form.BaselineCigs,
		Theme:        form.Theme,
	}, nil
}

func parseNumber(field, raw string, whole bool) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &SettingsError{Field: field, Reason: "is required"}
	}
	n, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &SettingsError{Field: field, Reason: "must be a number"}
	}
	if !whole {
		return n, nil
	}
	if n != math.Trunc(n) {
		return 0, &SettingsError{Field: field, Reason: "must be a whole number"}
	}
	if n > math.MaxInt32 {
		return 0, &SettingsError{Field: field, Reason: "is too large"}
	}
	// keeps the int conversion defined; validation still reports the sign
	return max(n, math.MinInt32), nil
}

func firstSettingsError(errs validate.Errors) error {
	failed := make(map[string]string, len(errs))
	for field, messages := range errs {
		if alias, ok := settingsFieldAliases[field]; ok {
			field = alias
		}
		for _, msg := range messages {
			failed[field] = msg
			break
		}
	}
	for _, field := range settingsFieldOrder {
		if msg, ok := failed[field]; ok {
			return &SettingsError{Field: field, Reason: msg}
		}
	}
	return &SettingsError{Field: "settings", Reason: errs.One()}
}

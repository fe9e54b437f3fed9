package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateLegacy_SingleRecord(t *testing.T) {
	h := MigrateLegacy(LegacyDailyLog{Date: "2024-01-01", Count: 3, Cost: 1.50})
	require.Len(t, h, 1)
	assert.Equal(t, DailyRecord{Date: "2024-01-01", Count: 3, Cost: 1.50}, h[0])
}

func TestMigrateLegacyTheme_LightFlag(t *testing.T) {
	var p PersistedSettings
	require.NoError(t, json.Unmarshal([]byte(`{"currency":"$","pricePerPack":10,"cigsPerPack":20,"isLightMode":true}`), &p))

	s, migrated := MigrateLegacyTheme(p)
	assert.True(t, migrated)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, 20, s.CigsPerPack)
}

func TestMigrateLegacyTheme_DarkFlag(t *testing.T) {
	off := false
	s, migrated := MigrateLegacyTheme(PersistedSettings{Settings: DefaultSettings(), IsLightMode: &off})
	assert.True(t, migrated)
	assert.Equal(t, ThemeDark, s.Theme)
}

func TestMigrateLegacyTheme_NoFlag(t *testing.T) {
	in := DefaultSettings()
	in.Theme = ThemeDark
	s, migrated := MigrateLegacyTheme(PersistedSettings{Settings: in})
	assert.False(t, migrated)
	assert.Equal(t, in, s)
}

package main

import (
	"bytes"
	"smokeless/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		" yes ": true,
		"n\n":   false,
		"\n":    false,
		"":      false,
		"maybe": false,
	}
	for input, want := range cases {
		var out bytes.Buffer
		got := confirm(strings.NewReader(input), &out, "sure? ")
		assert.Equal(t, want, got, "input %q", input)
		assert.Equal(t, "sure? ", out.String())
	}
}

func TestRootCommand_Wiring(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"today", "smoke", "stats", "health", "settings", "reset", "watch", "serve"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, settingsSetCmd.Flags().Lookup("price"))
	assert.NotNil(t, resetCmd.Flags().Lookup("yes"))
	assert.Equal(t, "./config.yaml", rootCmd.PersistentFlags().Lookup("config").DefValue)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SMOKELESS_HOME", home)
	t.Chdir(home)

	out, err := execute(t, "smoke")
	require.NoError(t, err)
	assert.Contains(t, out, "1 cigs")

	out, err = execute(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "11m")

	out, err = execute(t, "settings", "set", "--currency", "€", "--price", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "€12.00")

	// flag values stick to the command between executions
	out, err = execute(t, "settings", "set", "--size", "0")
	require.Error(t, err)
	assert.Contains(t, out, "cigsPerPack")

	_, err = execute(t, "reset")
	assert.ErrorIs(t, err, services.ErrResetNotConfirmed)

	_, err = execute(t, "reset", "--yes")
	require.NoError(t, err)
	resetConfirmed = false

	out, err = execute(t, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "0 cigs")
	assert.Contains(t, out, "$0.00")
}

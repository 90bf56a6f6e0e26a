package main

import "testing"

// withConfig swaps the package config for the duration of a test.
func withConfig(t *testing.T, edit func(c *Config)) {
	t.Helper()
	saved := config
	t.Cleanup(func() { config = saved })
	config.Seed = 42
	config.StatsEnabled = true
	config.PNGPath = ""
	config.Duration = 0
	if edit != nil {
		edit(&config)
	}
}

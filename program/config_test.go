package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateAndNormalizeConfig(t *testing.T) {
	withConfig(t, func(c *Config) {
		c.ViewSplit = 95
		c.StatsWindow = 2
		c.Seed = 0
	})
	require.NoError(t, validateAndNormalizeConfig())
	require.Equal(t, 80, config.ViewSplit)
	require.Equal(t, 16, config.StatsWindow)
	require.NotZero(t, config.Seed)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(c *Config){
		"width":         func(c *Config) { c.Width = 1 },
		"height":        func(c *Config) { c.Height = 9 },
		"tick":          func(c *Config) { c.Tick = 0 },
		"feed-interval": func(c *Config) { c.FeedInterval = -time.Second },
		"feed-lines":    func(c *Config) { c.FeedLines = 0 },
		"rank-k":        func(c *Config) { c.RankK = 0 },
		"rank-window":   func(c *Config) { c.RankWindow = 0 },
		"duration":      func(c *Config) { c.Duration = -1 },
		"png-scale":     func(c *Config) { c.PNGScale = 0 },
	}
	for name, edit := range cases {
		t.Run(name, func(t *testing.T) {
			withConfig(t, edit)
			require.ErrorContains(t, validateAndNormalizeConfig(), "-"+name)
		})
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	withConfig(t, nil)
	t.Chdir(t.TempDir())
	t.Setenv("HEARTBEAT_TICK", "20ms")
	t.Setenv("HEARTBEAT_WIDTH", "120")
	t.Setenv("HEARTBEAT_SEED", "7")
	t.Setenv("HEARTBEAT_LOG_FILE", "/tmp/heartbeat.log")

	require.NoError(t, loadEnvDefaults())
	require.Equal(t, 20*time.Millisecond, config.Tick)
	require.Equal(t, 120, config.Width)
	require.EqualValues(t, 7, config.Seed)
	require.Equal(t, "/tmp/heartbeat.log", config.LogFile)
}

func TestLoadEnvDefaultsRejectsGarbage(t *testing.T) {
	withConfig(t, nil)
	t.Chdir(t.TempDir())
	t.Setenv("HEARTBEAT_FEED_INTERVAL", "soon")
	require.ErrorContains(t, loadEnvDefaults(), "HEARTBEAT_FEED_INTERVAL")
}

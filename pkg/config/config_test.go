package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, "datasets", c.DatasetsDir)
	assert.Equal(t, 5, c.MaxGoals)
	assert.Equal(t, 30*time.Second, c.HTTPTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty datasets dir", func(c *Config) { c.DatasetsDir = "" }},
		{"negative max goals", func(c *Config) { c.MaxGoals = -1 }},
		{"huge max goals", func(c *Config) { c.MaxGoals = 21 }},
		{"negative top", func(c *Config) { c.TopN = -5 }},
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"bad url", func(c *Config) { c.FootballDataURL = "not a url" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FOOTSTATS_DATASETS_DIR", "/data/leagues")
	t.Setenv("FOOTSTATS_MAX_GOALS", "8")
	t.Setenv("FOOTSTATS_HTTP_TIMEOUT", "5s")
	t.Setenv("FOOTSTATS_TOP_N", "10")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/leagues", c.DatasetsDir)
	assert.Equal(t, 8, c.MaxGoals)
	assert.Equal(t, 5*time.Second, c.HTTPTimeout)
	assert.Equal(t, 10, c.TopN)
	// untouched fields keep their defaults
	assert.Equal(t, "footstats.db", c.DbPath)
	assert.Equal(t, Default().FootballDataURL, c.FootballDataURL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("FOOTSTATS_MAX_GOALS", "99")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("FOOTSTATS_MAX_GOALS", "lots")
	_, err = Load()
	assert.Error(t, err)
}

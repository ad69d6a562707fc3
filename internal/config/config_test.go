package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	t.Setenv("CRICPIX_API_URL", "http://chat.example.com:9090")
	t.Setenv("CRICPIX_DEBUG", "true")
	t.Setenv("CRICPIX_HTTP_TIMEOUT", "10s")
	t.Setenv("CRICPIX_SIMILARITY_THRESHOLD", "0.6")
	t.Setenv("CRICPIX_LOG_FILE", "/tmp/cricpix.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://chat.example.com:9090", cfg.APIURL)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.6, cfg.SimilarityThreshold)
	assert.Equal(t, "/tmp/cricpix.log", cfg.LogFile)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.APIURL)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.4, cfg.SimilarityThreshold)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_ThresholdOutOfRange(t *testing.T) {
	t.Setenv("CRICPIX_SIMILARITY_THRESHOLD", "1.5")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

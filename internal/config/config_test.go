package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-budget-console/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("ENV", "")

	c := config.New()
	require.Equal(t, ":8001", c.GetPort())
	require.Equal(t, "http://localhost:8001/api", c.GetAPIBaseURL())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.Equal(t, "/login", c.GetLoginRoute())
	require.Equal(t, "/dashboard", c.GetDefaultRoute())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", ":9000")
	t.Setenv("API_BASE_URL", "https://budget.example.com/api/")
	t.Setenv("FOLDER", "/tmp/budget")

	c := config.New()
	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, "https://budget.example.com/api", c.GetAPIBaseURL())
	require.Equal(t, filepath.Join("/tmp/budget", "session.json"), c.GetSessionFile())
}

func TestAllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	origins := config.New().GetAllowedOrigins()
	require.True(t, origins.IsAllowedOrigin("https://a.example.com"))
	require.True(t, origins.IsAllowedOrigin("https://b.example.com"))
	require.False(t, origins.IsAllowedOrigin("*"))
}

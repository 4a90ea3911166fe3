package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "pos", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.False(t, cfg.GinReleaseMode)
	assert.Equal(t, 7, cfg.DashboardRevenueDays)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GIN_RELEASE_MODE", "true")
	t.Setenv("DASHBOARD_REVENUE_DAYS", "14")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.GinReleaseMode)
	assert.Equal(t, 14, cfg.DashboardRevenueDays)
}

func TestGetenvBoolParsing(t *testing.T) {
	t.Setenv("FLAG", "on")
	assert.True(t, getenvBool("FLAG", false))

	t.Setenv("FLAG", "0")
	assert.False(t, getenvBool("FLAG", true))

	t.Setenv("FLAG", "maybe")
	assert.True(t, getenvBool("FLAG", true))
}

func TestGetenvIntParsing(t *testing.T) {
	t.Setenv("COUNT", "12")
	assert.Equal(t, 12, getenvInt("COUNT", 7))

	t.Setenv("COUNT", "twelve")
	assert.Equal(t, 7, getenvInt("COUNT", 7))
}

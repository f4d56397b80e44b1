package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "farmacia-api", cfg.App.Name)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 28, cfg.Alerts.WindowDays)
	assert.Equal(t, 4, cfg.Alerts.WeeksInWindow)
	assert.Equal(t, 60*time.Second, cfg.MUV.Timeout)
	assert.False(t, cfg.MUV.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("MUV_BASE_URL", "https://muv.example.test/")
	t.Setenv("ALERTS_WINDOW_DAYS", "14")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, "https://muv.example.test", cfg.MUV.BaseURL)
	assert.True(t, cfg.MUV.Enabled())
	assert.Equal(t, 14, cfg.Alerts.WindowDays)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnteroInvalidoUsaDefecto(t *testing.T) {
	t.Setenv("HTTP_PORT", "no-es-numero")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "farmacia", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/farmacia?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestValidate_SecretObligatorioEnProduccion(t *testing.T) {
	cfg := fromViper(viper.New())
	require.NoError(t, cfg.Validate(), "development permite secret vacío")

	cfg.App.Env = "production"
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWT.Secret = "x"
	cfg.DB.MinConns = 50
	assert.ErrorContains(t, cfg.Validate(), "DB_MIN_CONNS")
}

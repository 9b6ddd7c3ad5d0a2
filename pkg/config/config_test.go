package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "0 6 * * *", cfg.Cartera.ReviewCron)
	assert.Equal(t, "America/Bogota", cfg.Cartera.Timezone)
	assert.Equal(t, 30, cfg.Cartera.RecordatorioDias)
	assert.Equal(t, "comprobantes", cfg.MinIO.Bucket)
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, 1, cfg.DB.MinConns)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("CARTERA_REVIEW_CRON", "30 5 * * *")
	t.Setenv("RECORDATORIO_DIAS", "15")
	t.Setenv("SMTP_HOST", "smtp.agencia.co")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("ADMIN_EMAIL", "admin@agencia.co")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "30 5 * * *", cfg.Cartera.ReviewCron)
	assert.Equal(t, 15, cfg.Cartera.RecordatorioDias)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "admin@agencia.co", cfg.Mail.AdminEmail)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoad_PoolInvalido(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ZonaHorariaInvalida(t *testing.T) {
	t.Setenv("CARTERA_TIMEZONE", "Marte/Olympus")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "seguros", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/seguros?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

package postgres

import (
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/internal/domain"
	"github.com/assecol/seguros-api/pkg/config"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert cuotas: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_cuotas_poliza_numero"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("conexión cerrada")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}

func TestEnvolver_IDMalFormadoEsEntradaInvalida(t *testing.T) {
	// invalid input syntax for type uuid: "abc"
	err := envolver("get poliza", &pgconn.PgError{Code: "22P02"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "get poliza")
}

func TestEnvolver_TraduceViolaciones(t *testing.T) {
	assert.ErrorIs(t, envolver("insert poliza", &pgconn.PgError{Code: "23505"}), domain.ErrDuplicate)
	assert.ErrorIs(t, envolver("insert poliza", &pgconn.PgError{Code: "23503"}), domain.ErrInvalidInput)

	otro := errors.New("conexión cerrada")
	err := envolver("list polizas", otro)
	assert.ErrorIs(t, err, otro)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSinFilas_IDMalFormadoNoExiste(t *testing.T) {
	assert.True(t, sinFilas(pgx.ErrNoRows))
	assert.True(t, sinFilas(fmt.Errorf("scan: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, sinFilas(&pgconn.PgError{Code: "23505"}))
}

func TestMigraciones_PagoDeCuotaSeBorraConLaCuota(t *testing.T) {
	sql, err := migrationsFS.ReadFile("migrations/001_esquema.sql")
	require.NoError(t, err)

	// Si la cuota desaparece, su pago no puede quedar con cuota_id NULL: se leería como registro
	// de comisión y chocaría con uq_pagos_registro_comision.
	cuotaID := regexp.MustCompile(`(?m)^\s*cuota_id\s+UUID REFERENCES cuotas\(id\) ON DELETE (\w+(?: \w+)?),`)
	m := cuotaID.FindSubmatch(sql)
	require.NotNil(t, m, "pagos.cuota_id debe referenciar cuotas")
	assert.Equal(t, "CASCADE", string(m[1]))
}

func TestMigraciones_PolizaExigeCompania(t *testing.T) {
	sql, err := migrationsFS.ReadFile("migrations/001_esquema.sql")
	require.NoError(t, err)
	assert.Regexp(t, `compania_aseguradora_id\s+UUID NOT NULL REFERENCES companias_aseguradoras\(id\)`, string(sql))
}

func TestPoolConfig_TamanoYParametros(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "app", Password: "secreto",
		DBName: "seguros", SSLMode: "disable", MaxConns: 8, MinConns: 2,
	}
	pc, err := PoolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 8, pc.MaxConns)
	assert.EqualValues(t, 2, pc.MinConns)
	assert.Equal(t, "UTC", pc.ConnConfig.RuntimeParams["timezone"])
	assert.Equal(t, "seguros-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.NotNil(t, pc.AfterConnect)
}

func TestPoolConfig_DatabaseURLInvalida(t *testing.T) {
	_, err := PoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

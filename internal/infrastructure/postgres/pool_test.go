package postgres

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Seguros-api/pkg/config"
)

func TestConnString(t *testing.T) {
	cfg := config.DBConfig{Host: "10.0.0.5", Port: 5432, User: "app", Password: "x", DBName: "seguros", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:x@10.0.0.5:5432/seguros?sslmode=disable", connString(cfg))

	cfg.DatabaseURL = "postgres://u:p@db.internal:6543/seguros"
	assert.Equal(t, cfg.DatabaseURL, connString(cfg))

	// IP literal: no hay resolución DNS
	cfg.ForceIPv4 = true
	cfg.DatabaseURL = "postgres://u:p@127.0.0.1/seguros"
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/seguros", connString(cfg))
}

func TestLookupIPv4_Literal(t *testing.T) {
	ip, err := lookupIPv4("192.168.1.10")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.10", ip)

	_, err = lookupIPv4("::1")
	assert.ErrorIs(t, err, errNoIPv4)
}

func TestApplyPoolLimits(t *testing.T) {
	pc, err := pgxpool.ParseConfig("postgres://u:p@127.0.0.1:5432/seguros")
	require.NoError(t, err)

	applyPoolLimits(pc, config.DBConfig{MaxConns: 8, MinConns: 1})
	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)

	applyPoolLimits(pc, config.DBConfig{MaxConns: 0, MinConns: 40})
	assert.Equal(t, int32(25), pc.MaxConns)

	assert.Equal(t, 5*time.Second, pingTimeout(config.DBConfig{}))
}

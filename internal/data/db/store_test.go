package db

import (
	"strings"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/config"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/logger"
)

func TestPostgresDSN(t *testing.T) {
	cfg := config.Store{Host: "db", User: "u", Password: "p", Name: "shop"}
	assert.Equal(t, "postgres://u:p@db:5432/shop?sslmode=disable", PostgresDSN(cfg))

	cfg.Port = 6543
	assert.Equal(t, "postgres://u:p@db:6543/shop?sslmode=disable", PostgresDSN(cfg))

	cfg.DSN = " postgres://explicit "
	assert.Equal(t, "postgres://explicit", PostgresDSN(cfg))
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN(config.Store{Host: "db", User: "u", Password: "p", Name: "shop"})

	parsed, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "shop", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.ClientFoundRows)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "gestion_commandes.db?_foreign_keys=off&_busy_timeout=5000", SQLiteDSN(config.Store{}))
	assert.Equal(t, "x.db?mode=ro", SQLiteDSN(config.Store{Path: "x.db?mode=ro"}))
	assert.True(t, isMemorySQLite(config.Store{Path: ":memory:"}))
	assert.False(t, isMemorySQLite(config.Store{Path: "shop.db"}))
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(config.Store{Driver: "oracle"})
	require.Error(t, err)

	for _, driver := range []string{config.DriverPostgres, config.DriverMySQL, config.DriverSQLite} {
		d, err := Dialector(config.Store{Driver: driver, Host: "h", Name: "n"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}
}

func TestNewStoreServiceMigratesMemorySQLite(t *testing.T) {
	cfg := config.Default().Store
	cfg.Path = ":memory:"
	cfg.MaxOpenConns = 8

	store, err := NewStoreService(cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	assert.Equal(t, config.DriverSQLite, store.Driver())
	sqlDB, err := store.DB().DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections, "memory databases are pinned to one connection")

	for _, m := range Models() {
		assert.True(t, store.DB().Migrator().HasTable(m), "%T", m)
	}
	require.NoError(t, AutoMigrateAll(store.DB()), "migrations are idempotent")
}

func TestNewStoreServiceBadDriver(t *testing.T) {
	_, err := NewStoreService(config.Store{Driver: "oracle"}, logger.Nop())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported store driver"))
}

func TestCloseNilStore(t *testing.T) {
	var s *StoreService
	assert.NoError(t, s.Close())
}

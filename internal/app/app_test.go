package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainagg "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain/aggregates"
	"github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/platform/dbctx"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	for _, name := range []string{"STORE_DRIVER", "STORE_DSN", "SQLITE_PATH", "LOG_OUTPUT", "LOG_MODE", "LOG_LEVEL", "OTEL_ENABLED", "GO_ENV"} {
		t.Setenv(name, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewWiresComponentsOverOneStore(t *testing.T) {
	path := writeConfig(t, "log:\n  mode: test\n  output: [app.log]\nstore:\n  driver: sqlite\n  path: \":memory:\"\n")

	a, err := New(Options{ConfigPath: path})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.NotEmpty(t, a.SessionID)
	assert.Equal(t, "sqlite", a.Cfg.Store.Driver)
	require.NotNil(t, a.Customers)
	require.NotNil(t, a.Products)
	require.NotNil(t, a.Orders)
	require.NotNil(t, a.Payments)

	for _, agg := range []domainagg.Aggregate{a.Customers, a.Products, a.Orders, a.Payments} {
		assert.True(t, agg.Contract().RequiresAggregateOwnedTx(), agg.Contract().Name)
	}

	ctx := context.Background()
	c, err := a.Customers.Create(ctx, domainagg.CustomerInput{Name: "Ada Lovelace", Address: "1 Mill Ln", Email: "Ada@Example.com", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", c.Email)

	require.NoError(t, a.Migrate())
	rows, err := a.Repos.Customers.List(dbctx.New(ctx))
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	summary := a.Metrics.Summary()
	require.Len(t, summary, 1)
	assert.Equal(t, "Sales.CustomerRegistry.Create", summary[0].Name)
	assert.EqualValues(t, 1, summary[0].Success)
}

func TestNewReportsBadConfig(t *testing.T) {
	path := writeConfig(t, "store:\n  driver: oracle\n")

	_, err := New(Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestCloseIsNilSafe(t *testing.T) {
	var a *App
	a.Close()
	assert.Error(t, a.Migrate())
}

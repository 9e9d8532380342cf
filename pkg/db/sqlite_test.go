package db

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestConnect_InMemory(t *testing.T) {
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.Ping())
}

func TestConnect_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "app.db")

	conn, err := Connect(path)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	assert.FileExists(t, path)
}

func TestInitSchema_Idempotent(t *testing.T) {
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	require.NoError(t, InitSchema(conn))

	_, err = conn.Exec("INSERT INTO customers (name) VALUES ('Alice Johnson')")
	require.NoError(t, err)

	count, err := countRows(conn, "customers")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestConnect_ForeignKeysEnforced(t *testing.T) {
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))

	_, err = conn.Exec("INSERT INTO orders (customer_id, order_date, status) VALUES (999, '2024-05-15T12:00:00Z', 'draft')")
	assert.Error(t, err)
}

func TestSeedDefaultData(t *testing.T) {
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))

	require.NoError(t, SeedDefaultData(conn, testLogger()))

	for table, want := range map[string]int{"roles": 2, "users": 2, "customers": 3, "products": 5} {
		count, err := countRows(conn, table)
		require.NoError(t, err)
		assert.Equal(t, want, count, table)
	}

	var roleID int64
	err = conn.QueryRow("SELECT role_id FROM users WHERE username = 'admin'").Scan(&roleID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), roleID)
}

func TestSeedDefaultData_Idempotent(t *testing.T) {
	conn, err := Connect(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, InitSchema(conn))

	require.NoError(t, SeedDefaultData(conn, testLogger()))
	require.NoError(t, SeedDefaultData(conn, testLogger()))

	count, err := countRows(conn, "products")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

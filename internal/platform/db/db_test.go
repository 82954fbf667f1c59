package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE id = ? AND b = ? LIMIT ?"

	assert.Equal(t, "SELECT a FROM t WHERE id = $1 AND b = $2 LIMIT $3", Rebind(DriverPostgres, q))
	assert.Equal(t, q, Rebind(DriverSQLite, q))
	assert.Equal(t, "SELECT 1", Rebind(DriverPostgres, "SELECT 1"))
	assert.Equal(t, "DELETE FROM t WHERE id = $1", Rebind("postgres", "DELETE FROM t WHERE id = ?"))
}

func TestOpenSQLiteInMemory(t *testing.T) {
	conn, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()

	var one int
	require.NoError(t, conn.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.ErrorContains(t, err, "unsupported driver")
}

//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/huangsam/gitactivity/internal/iocache"
	"github.com/huangsam/gitactivity/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer starts a database container and returns host and mapped port.
func startContainer(t *testing.T, req testcontainers.ContainerRequest, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(ctx) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	require.NoError(t, err)
	return host, mapped.Port()
}

// exerciseBackend runs the store, migrations and CLI against one SQL server.
func exerciseBackend(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	store, err := iocache.NewCacheStore(backend, connStr)
	require.NoError(t, err)
	require.NoError(t, store.Set("k1", []byte("1\t2\tsrc/a.py\n"), 1, time.Now().Unix()))
	value, version, _, err := store.Get("k1")
	require.NoError(t, err)
	assert.Equal(t, "1\t2\tsrc/a.py\n", string(value))
	assert.Equal(t, 1, version)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 1, status.TotalEntries)
	require.NoError(t, store.Close())

	result, err := iocache.MigrateCache(backend, connStr, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), result.FromVersion)
	assert.Equal(t, uint(1), result.ToVersion)

	env := []string{
		"GITACTIVITY_CACHE_BACKEND=" + string(backend),
		"GITACTIVITY_CACHE_DB_CONNECT=" + connStr,
	}
	repo := setupActivityRepo(t)

	first := runBinary(t, repo, env, "src/a.py", "src/b.py")
	require.Equal(t, 0, first.ExitCode, first.Stderr)
	second := runBinary(t, repo, env, "src/a.py", "src/b.py")
	require.Equal(t, 0, second.ExitCode, second.Stderr)
	assert.Equal(t, first.Stdout, second.Stdout)
	assert.Contains(t, first.Stdout, "     +10       -2 src/a.py")

	statusOut := runBinary(t, repo, env, "cache", "status")
	require.Equal(t, 0, statusOut.ExitCode, statusOut.Stderr)
	assert.Contains(t, statusOut.Stdout, string(backend))

	migrated := runBinary(t, repo, env, "cache", "migrate")
	require.Equal(t, 0, migrated.ExitCode, migrated.Stderr)

	cleared := runBinary(t, repo, env, "cache", "clear")
	require.Equal(t, 0, cleared.ExitCode, cleared.Stderr)
	assert.Contains(t, cleared.Stdout, "Cache cleared successfully.")
}

// TestCacheWithMySQL tests the numstat cache with a MySQL backend.
func TestCacheWithMySQL(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gitactivity",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}, "3306")

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gitactivity?parseTime=true", host, port)
	exerciseBackend(t, schema.MySQLBackend, connStr)
}

// TestCacheWithPostgres tests the numstat cache with a PostgreSQL backend.
func TestCacheWithPostgres(t *testing.T) {
	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}, "5432")

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port)
	exerciseBackend(t, schema.PostgreSQLBackend, connStr)
}

//go:build integration

// Package integration exercises the repositories and unit of work against a
// real PostgreSQL instance. One container serves the whole test process; each
// test gets its own database so tests never see each other's rows.
package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"shortstay/internal/infra/db"
	"shortstay/internal/pkg/config"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	containerOnce sync.Once
	container     testcontainers.Container
)

func startPostgres(t *testing.T) (host string, port nat.Port) {
	t.Helper()

	containerOnce.Do(func() {
		req := testcontainers.ContainerRequest{
			Image:        "postgres:17",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testUser,
				"POSTGRES_PASSWORD": testPassword,
				"POSTGRES_DB":       "postgres",
			},
			Tmpfs: map[string]string{
				"/var/lib/postgresql/data": "rw,size=512m",
			},
			Cmd: []string{
				"postgres",
				"-c", "fsync=off",
				"-c", "synchronous_commit=off",
				"-c", "full_page_writes=off",
			},
			WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
				return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
					testUser, testPassword, host, port.Port())
			}).WithStartupTimeout(60 * time.Second),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		var err error
		container, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: req,
			Started:          true,
		})
		require.NoError(t, err, "failed to start PostgreSQL container")
	})

	ctx := context.Background()
	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	containerHost, err := container.Host(ctx)
	require.NoError(t, err)
	return containerHost, mappedPort
}

// newTestPool creates a fresh database on the shared container, applies the
// schema, and returns a connected pool. The database is dropped on cleanup.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	host, port := startPostgres(t)
	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable",
		testUser, testPassword, host, port.Port())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, adminDSN)
	require.NoError(t, err, "failed to open admin connection")
	defer adminPool.Close()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	t.Cleanup(func() {
		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cleanupCancel()

		cleanupPool, err := pgxpool.New(cleanupCtx, adminDSN)
		if err != nil {
			return
		}
		defer cleanupPool.Close()
		_, _ = cleanupPool.Exec(cleanupCtx, "DROP DATABASE IF EXISTS "+dbName)
	})

	pool, cleanup, err := db.Connect(config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Africa/Lagos",
	})
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(cleanup)

	_, err = pool.Exec(ctx, db.Schema)
	require.NoError(t, err, "failed to apply schema")

	return pool
}

func insertProperty(t *testing.T, pool *pgxpool.Pool, hostID uuid.UUID) uuid.UUID {
	t.Helper()

	propertyID := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO properties (id, host_id, name, max_guests, price_per_night, cleaning_fee)
		VALUES ($1, $2, 'Lekki Loft', 4, 45000, 5000)`,
		propertyID, hostID,
	)
	require.NoError(t, err, "failed to insert property")
	return propertyID
}

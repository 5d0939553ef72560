package testhelpers

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DanielPopoola/webshop-vip/internal/config"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/persistence/postgres"
)

type TestDatabase struct {
	Container  *tcpostgres.PostgresContainer
	DB         *postgres.DB
	ConnString string
}

func SetupTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	require.NoError(t, postgres.Migrate(dbConfig.ConnString(), logger))

	db, err := postgres.Connect(ctx, dbConfig, logger)
	require.NoError(t, err)

	return &TestDatabase{
		Container:  container,
		DB:         db,
		ConnString: dbConfig.ConnString(),
	}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(context.Background()))
}

func (td *TestDatabase) CleanTables(t *testing.T) {
	_, err := td.DB.Pool.Exec(context.Background(), "TRUNCATE TABLE vip_payments, items RESTART IDENTITY CASCADE;")
	require.NoError(t, err)
}

// SeedListing inserts an item the way the catalogue would and returns its ID.
func (td *TestDatabase) SeedListing(t *testing.T, ownerEmail string, promoted bool) int64 {
	var id int64
	err := td.DB.Pool.QueryRow(context.Background(),
		`INSERT INTO items (title, owner_email, is_vip) VALUES ($1, $2, $3) RETURNING id`,
		"Vintage bike", ownerEmail, promoted,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

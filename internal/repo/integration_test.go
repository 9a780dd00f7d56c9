package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"taskboard/internal/core/config"
	"taskboard/internal/repo"
)

// PostgresSuite 在真实 postgres 上跑 gorm / pgx 两个后端
type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	admin     *pgxpool.Pool
	host      string
	port      string
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()

	c, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "test",
				"POSTGRES_PASSWORD": "test",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err)
	s.container = c

	host, err := c.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := c.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)
	s.host, s.port = host, port.Port()

	s.admin, err = pgxpool.New(s.ctx, s.dsn("postgres"))
	require.NoError(s.T(), err)
}

func (s *PostgresSuite) TearDownSuite() {
	if s.admin != nil {
		s.admin.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresSuite) dsn(db string) string {
	return fmt.Sprintf("postgres://test:test@%s:%s/%s?sslmode=disable", s.host, s.port, db)
}

// freshDB 每个用例独立建库
func (s *PostgresSuite) freshDB(name string) string {
	_, err := s.admin.Exec(s.ctx, "CREATE DATABASE "+name)
	s.Require().NoError(err)
	return s.dsn(name)
}

func (s *PostgresSuite) TestGormBackend() {
	cfg := &config.Config{
		Store: config.Store{Backend: repo.BackendGorm},
		DB: config.DB{
			Driver:       "postgres",
			DSN:          s.freshDB("gorm_contract"),
			MaxOpenConns: 5,
			MaxIdleConns: 1,
			AutoMigrate:  true,
			LogLevel:     "silent",
		},
	}
	stores, err := repo.Open(s.ctx, cfg, nil)
	s.Require().NoError(err)
	defer stores.Close()

	s.Require().NoError(stores.Ping(s.ctx))
	runStoreContract(s.T(), stores.Users, stores.Tasks)
}

func (s *PostgresSuite) TestPgxBackend() {
	cfg := &config.Config{
		Store: config.Store{Backend: repo.BackendPgx},
		DB: config.DB{
			DSN:            s.freshDB("pgx_contract"),
			MaxOpenConns:   5,
			AutoMigrate:    true,
			MigrationsPath: "file://../../migrations",
		},
	}
	stores, err := repo.Open(s.ctx, cfg, nil)
	s.Require().NoError(err)
	defer stores.Close()

	s.Require().NoError(stores.Ping(s.ctx))
	runStoreContract(s.T(), stores.Users, stores.Tasks)
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	suite.Run(t, new(PostgresSuite))
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coverapi/internal/config"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		config  config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{
			name:   "password, sslmode and custom ping timeout",
			config: config.DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss word", Name: "coverapi", SSLMode: "require", PingTimeoutSec: 3},
			want:   "postgres://app:p%40ss%20word@db:5432/coverapi?application_name=coverapi&connect_timeout=3&sslmode=require",
		},
		{
			name:   "no password, default timeout, no sslmode",
			config: config.DatabaseConfig{Host: "localhost", Port: "5433", User: "app", Name: "coverapi"},
			want:   "postgres://app@localhost:5433/coverapi?application_name=coverapi&connect_timeout=5",
		},
		{name: "missing host", config: config.DatabaseConfig{Port: "5432", User: "app", Name: "coverapi"}, wantErr: true},
		{name: "missing port", config: config.DatabaseConfig{Host: "db", User: "app", Name: "coverapi"}, wantErr: true},
		{name: "missing user", config: config.DatabaseConfig{Host: "db", Port: "5432", Name: "coverapi"}, wantErr: true},
		{name: "missing name", config: config.DatabaseConfig{Host: "db", Port: "5432", User: "app"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildPostgresDSN(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type poolRecorder struct {
	maxOpen, maxIdle   int
	lifetime, idleTime time.Duration
}

func (p *poolRecorder) SetMaxOpenConns(n int)              { p.maxOpen = n }
func (p *poolRecorder) SetMaxIdleConns(n int)              { p.maxIdle = n }
func (p *poolRecorder) SetConnMaxLifetime(d time.Duration) { p.lifetime = d }
func (p *poolRecorder) SetConnMaxIdleTime(d time.Duration) { p.idleTime = d }

func TestConfigurePool(t *testing.T) {
	t.Run("configured values", func(t *testing.T) {
		p := &poolRecorder{}
		configurePool(p, config.DatabaseConfig{MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetimeSec: 300, ConnMaxIdleSec: 30})

		assert.Equal(t, 10, p.maxOpen)
		assert.Equal(t, 5, p.maxIdle)
		assert.Equal(t, 5*time.Minute, p.lifetime)
		assert.Equal(t, 30*time.Second, p.idleTime)
	})

	t.Run("zero values keep defaults", func(t *testing.T) {
		p := &poolRecorder{}
		configurePool(p, config.DatabaseConfig{})

		assert.Zero(t, p.maxOpen)
		assert.Zero(t, p.maxIdle)
		assert.Zero(t, p.lifetime)
		assert.Equal(t, defaultConnMaxIdle, p.idleTime)
	})
}

func stubOpen(t *testing.T, db *sql.DB, err error) {
	t.Helper()
	orig := sqlOpen
	sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
		if err != nil {
			return nil, err
		}
		assert.Contains(t, dataSourceName, "application_name=coverapi")
		return db, nil
	}
	t.Cleanup(func() { sqlOpen = orig })
}

func TestNewPostgres(t *testing.T) {
	conf := config.DatabaseConfig{
		Host:               "localhost",
		Port:               "5432",
		User:               "app",
		Password:           "secret",
		Name:               "coverapi",
		MaxOpenConns:       10,
		MaxIdleConns:       5,
		ConnMaxLifetimeSec: 300,
		ConnMaxIdleSec:     60,
	}
	ctx := context.Background()

	t.Run("success applies pool limits", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db, nil)
		mock.ExpectPing()

		got, err := NewPostgres(ctx, conf)
		require.NoError(t, err)
		assert.Equal(t, 10, got.Stats().MaxOpenConnections)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sql open error", func(t *testing.T) {
		stubOpen(t, nil, errors.New("open error"))

		got, err := NewPostgres(ctx, conf)
		assert.ErrorContains(t, err, "sql open: open error")
		assert.Nil(t, got)
	})

	t.Run("ping error closes the pool", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		mock.ExpectClose()

		got, err := NewPostgres(ctx, conf)
		assert.ErrorContains(t, err, "db ping: ping failed")
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slow ping is cut at the ping timeout", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillDelayFor(5 * time.Second)

		slow := conf
		slow.PingTimeoutSec = 1
		start := time.Now()
		got, err := NewPostgres(ctx, slow)

		assert.ErrorContains(t, err, "db ping")
		assert.Nil(t, got)
		assert.Less(t, time.Since(start), 3*time.Second)
	})

	t.Run("caller cancellation wins over the ping timeout", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db, nil)
		mock.ExpectPing().WillDelayFor(5 * time.Second)

		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		start := time.Now()
		got, err := NewPostgres(cctx, conf)

		assert.ErrorContains(t, err, "db ping")
		assert.Nil(t, got)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("invalid config", func(t *testing.T) {
		got, err := NewPostgres(ctx, config.DatabaseConfig{})
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

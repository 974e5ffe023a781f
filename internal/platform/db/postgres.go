package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PoolLimits bounds the shared connection pool: a minimum of warm idle
// connections, a concurrency ceiling, and an idle-eviction policy. The
// per-query acquire timeout is enforced by the context deadline on each
// storage call; ConnectTimeout only bounds the startup ping.
type PoolLimits struct {
	MaxOpenConns    int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// Postgres wraps DB connectivity.
// Keep transaction helpers here to support outbox + state consistency.
type Postgres struct {
	DB *gorm.DB
}

func Connect(dsn string, limits PoolLimits) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve postgres sql db handle: %w", err)
	}

	if limits.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(limits.MaxOpenConns)
	}
	if limits.MinIdleConns > 0 {
		sqlDB.SetMaxIdleConns(limits.MinIdleConns)
	}
	if limits.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(limits.ConnMaxIdleTime)
	}

	connectTimeout := limits.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Postgres{DB: db}, nil
}

func (p *Postgres) Close() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

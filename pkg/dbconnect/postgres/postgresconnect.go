package postgres

import (
	"allegro_sync/config"
	"allegro_sync/pkg/logger"
	"context"
	"database/sql"
	"fmt"
	_ "github.com/lib/pq"
	"sync"
	"time"
)

const (
	maxRetries     = 10
	dbMaxOpenConns = 20
	retryDelay     = 5 * time.Second
)

type PostgresDatabase struct {
	config.DatabaseConfig
	log logger.Logger
	db  *sql.DB
	mu  sync.Mutex

	// open подменяется в тестах
	open       func(driver, dsn string) (*sql.DB, error)
	retryDelay time.Duration
}

func NewPgConnector(dbConfig config.DatabaseConfig, log logger.Logger) *PostgresDatabase {
	return &PostgresDatabase{
		DatabaseConfig: dbConfig,
		log:            log,
		open:           sql.Open,
		retryDelay:     retryDelay,
	}
}

// Connect открывает пул и ждёт, пока база ответит на ping, не дольше maxRetries попыток.
func (pg *PostgresDatabase) Connect(ctx context.Context) (*sql.DB, error) {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db != nil {
		return pg.db, nil
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		db, err := pg.open("postgres", pg.GetConnectionString())
		if err == nil {
			db.SetMaxOpenConns(dbMaxOpenConns)
			if err = db.PingContext(ctx); err == nil {
				pg.log.Log("Successfully connected to Postgres")
				pg.db = db
				return db, nil
			}
			db.Close()
		}

		lastErr = err
		pg.log.Error("Failed to connect to Postgres (attempt %d/%d): %v", i+1, maxRetries, err)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect cancelled: %w", ctx.Err())
		case <-time.After(pg.retryDelay):
		}
	}
	return nil, fmt.Errorf("postgres unavailable after %d attempts: %w", maxRetries, lastErr)
}

func (pg *PostgresDatabase) Ping(ctx context.Context) error {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db == nil {
		return fmt.Errorf("database connection is not established")
	}

	if err := pg.db.PingContext(ctx); err != nil {
		pg.db.Close()
		pg.db = nil
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

func (pg *PostgresDatabase) Close() error {
	pg.mu.Lock()
	defer pg.mu.Unlock()

	if pg.db == nil {
		return nil
	}
	err := pg.db.Close()
	pg.db = nil
	return err
}

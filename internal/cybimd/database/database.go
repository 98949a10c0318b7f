// Package database provides utilities for the campaign store
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cybim/cybim-signage/internal/cybimd/config"
	"github.com/cybim/cybim-signage/internal/cybimd/migrations"
)

// Tx wraps a database transaction with additional functionality
type Tx struct {
	*sql.Tx
}

// TxOptions defines options for transaction execution
type TxOptions struct {
	// Isolation sets the transaction isolation level
	Isolation sql.IsolationLevel
	// ReadOnly indicates if the transaction is read-only
	ReadOnly bool
}

// Setup opens the campaign store, waits for it to become reachable,
// and applies pending migrations. The retry loop matters on signage
// devices where the database container may come up after the daemon.
func Setup(cfg config.DatabaseConfig, maxRetries int, retryDelay time.Duration) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	for attempt := 0; ; attempt++ {
		err = db.Ping()
		if err == nil {
			break
		}
		if attempt >= maxRetries {
			db.Close()
			return nil, fmt.Errorf("database unreachable after %d attempts: %w", attempt+1, err)
		}
		time.Sleep(retryDelay)
	}

	if err := migrations.NewManager(db).Apply(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return db, nil
}

// RunInTx executes a function within a transaction
func RunInTx(ctx context.Context, db *sql.DB, opts *TxOptions, fn func(*Tx) error) error {
	var txOpts *sql.TxOptions
	if opts != nil {
		txOpts = &sql.TxOptions{
			Isolation: opts.Isolation,
			ReadOnly:  opts.ReadOnly,
		}
	}

	tx, err := db.BeginTx(ctx, txOpts)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	wtx := &Tx{Tx: tx}

	if err := fn(wtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

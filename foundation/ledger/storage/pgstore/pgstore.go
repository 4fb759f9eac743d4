// Package pgstore implements the database Storage interface on PostgreSQL.
// Every Apply runs inside a single SQL transaction so a ledger change is
// durable in full or not at all.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ARYANPANWAR893/payo/foundation/ledger/database"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store is a PostgreSQL-backed Storage implementation.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and brings the schema up to date.
func New(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	store := Store{pool: pool}

	if err := store.runMigrations(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &store, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// runMigrations applies the embedded schema migrations. This is idempotent.
func (s *Store) runMigrations() error {
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating migration source: %w", err)
	}

	driver, err := migratepgx.WithInstance(stdlib.OpenDBFromPool(s.pool), &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// Load rehydrates the full ledger state.
func (s *Store) Load(ctx context.Context) (database.Snapshot, error) {
	var snapshot database.Snapshot

	rows, err := s.pool.Query(ctx, `
		SELECT account_id, name, email, balance
		FROM accounts
		ORDER BY account_id
	`)
	if err != nil {
		return database.Snapshot{}, fmt.Errorf("querying accounts: %w", err)
	}
	for rows.Next() {
		var account database.Account
		if err := rows.Scan(&account.AccountID, &account.Name, &account.Email, &account.Balance); err != nil {
			rows.Close()
			return database.Snapshot{}, fmt.Errorf("scanning account: %w", err)
		}
		snapshot.Accounts = append(snapshot.Accounts, account)
	}
	rows.Close()
	if rows.Err() != nil {
		return database.Snapshot{}, rows.Err()
	}

	rows, err = s.pool.Query(ctx, `
		SELECT account_id, block_index, payload, previous_hash, hash, timestamp
		FROM blocks
		ORDER BY account_id, block_index
	`)
	if err != nil {
		return database.Snapshot{}, fmt.Errorf("querying blocks: %w", err)
	}
	for rows.Next() {
		var block database.Block
		if err := rows.Scan(&block.AccountID, &block.Index, &block.Payload, &block.PrevHash, &block.Hash, &block.TimeStamp); err != nil {
			rows.Close()
			return database.Snapshot{}, fmt.Errorf("scanning block: %w", err)
		}
		snapshot.Blocks = append(snapshot.Blocks, block)
	}
	rows.Close()
	if rows.Err() != nil {
		return database.Snapshot{}, rows.Err()
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, from_id, to_id, amount, fee, timestamp
		FROM transactions
		ORDER BY timestamp
	`)
	if err != nil {
		return database.Snapshot{}, fmt.Errorf("querying transactions: %w", err)
	}
	for rows.Next() {
		var tx database.Tx
		if err := rows.Scan(&tx.ID, &tx.FromID, &tx.ToID, &tx.Amount, &tx.Fee, &tx.TimeStamp); err != nil {
			rows.Close()
			return database.Snapshot{}, fmt.Errorf("scanning transaction: %w", err)
		}
		snapshot.Trans = append(snapshot.Trans, tx)
	}
	rows.Close()
	if rows.Err() != nil {
		return database.Snapshot{}, rows.Err()
	}

	rows, err = s.pool.Query(ctx, `
		SELECT id, requester_id, payer_id, amount, status, timestamp
		FROM money_requests
		ORDER BY timestamp
	`)
	if err != nil {
		return database.Snapshot{}, fmt.Errorf("querying money requests: %w", err)
	}
	for rows.Next() {
		var request database.MoneyRequest
		if err := rows.Scan(&request.ID, &request.RequesterID, &request.PayerID, &request.Amount, &request.Status, &request.TimeStamp); err != nil {
			rows.Close()
			return database.Snapshot{}, fmt.Errorf("scanning money request: %w", err)
		}
		snapshot.Requests = append(snapshot.Requests, request)
	}
	rows.Close()
	if rows.Err() != nil {
		return database.Snapshot{}, rows.Err()
	}

	return snapshot, nil
}

// Apply writes the change inside one SQL transaction.
func (s *Store) Apply(ctx context.Context, change database.Change) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Accounts first so new chains can satisfy the blocks foreign key.
	for _, account := range change.Accounts {
		if _, err := tx.Exec(ctx, `
			INSERT INTO accounts (account_id, name, email, balance)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (account_id) DO UPDATE SET balance = EXCLUDED.balance
		`, account.AccountID, account.Name, account.Email, account.Balance); err != nil {
			return fmt.Errorf("upserting account: %w", err)
		}
	}

	for _, tr := range change.Truncate {
		if _, err := tx.Exec(ctx, `
			DELETE FROM blocks
			WHERE account_id = $1 AND block_index >= $2
		`, tr.AccountID, tr.FromIndex); err != nil {
			return fmt.Errorf("truncating chain: %w", err)
		}
	}

	for _, block := range change.Append {
		if _, err := tx.Exec(ctx, `
			INSERT INTO blocks (account_id, block_index, payload, previous_hash, hash, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, block.AccountID, block.Index, block.Payload, block.PrevHash, block.Hash, block.TimeStamp); err != nil {
			return fmt.Errorf("appending block: %w", err)
		}
	}

	for _, t := range change.Trans {
		if _, err := tx.Exec(ctx, `
			INSERT INTO transactions (id, from_id, to_id, amount, fee, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.ID, t.FromID, t.ToID, t.Amount, t.Fee, t.TimeStamp); err != nil {
			return fmt.Errorf("inserting transaction: %w", err)
		}
	}

	for _, request := range change.Requests {
		if _, err := tx.Exec(ctx, `
			INSERT INTO money_requests (id, requester_id, payer_id, amount, status, timestamp)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status
		`, request.ID, request.RequesterID, request.PayerID, request.Amount, request.Status, request.TimeStamp); err != nil {
			return fmt.Errorf("upserting money request: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

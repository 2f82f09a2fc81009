package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	applog "github.com/janisto/echo-sortable/internal/platform/logging"
)

// PostgresRepository implements Repository on PostgreSQL through pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a connection pool for databaseURL and pings it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	applog.LogInfo(ctx, "database ssl mode", slog.String("sslmode", extractSSLMode(databaseURL)))

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applog.LogInfo(ctx, "database connected",
		slog.Int("min_conns", int(poolCfg.MinConns)),
		slog.Int("max_conns", int(poolCfg.MaxConns)),
	)
	return pool, nil
}

func extractSSLMode(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "unknown"
	}
	mode := strings.ToLower(u.Query().Get("sslmode"))
	if mode == "" {
		return "prefer (default)"
	}
	return mode
}

// OpenPostgres connects to databaseURL and creates the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	pool, err := ConnectPostgres(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	repo := NewPostgresRepository(pool)
	if err := repo.CreateSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// NewPostgresRepository wraps an existing pool. The schema must exist.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// CreateSchema creates the items table. Safe to call repeatedly.
func (r *PostgresRepository) CreateSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*Item, error) {
	var it Item
	err := r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return &it, nil
}

func (r *PostgresRepository) Save(ctx context.Context, it *Item) error {
	return pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if it.ID == 0 {
			err := tx.QueryRow(ctx,
				`INSERT INTO items (name, position) VALUES ($1, $2) RETURNING id`,
				it.Name, it.Position,
			).Scan(&it.ID)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
			return nil
		}

		tag, err := tx.Exec(ctx,
			`UPDATE items SET name = $1, position = $2 WHERE id = $3`,
			it.Name, it.Position, it.ID)
		if err != nil {
			return fmt.Errorf("failed to update item %d: %w", it.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *PostgresRepository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM items ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Item, error) {
		var it Item
		err := row.Scan(&it.ID, &it.Name, &it.Position)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	return items, nil
}

// Ping checks a pooled connection answers.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close releases the pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

var _ Repository = (*PostgresRepository)(nil)

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lpOracle/internal/model"
)

const configName = "default"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS oracle_config (
	name TEXT PRIMARY KEY,
	price_hub_addr TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS lp_quotes (
	id BIGSERIAL PRIMARY KEY,
	asset_token TEXT NOT NULL,
	rate NUMERIC NOT NULL,
	last_updated BIGINT NOT NULL,
	served_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS lp_quotes_asset_token_idx ON lp_quotes (asset_token, served_at);
`

// Store provides Postgres persistence for the oracle config and quote journal.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore opens a connection pool for dsn without contacting the database.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Connect opens a store, waits for the database to answer and ensures the schema.
func Connect(ctx context.Context, dsn string, maxRetries int, backoff time.Duration) (*Store, error) {
	store, err := NewStore(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := pingUntilReady(ctx, store.pool.Ping, maxRetries, backoff); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the tables used by the store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadConfig returns the persisted config, if any.
func (s *Store) LoadConfig(ctx context.Context) (model.Config, bool, error) {
	var hub string
	row := s.pool.QueryRow(ctx, `SELECT price_hub_addr FROM oracle_config WHERE name=$1`, configName)
	if err := row.Scan(&hub); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Config{}, false, nil
		}
		return model.Config{}, false, err
	}
	if !common.IsHexAddress(hub) {
		return model.Config{}, false, fmt.Errorf("stored price hub address is invalid: %q", hub)
	}
	return model.Config{PriceHubAddress: common.HexToAddress(hub)}, true, nil
}

// SaveConfig upserts the config row.
func (s *Store) SaveConfig(ctx context.Context, cfg model.Config) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO oracle_config (name, price_hub_addr, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET price_hub_addr = EXCLUDED.price_hub_addr, updated_at = now()
	`, configName, cfg.PriceHubAddress.Hex())
	return err
}

// PutQuotes inserts served quotes.
func (s *Store) PutQuotes(ctx context.Context, quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, q := range quotes {
		batch.Queue(`
			INSERT INTO lp_quotes (asset_token, rate, last_updated, served_at, created_at)
			VALUES ($1, $2::numeric, $3, $4::timestamptz, now())
		`,
			q.AssetToken,
			q.Rate,
			int64(q.LastUpdated),
			q.ServedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range quotes {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

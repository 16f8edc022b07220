package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_score":  `INSERT INTO score_history (id, city_id, breakdown, created_at) VALUES ($1, $2, $3, $4)`,
	"get_comp_pool": `SELECT id, market_id, comps, fetched_at, expires_at FROM comp_pools WHERE market_id = $1 AND expires_at > now() ORDER BY fetched_at DESC LIMIT 1`,
	"set_comp_pool": `INSERT INTO comp_pools (id, market_id, comps, fetched_at, expires_at) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (market_id) DO UPDATE SET comps = $3, fetched_at = $4, expires_at = $5`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS score_history (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	city_id    TEXT NOT NULL,
	breakdown  JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS comp_pools (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	market_id  TEXT NOT NULL UNIQUE,
	comps      JSONB NOT NULL,
	fetched_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_history_city_id ON score_history(city_id);
CREATE INDEX IF NOT EXISTS idx_score_history_created_at ON score_history(created_at);
CREATE INDEX IF NOT EXISTS idx_comp_pools_market_id ON comp_pools(market_id);
CREATE INDEX IF NOT EXISTS idx_comp_pools_expires_at ON comp_pools(expires_at);
CREATE INDEX IF NOT EXISTS idx_comp_pools_market_expires ON comp_pools(market_id, expires_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveScore(ctx context.Context, cityID string, breakdown scoring.Breakdown) (*ScoreRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal breakdown")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO score_history (id, city_id, breakdown, created_at) VALUES ($1, $2, $3, $4)`,
		id, cityID, breakdownJSON, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: insert score for %s", cityID)
	}

	return &ScoreRecord{ID: id, CityID: cityID, Breakdown: breakdown, CreatedAt: now}, nil
}

func (s *PostgresStore) ListScores(ctx context.Context, filter ScoreFilter) ([]ScoreRecord, error) {
	query := `SELECT id, city_id, breakdown, created_at FROM score_history WHERE true`
	args := []any{}
	argIdx := 1

	if filter.CityID != "" {
		query += fmt.Sprintf(` AND city_id = $%d`, argIdx)
		args = append(args, filter.CityID)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list scores")
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		var breakdownJSON []byte
		if err := rows.Scan(&r.ID, &r.CityID, &breakdownJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan score")
		}
		if err := json.Unmarshal(breakdownJSON, &r.Breakdown); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal breakdown")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list scores iterate")
}

func (s *PostgresStore) GetCompPool(ctx context.Context, marketID string) (*CompPool, error) {
	var cp CompPool
	var compsJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, market_id, comps, fetched_at, expires_at FROM comp_pools
		 WHERE market_id = $1 AND expires_at > now()
		 ORDER BY fetched_at DESC LIMIT 1`,
		marketID,
	).Scan(&cp.ID, &cp.MarketID, &compsJSON, &cp.FetchedAt, &cp.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: get comp pool")
	}
	if err := json.Unmarshal(compsJSON, &cp.Comps); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal comps")
	}
	return &cp, nil
}

func (s *PostgresStore) SetCompPool(ctx context.Context, marketID string, pool []comps.Comp, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	compsJSON, err := json.Marshal(pool)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal comps")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO comp_pools (id, market_id, comps, fetched_at, expires_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (market_id) DO UPDATE SET comps = $3, fetched_at = $4, expires_at = $5`,
		id, marketID, compsJSON, now, expiresAt,
	)
	return eris.Wrap(err, "postgres: set comp pool")
}

func (s *PostgresStore) DeleteExpiredPools(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM comp_pools WHERE expires_at <= now()`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: delete expired pools")
	}
	return int(tag.RowsAffected()), nil
}

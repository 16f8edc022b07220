package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS score_history (
	id         TEXT PRIMARY KEY,
	city_id    TEXT NOT NULL,
	breakdown  TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS comp_pools (
	id         TEXT PRIMARY KEY,
	market_id  TEXT NOT NULL,
	comps      TEXT NOT NULL,
	fetched_at DATETIME NOT NULL DEFAULT (datetime('now')),
	expires_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_score_history_city_id ON score_history(city_id);
CREATE INDEX IF NOT EXISTS idx_score_history_created_at ON score_history(created_at);
CREATE INDEX IF NOT EXISTS idx_comp_pools_market_id ON comp_pools(market_id);
CREATE INDEX IF NOT EXISTS idx_comp_pools_expires_at ON comp_pools(expires_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveScore(ctx context.Context, cityID string, breakdown scoring.Breakdown) (*ScoreRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal breakdown")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO score_history (id, city_id, breakdown, created_at) VALUES (?, ?, ?, ?)`,
		id, cityID, string(breakdownJSON), now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: insert score for %s", cityID)
	}

	return &ScoreRecord{ID: id, CityID: cityID, Breakdown: breakdown, CreatedAt: now}, nil
}

func (s *SQLiteStore) ListScores(ctx context.Context, filter ScoreFilter) ([]ScoreRecord, error) {
	query := `SELECT id, city_id, breakdown, created_at FROM score_history WHERE 1=1`
	var args []any

	if filter.CityID != "" {
		query += ` AND city_id = ?`
		args = append(args, filter.CityID)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scores")
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		var breakdownJSON string
		if err := rows.Scan(&r.ID, &r.CityID, &breakdownJSON, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan score")
		}
		if err := json.Unmarshal([]byte(breakdownJSON), &r.Breakdown); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal breakdown")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list scores iterate")
}

func (s *SQLiteStore) GetCompPool(ctx context.Context, marketID string) (*CompPool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, market_id, comps, fetched_at, expires_at FROM comp_pools
		 WHERE market_id = ? AND expires_at > datetime('now')
		 ORDER BY fetched_at DESC LIMIT 1`,
		marketID,
	)

	var cp CompPool
	var compsJSON string
	err := row.Scan(&cp.ID, &cp.MarketID, &compsJSON, &cp.FetchedAt, &cp.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get comp pool")
	}
	if err := json.Unmarshal([]byte(compsJSON), &cp.Comps); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal comps")
	}
	return &cp, nil
}

func (s *SQLiteStore) SetCompPool(ctx context.Context, marketID string, pool []comps.Comp, ttl time.Duration) error {
	id := uuid.New().String()
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	compsJSON, err := json.Marshal(pool)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal comps")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO comp_pools (id, market_id, comps, fetched_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
		id, marketID, string(compsJSON), now, expiresAt,
	)
	return eris.Wrap(err, "sqlite: set comp pool")
}

func (s *SQLiteStore) DeleteExpiredPools(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM comp_pools WHERE expires_at <= datetime('now')`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: delete expired pools")
	}
	n, err := res.RowsAffected()
	return int(n), eris.Wrap(err, "sqlite: rows affected")
}

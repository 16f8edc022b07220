// Package store persists scoring history and cached comparable-listing
// pools. Two backends are provided: SQLite for single-user CLI work and
// Postgres for the shared API server.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/helloteeco/Edge-sub001/internal/comps"
	"github.com/helloteeco/Edge-sub001/internal/scoring"
)

// ScoreRecord is one saved scoring run for a market.
type ScoreRecord struct {
	ID        string            `json:"id"`
	CityID    string            `json:"city_id"`
	Breakdown scoring.Breakdown `json:"breakdown"`
	CreatedAt time.Time         `json:"created_at"`
}

// ScoreFilter specifies criteria for listing saved scores.
type ScoreFilter struct {
	CityID string `json:"city_id,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// CompPool is a cached pool of comparable listings for one market.
type CompPool struct {
	ID        string       `json:"id"`
	MarketID  string       `json:"market_id"`
	Comps     []comps.Comp `json:"comps"`
	FetchedAt time.Time    `json:"fetched_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Store defines the persistence interface for the scoring engine.
type Store interface {
	// Score history
	SaveScore(ctx context.Context, cityID string, breakdown scoring.Breakdown) (*ScoreRecord, error)
	ListScores(ctx context.Context, filter ScoreFilter) ([]ScoreRecord, error)

	// Comp pool cache
	GetCompPool(ctx context.Context, marketID string) (*CompPool, error)
	SetCompPool(ctx context.Context, marketID string, pool []comps.Comp, ttl time.Duration) error
	DeleteExpiredPools(ctx context.Context) (int, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a Store for the given driver. Supported drivers are
// "sqlite" and "postgres".
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}

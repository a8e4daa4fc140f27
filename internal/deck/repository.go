package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Repository is the postgres-backed Store. Deck documents live in a
// single table with the card list as jsonb.
type Repository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewRepository connects a pool and verifies it with a ping.
func NewRepository(ctx context.Context, databaseURL string, logger *zap.Logger) (*Repository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect deck store: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping deck store: %w", err)
	}
	return &Repository{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// GetDeck fetches one deck document by id.
func (r *Repository) GetDeck(ctx context.Context, id string) (*Deck, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, legion, cards FROM decks WHERE id = $1`, id)

	var (
		d        Deck
		cardsRaw []byte
	)
	if err := row.Scan(&d.ID, &d.Legion, &cardsRaw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.Error("deck lookup failed",
			zap.String("deck_id", id),
			zap.Error(err),
		)
		return nil, fmt.Errorf("query deck %s: %w", id, err)
	}
	if err := json.Unmarshal(cardsRaw, &d.Cards); err != nil {
		return nil, fmt.Errorf("decode deck %s: %w", id, err)
	}
	return &d, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"assessment-service/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResultStore persists submitted results as individual rows. Row-level
// inserts keep concurrent submissions from clobbering each other; a serial
// position column preserves insertion order for queries.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) Append(ctx context.Context, result *domain.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO results (id, user_id, section_id, data) VALUES ($1, $2, $3, $4)`,
		result.ID, result.UserID, result.SectionID, data)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

func (s *ResultStore) Query(ctx context.Context, filter domain.ResultFilter) ([]domain.Result, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM results
		 WHERE ($1 = '' OR user_id = $1) AND ($2 = '' OR section_id = $2)
		 ORDER BY position`,
		filter.UserID, filter.SectionID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []domain.Result
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r domain.Result
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

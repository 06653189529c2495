package postgres

import (
	"context"
	"errors"
	"fmt"

	"assessment-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// SectionStore persists the section registry. Unlike the in-memory variant
// it survives restarts; section ids are unique by primary key.
type SectionStore struct {
	pool *pgxpool.Pool
}

func NewSectionStore(pool *pgxpool.Pool) *SectionStore {
	return &SectionStore{pool: pool}
}

func (s *SectionStore) List(ctx context.Context) ([]domain.Section, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, active FROM sections ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var out []domain.Section
	for rows.Next() {
		var sec domain.Section
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.Description, &sec.Active); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *SectionStore) Get(ctx context.Context, id string) (domain.Section, error) {
	var sec domain.Section
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, active FROM sections WHERE id=$1`, id).
		Scan(&sec.ID, &sec.Name, &sec.Description, &sec.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Section{}, domain.ErrSectionNotFound
	}
	if err != nil {
		return domain.Section{}, fmt.Errorf("get section: %w", err)
	}
	return sec, nil
}

func (s *SectionStore) Put(ctx context.Context, section domain.Section) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO sections (id, name, description, active) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description, active=EXCLUDED.active`,
		section.ID, section.Name, section.Description, section.Active)
	if err != nil {
		return fmt.Errorf("put section: %w", err)
	}
	return nil
}

func (s *SectionStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sections WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"assessment-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BankLoader loads question bank JSONB from Postgres.
type BankLoader struct {
	pool *pgxpool.Pool
}

func NewBankLoader(pool *pgxpool.Pool) *BankLoader {
	return &BankLoader{pool: pool}
}

func (l *BankLoader) LoadBank(ctx context.Context, sectionID string) ([]domain.Question, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM question_banks WHERE section_id=$1`, sectionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSectionUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("load bank: %w", err)
	}
	var bank []domain.Question
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, fmt.Errorf("unmarshal bank: %w", err)
	}
	if len(bank) == 0 {
		return nil, domain.ErrSectionUnavailable
	}
	return bank, nil
}

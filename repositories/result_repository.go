package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wordlehub/wordle-tournaments/models"
)

var ErrResultUserInvalid = errors.New("result references an unknown user")

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	ListByUser(ctx context.Context, userID int) ([]models.Result, error)
}

type postgresResultRepository struct {
	db *sql.DB
}

func NewPostgresResultRepository(db *sql.DB) ResultRepository {
	return &postgresResultRepository{db: db}
}

func (r *postgresResultRepository) Create(ctx context.Context, res *models.Result) error {
	query := `
		INSERT INTO results (user_id, attempts, language, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, res.UserID, res.Attempts, res.Language, res.Date).
		Scan(&res.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrResultUserInvalid
		}
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

// ListByUser возвращает результаты пользователя в порядке добавления —
// движок подсчёта полагается на этот порядок только как на детерминированный.
func (r *postgresResultRepository) ListByUser(ctx context.Context, userID int) ([]models.Result, error) {
	query := `SELECT id, user_id, attempts, language, date FROM results WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var res models.Result
		if err := rows.Scan(&res.ID, &res.UserID, &res.Attempts, &res.Language, &res.Date); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

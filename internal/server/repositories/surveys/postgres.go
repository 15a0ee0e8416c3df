// Package surveys provides the PostgreSQL-backed survey repository.
package surveys

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

const selectColumns = `SELECT id, title, description, rewards, total_responses, status FROM surveys`

// PostgresRepository implements survey storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts survey and fills in the store-assigned ID.
func (r *PostgresRepository) Create(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	query :=
		`INSERT INTO surveys (title, description, rewards, total_responses, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		survey.Title, survey.Description, survey.Rewards, survey.TotalResponses, survey.Status).Scan(&survey.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return survey, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1`, id)
}

// GetByIDForUpdate reads the survey and locks its row until the enclosing
// transaction ends. Outside a transaction the lock is released immediately.
func (r *PostgresRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Survey, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, id int64) (*models.Survey, error) {
	s := &models.Survey{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&s.ID, &s.Title, &s.Description, &s.Rewards, &s.TotalResponses, &s.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

// List returns every survey ordered by ID.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.Survey, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select surveys: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Survey, 0)
	for rows.Next() {
		var s models.Survey
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Rewards, &s.TotalResponses, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites all mutable columns. A missing row yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, survey *models.Survey) error {
	query :=
		`UPDATE surveys
		 SET title = $2, description = $3, rewards = $4, total_responses = $5, status = $6
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		survey.ID, survey.Title, survey.Description, survey.Rewards, survey.TotalResponses, survey.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM surveys WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM surveys WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

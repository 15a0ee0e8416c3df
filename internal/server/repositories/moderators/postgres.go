package moderators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, moderator *models.Moderator) (*models.Moderator, error) {
	query :=
		`INSERT INTO moderators (name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, moderator.Name, moderator.Email, moderator.PasswordHash).Scan(&moderator.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return moderator, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Moderator, error) {
	return r.getOne(ctx, `SELECT id, name, email, password FROM moderators WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Moderator, error) {
	return r.getOne(ctx, `SELECT id, name, email, password FROM moderators WHERE email = $1`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Moderator, error) {
	m := &models.Moderator{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Moderator, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, password FROM moderators ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select moderators: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Moderator, 0)
	for rows.Next() {
		var m models.Moderator
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM moderators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Package participants provides the PostgreSQL-backed participant repository.
package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

const selectColumns = `SELECT id, name, email, password, reward, status FROM participants`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts participant. An already registered email yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, participant *models.Participant) (*models.Participant, error) {
	query :=
		`INSERT INTO participants (name, email, password, reward, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		participant.Name, participant.Email, participant.PasswordHash, participant.Reward, participant.Status).Scan(&participant.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return participant, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	return r.getOne(ctx, selectColumns+` WHERE email = $1`, email)
}

// GetByEmailForUpdate reads the participant and locks its row until the
// enclosing transaction ends.
func (r *PostgresRepository) GetByEmailForUpdate(ctx context.Context, email string) (*models.Participant, error) {
	return r.getOne(ctx, selectColumns+` WHERE email = $1 FOR UPDATE`, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Participant, error) {
	p, err := scanParticipant(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Participant, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select participants: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites name, reward and status. Email is the business key and
// the password hash is never rewritten here.
func (r *PostgresRepository) Update(ctx context.Context, participant *models.Participant) error {
	query :=
		`UPDATE participants
		 SET name = $2, reward = $3, status = $4
		 WHERE id = $1
		 `
	res, err := r.db.ExecContext(ctx, query,
		participant.ID, participant.Name, participant.Reward, participant.Status)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

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

type rowScanner interface {
	Scan(dest ...any) error
}

// scanParticipant reads one row; a NULL reward is read as zero.
func scanParticipant(row rowScanner) (*models.Participant, error) {
	var (
		p      models.Participant
		reward sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.PasswordHash, &reward, &p.Status); err != nil {
		return nil, err
	}
	p.Reward = int(reward.Int64)
	return &p, nil
}

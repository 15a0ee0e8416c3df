// Package responses provides the PostgreSQL-backed response repository.
package responses

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

const selectColumns = `SELECT id, participant_email, survey_id, response, description FROM participant_responses`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts response. A second response for the same survey and
// participant violates the composite unique key and yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, response *models.Response) (*models.Response, error) {
	query :=
		`INSERT INTO participant_responses (participant_email, survey_id, response, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		response.ParticipantEmail, response.SurveyID, response.Content, response.Description).Scan(&response.ID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return response, nil
}

func (r *PostgresRepository) ExistsBySurveyAndEmail(ctx context.Context, surveyID int64, email string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM participant_responses
		   WHERE survey_id = $1 AND participant_email = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, surveyID, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) ListByParticipantEmail(ctx context.Context, email string) ([]*models.Response, error) {
	return r.list(ctx, selectColumns+` WHERE participant_email = $1 ORDER BY id`, email)
}

func (r *PostgresRepository) ListBySurveyID(ctx context.Context, surveyID int64) ([]*models.Response, error) {
	return r.list(ctx, selectColumns+` WHERE survey_id = $1 ORDER BY id`, surveyID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg any) ([]*models.Response, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to select responses: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Response, 0)
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(&resp.ID, &resp.ParticipantEmail, &resp.SurveyID, &resp.Content, &resp.Description); err != nil {
			return nil, err
		}
		result = append(result, &resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

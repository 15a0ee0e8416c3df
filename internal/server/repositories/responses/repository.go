package responses

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

// Repository stores participant responses. There is no update or delete:
// a response is immutable once settled.
type Repository interface {
	Create(ctx context.Context, response *models.Response) (*models.Response, error)
	ExistsBySurveyAndEmail(ctx context.Context, surveyID int64, email string) (bool, error)
	ListByParticipantEmail(ctx context.Context, email string) ([]*models.Response, error)
	ListBySurveyID(ctx context.Context, surveyID int64) ([]*models.Response, error)
}

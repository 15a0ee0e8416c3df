package participants

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, participant *models.Participant) (*models.Participant, error)
	GetByID(ctx context.Context, id int64) (*models.Participant, error)
	GetByEmail(ctx context.Context, email string) (*models.Participant, error)
	GetByEmailForUpdate(ctx context.Context, email string) (*models.Participant, error)
	List(ctx context.Context) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
}

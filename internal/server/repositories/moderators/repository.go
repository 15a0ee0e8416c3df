package moderators

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, moderator *models.Moderator) (*models.Moderator, error)
	GetByID(ctx context.Context, id int64) (*models.Moderator, error)
	GetByEmail(ctx context.Context, email string) (*models.Moderator, error)
	List(ctx context.Context) ([]*models.Moderator, error)
	Delete(ctx context.Context, id int64) error
}

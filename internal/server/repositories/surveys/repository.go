package surveys

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, survey *models.Survey) (*models.Survey, error)
	GetByID(ctx context.Context, id int64) (*models.Survey, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Survey, error)
	List(ctx context.Context) ([]*models.Survey, error)
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

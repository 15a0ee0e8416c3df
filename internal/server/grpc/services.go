package grpc

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/services"
)

// The handlers depend on these narrow interfaces rather than on the concrete
// services, so tests can substitute fakes.

type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*services.LoginResult, error)
}

type SurveyService interface {
	Create(ctx context.Context, title, description string, rewards int, status string) (*models.Survey, error)
	Get(ctx context.Context, id int64) (*models.Survey, error)
	List(ctx context.Context) ([]*models.Survey, error)
	Delete(ctx context.Context, id int64) error
}

type ParticipantService interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.Participant, error)
	Get(ctx context.Context, id int64) (*models.Participant, error)
	GetByEmail(ctx context.Context, email string) (*models.Participant, error)
	List(ctx context.Context) ([]*models.Participant, error)
}

type ModeratorService interface {
	Add(ctx context.Context, name, email string, password []byte) (*models.Moderator, error)
	List(ctx context.Context) ([]*models.Moderator, error)
	Delete(ctx context.Context, id int64) error
}

type SettlementService interface {
	Submit(ctx context.Context, sub *models.Submission) (*models.Response, error)
}

type LedgerService interface {
	RewardsFor(ctx context.Context, email string) ([]*models.RewardEntry, error)
	ResponsesFor(ctx context.Context, surveyID int64) ([]*models.Response, error)
}

type ExportService interface {
	Export(ctx context.Context, surveyID int64) (*services.ExportResult, error)
}

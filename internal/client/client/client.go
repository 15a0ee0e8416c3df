package client

import (
	"context"

	"github.com/dmitrijs2005/surveychain/internal/client/models"
)

// Client is the CLI's view of the SurveyChain server.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout()
	ListSurveys(ctx context.Context) ([]models.Survey, error)
	Submit(ctx context.Context, surveyID int64, email, content, description string) (*models.Receipt, error)
	RewardsFor(ctx context.Context, email string) (*models.RewardStatement, error)
	ResponsesFor(ctx context.Context, surveyID int64) ([]models.Response, error)
	ExportResponses(ctx context.Context, surveyID int64) (*models.ExportLink, error)
}

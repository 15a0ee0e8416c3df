package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/surveychain/internal/client/client"
	"github.com/dmitrijs2005/surveychain/internal/client/config"
	"github.com/dmitrijs2005/surveychain/internal/client/models"
	"github.com/dmitrijs2005/surveychain/internal/common"
)

type App struct {
	config  *config.Config
	client  client.Client
	session *models.Session
	reader  *bufio.Reader
	out     io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewSurveyChainClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) isStaff() bool {
	return a.isLoggedIn() && (a.session.Role == common.RoleAdmin || a.session.Role == common.RoleModerator)
}

// withTimeout bounds a single command's server calls by the configured
// request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

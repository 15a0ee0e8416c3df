// Package server wires the SurveyChain server together: storage and
// migrations, the business services and the gRPC endpoint, and shuts it all
// down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/surveychain/internal/cryptox"
	"github.com/dmitrijs2005/surveychain/internal/logging"
	"github.com/dmitrijs2005/surveychain/internal/server/config"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/surveychain/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"

	gs "github.com/dmitrijs2005/surveychain/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	services gs.Services
}

// NewApp opens the database, applies migrations and builds the services.
// A missing SHA-256 implementation is reported here rather than on the
// first submission.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	digester, err := cryptox.NewSHA256Digester()
	if err != nil {
		return nil, fmt.Errorf("digest init error: %w", err)
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	surveys := services.NewSurveyService(db, rm)
	ledger := services.NewLedgerService(db, rm, logger)

	svc := gs.Services{
		Auth:         services.NewAuthService(db, rm, c),
		Surveys:      surveys,
		Participants: services.NewParticipantService(db, rm),
		Moderators:   services.NewModeratorService(db, rm),
		Settlement:   services.NewSettlementService(db, rm, digester, logger),
		Ledger:       ledger,
		Export:       services.NewExportService(surveys, ledger, c, logger),
	}

	return &App{config: c, logger: logger, db: db, services: svc}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}

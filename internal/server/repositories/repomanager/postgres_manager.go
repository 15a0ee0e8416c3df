// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/migrations"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/moderators"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/participants"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/responses"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/surveys"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Surveys returns a surveys.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Surveys(db dbx.DBTX) surveys.Repository {
	return surveys.NewPostgresRepository(db)
}

// Participants returns a participants.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Participants(db dbx.DBTX) participants.Repository {
	return participants.NewPostgresRepository(db)
}

// Responses returns a responses.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Responses(db dbx.DBTX) responses.Repository {
	return responses.NewPostgresRepository(db)
}

// Moderators returns a moderators.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Moderators(db dbx.DBTX) moderators.Repository {
	return moderators.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

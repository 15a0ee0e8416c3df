package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/moderators"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/participants"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/responses"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/surveys"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code
// path works against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Surveys(db dbx.DBTX) surveys.Repository
	Participants(db dbx.DBTX) participants.Repository
	Responses(db dbx.DBTX) responses.Repository
	Moderators(db dbx.DBTX) moderators.Repository
}

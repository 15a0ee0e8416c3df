package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/logging"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
)

// LedgerService is the read side of settlement. It only sees committed data
// and recomputes its views on every call.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *LedgerService {
	return &LedgerService{db: db, repomanager: m, logger: l.With("module", "ledger")}
}

// RewardsFor lists what email earned, one entry per response. Responses
// whose survey no longer exists are left out. A participant with no
// responses gets an empty slice.
func (s *LedgerService) RewardsFor(ctx context.Context, email string) ([]*models.RewardEntry, error) {
	responses, err := s.repomanager.Responses(s.db).ListByParticipantEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error listing responses: %w", err)
	}

	surveyRepo := s.repomanager.Surveys(s.db)
	cache := make(map[int64]*models.Survey)

	result := make([]*models.RewardEntry, 0, len(responses))
	for _, r := range responses {
		survey, ok := cache[r.SurveyID]
		if !ok {
			survey, err = surveyRepo.GetByID(ctx, r.SurveyID)
			if err != nil && !errors.Is(err, common.ErrorNotFound) {
				return nil, fmt.Errorf("error getting survey: %w", err)
			}
			cache[r.SurveyID] = survey
		}
		if survey == nil {
			s.logger.Debug(ctx, "skipping response of missing survey", "survey_id", r.SurveyID, "email", email)
			continue
		}

		result = append(result, &models.RewardEntry{
			SurveyID:         survey.ID,
			Title:            survey.Title,
			Description:      survey.Description,
			Points:           survey.Rewards,
			DigestedResponse: r.Content,
		})
	}

	return result, nil
}

// ResponsesFor lists every response to surveyID.
func (s *LedgerService) ResponsesFor(ctx context.Context, surveyID int64) ([]*models.Response, error) {
	responses, err := s.repomanager.Responses(s.db).ListBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("error listing responses: %w", err)
	}
	return responses, nil
}

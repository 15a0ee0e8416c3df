package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/cryptox"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/logging"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
)

// SettlementService accepts survey submissions. A submission is settled as
// one unit: the response row, the survey's response counter and the
// participant's reward balance change together or not at all.
type SettlementService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	digester    *cryptox.Digester
	logger      logging.Logger
}

func NewSettlementService(db *sql.DB, m repomanager.RepositoryManager, d *cryptox.Digester, l logging.Logger) *SettlementService {
	return &SettlementService{
		db:          db,
		repomanager: m,
		digester:    d,
		logger:      l.With("module", "settlement"),
	}
}

// HasSubmitted reports whether email already answered surveyID.
func (s *SettlementService) HasSubmitted(ctx context.Context, surveyID int64, email string) (bool, error) {
	ok, err := s.repomanager.Responses(s.db).ExistsBySurveyAndEmail(ctx, surveyID, email)
	if err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrPersistenceFailure, err)
	}
	return ok, nil
}

// Submit settles sub and returns the stored response, whose Content is the
// digest of sub.Content.
//
// Returned errors match exactly one of common.ErrInvalidRequest,
// common.ErrDuplicate, common.ErrSurveyNotFound, common.ErrParticipantNotFound
// or common.ErrPersistenceFailure. The last one also wraps the storage error.
func (s *SettlementService) Submit(ctx context.Context, sub *models.Submission) (*models.Response, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	submitted, err := s.HasSubmitted(ctx, sub.SurveyID, sub.ParticipantEmail)
	if err != nil {
		s.logger.Error(ctx, "duplicate check failed", "survey_id", sub.SurveyID, "error", err)
		return nil, err
	}
	if submitted {
		s.logger.Warn(ctx, "duplicate submission rejected", "survey_id", sub.SurveyID, "email", sub.ParticipantEmail)
		return nil, common.ErrDuplicate
	}

	response := &models.Response{
		ParticipantEmail: sub.ParticipantEmail,
		SurveyID:         sub.SurveyID,
		Content:          s.digester.Digest(sub.Content),
		Description:      sub.Description,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		surveyRepo := s.repomanager.Surveys(tx)
		participantRepo := s.repomanager.Participants(tx)
		responseRepo := s.repomanager.Responses(tx)

		survey, err := surveyRepo.GetByIDForUpdate(ctx, sub.SurveyID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrSurveyNotFound
			}
			return err
		}

		participant, err := participantRepo.GetByEmailForUpdate(ctx, sub.ParticipantEmail)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrParticipantNotFound
			}
			return err
		}

		if _, err := responseRepo.Create(ctx, response); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return common.ErrDuplicate
			}
			return err
		}

		survey.TotalResponses++
		if err := surveyRepo.Update(ctx, survey); err != nil {
			return err
		}

		participant.Reward += survey.Rewards
		return participantRepo.Update(ctx, participant)
	})
	if err != nil {
		return nil, s.classify(ctx, sub, err)
	}

	s.logger.Info(ctx, "response settled", "survey_id", sub.SurveyID, "email", sub.ParticipantEmail, "response_id", response.ID)
	return response, nil
}

// classify keeps the expected outcomes as they are and turns everything
// else into a persistence failure.
func (s *SettlementService) classify(ctx context.Context, sub *models.Submission, err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicate),
		errors.Is(err, common.ErrSurveyNotFound),
		errors.Is(err, common.ErrParticipantNotFound):
		s.logger.Warn(ctx, "submission rejected", "survey_id", sub.SurveyID, "email", sub.ParticipantEmail, "reason", err.Error())
		return err
	default:
		s.logger.Error(ctx, "submission rolled back", "survey_id", sub.SurveyID, "email", sub.ParticipantEmail, "error", err)
		return fmt.Errorf("%w: %w", common.ErrPersistenceFailure, err)
	}
}

func validateSubmission(sub *models.Submission) error {
	switch {
	case sub == nil:
		return fmt.Errorf("%w: empty request", common.ErrInvalidRequest)
	case sub.SurveyID <= 0:
		return fmt.Errorf("%w: survey id must be positive", common.ErrInvalidRequest)
	case strings.TrimSpace(sub.ParticipantEmail) == "":
		return fmt.Errorf("%w: participant email is required", common.ErrInvalidRequest)
	case sub.Content == "":
		return fmt.Errorf("%w: content is required", common.ErrInvalidRequest)
	}
	return nil
}

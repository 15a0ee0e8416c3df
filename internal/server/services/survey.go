package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
)

type SurveyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSurveyService(db *sql.DB, m repomanager.RepositoryManager) *SurveyService {
	return &SurveyService{db: db, repomanager: m}
}

// Create validates and stores a new survey. The response counter always
// starts at zero and a blank status becomes common.StatusActive.
func (s *SurveyService) Create(ctx context.Context, title, description string, rewards int, status string) (*models.Survey, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if utf8.RuneCountInString(description) > models.MaxSurveyDescriptionLength {
		return nil, fmt.Errorf("%w: description is longer than %d characters", common.ErrorValidation, models.MaxSurveyDescriptionLength)
	}
	if rewards < 0 {
		return nil, fmt.Errorf("%w: rewards must not be negative", common.ErrorValidation)
	}
	if status == "" {
		status = common.StatusActive
	}

	survey := &models.Survey{
		Title:       title,
		Description: description,
		Rewards:     rewards,
		Status:      status,
	}

	created, err := s.repomanager.Surveys(s.db).Create(ctx, survey)
	if err != nil {
		return nil, fmt.Errorf("error creating survey: %w", err)
	}
	return created, nil
}

// Get returns the survey or common.ErrSurveyNotFound.
func (s *SurveyService) Get(ctx context.Context, id int64) (*models.Survey, error) {
	survey, err := s.repomanager.Surveys(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrSurveyNotFound
		}
		return nil, fmt.Errorf("error getting survey: %w", err)
	}
	return survey, nil
}

func (s *SurveyService) List(ctx context.Context) ([]*models.Survey, error) {
	surveys, err := s.repomanager.Surveys(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}
	return surveys, nil
}

// Delete removes the survey. Its responses stay in place and drop out of
// reward ledgers.
func (s *SurveyService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Surveys(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrSurveyNotFound
		}
		return fmt.Errorf("error deleting survey: %w", err)
	}
	return nil
}

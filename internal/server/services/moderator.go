package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/cryptox"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
)

type ModeratorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewModeratorService(db *sql.DB, m repomanager.RepositoryManager) *ModeratorService {
	return &ModeratorService{db: db, repomanager: m}
}

func (s *ModeratorService) Add(ctx context.Context, name, email string, password []byte) (*models.Moderator, error) {
	defer common.WipeByteArray(password)

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	m, err := s.repomanager.Moderators(s.db).Create(ctx, &models.Moderator{
		Name:         name,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating moderator: %w", err)
	}
	return m, nil
}

func (s *ModeratorService) Get(ctx context.Context, id int64) (*models.Moderator, error) {
	m, err := s.repomanager.Moderators(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error getting moderator: %w", err)
	}
	return m, nil
}

func (s *ModeratorService) List(ctx context.Context) ([]*models.Moderator, error) {
	ms, err := s.repomanager.Moderators(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing moderators: %w", err)
	}
	return ms, nil
}

func (s *ModeratorService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Moderators(s.db).Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting moderator: %w", err)
	}
	return nil
}

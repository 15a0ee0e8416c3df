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

type ParticipantService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewParticipantService(db *sql.DB, m repomanager.RepositoryManager) *ParticipantService {
	return &ParticipantService{db: db, repomanager: m}
}

// Register creates a participant with a zero balance. The password is stored
// as an argon2id hash and the caller's buffer is wiped afterwards.
func (s *ParticipantService) Register(ctx context.Context, name, email string, password []byte) (*models.Participant, error) {
	defer common.WipeByteArray(password)

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorValidation)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrorValidation)
	}

	participant := &models.Participant{
		Name:         name,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		Reward:       0,
		Status:       common.StatusActive,
	}

	p, err := s.repomanager.Participants(s.db).Create(ctx, participant)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating participant: %w", err)
	}
	return p, nil
}

func (s *ParticipantService) Get(ctx context.Context, id int64) (*models.Participant, error) {
	p, err := s.repomanager.Participants(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error getting participant: %w", err)
	}
	return p, nil
}

func (s *ParticipantService) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	p, err := s.repomanager.Participants(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error getting participant: %w", err)
	}
	return p, nil
}

func (s *ParticipantService) List(ctx context.Context) ([]*models.Participant, error) {
	ps, err := s.repomanager.Participants(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	return ps, nil
}

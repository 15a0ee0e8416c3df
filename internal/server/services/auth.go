package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/cryptox"
	"github.com/dmitrijs2005/surveychain/internal/server/auth"
	"github.com/dmitrijs2005/surveychain/internal/server/config"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
)

// LoginResult is what a successful login hands back to the caller.
type LoginResult struct {
	AccessToken string
	Principal   models.Principal
}

// AuthService resolves credentials to a role and mints access tokens.
// Accounts are checked in order: the configured admin, moderators, participants.
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	adminEmail                  string
	adminPassword               []byte
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		adminEmail:                  cfg.AdminEmail,
		adminPassword:               []byte(cfg.AdminPassword),
	}
}

// Login verifies email and password. Unknown accounts and wrong passwords
// both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	defer common.WipeByteArray(password)

	principal, err := s.authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(principal.Email, principal.Role, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{AccessToken: token, Principal: *principal}, nil
}

func (s *AuthService) authenticate(ctx context.Context, email string, password []byte) (*models.Principal, error) {
	if email == "" {
		return nil, common.ErrorUnauthorized
	}

	if s.adminEmail != "" && email == s.adminEmail {
		if len(s.adminPassword) == 0 || subtle.ConstantTimeCompare(s.adminPassword, password) != 1 {
			return nil, common.ErrorUnauthorized
		}
		return &models.Principal{Email: email, Role: common.RoleAdmin}, nil
	}

	moderator, err := s.repomanager.Moderators(s.db).GetByEmail(ctx, email)
	switch {
	case err == nil:
		return s.checkPassword(moderator.PasswordHash, password, email, common.RoleModerator)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrorInternal
	}

	participant, err := s.repomanager.Participants(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return s.checkPassword(participant.PasswordHash, password, email, common.RoleParticipant)
}

func (s *AuthService) checkPassword(hash string, candidate []byte, email, role string) (*models.Principal, error) {
	ok, err := cryptox.VerifyPassword(hash, candidate)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}
	return &models.Principal{Email: email, Role: role}, nil
}

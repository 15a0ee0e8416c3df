package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/surveychain/internal/common"
	"github.com/dmitrijs2005/surveychain/internal/dbx"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/moderators"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/participants"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/responses"
	"github.com/dmitrijs2005/surveychain/internal/server/repositories/surveys"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// -------- test fakes --------

type fakeSurveysRepo struct {
	surveys.Repository
	byID      map[int64]*models.Survey
	getErr    error
	updateErr error
	created   []*models.Survey
	createErr error
	deleteErr error
	listOut   []*models.Survey
	updates   int
	locked    []int64
}

func (f *fakeSurveysRepo) get(id int64) (*models.Survey, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSurveysRepo) GetByID(ctx context.Context, id int64) (*models.Survey, error) {
	return f.get(id)
}

func (f *fakeSurveysRepo) GetByIDForUpdate(ctx context.Context, id int64) (*models.Survey, error) {
	f.locked = append(f.locked, id)
	return f.get(id)
}

func (f *fakeSurveysRepo) Update(ctx context.Context, s *models.Survey) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSurveysRepo) Create(ctx context.Context, s *models.Survey) (*models.Survey, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = int64(len(f.created) + 1)
	f.created = append(f.created, s)
	return s, nil
}

func (f *fakeSurveysRepo) List(ctx context.Context) ([]*models.Survey, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.listOut, nil
}

func (f *fakeSurveysRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

type fakeParticipantsRepo struct {
	participants.Repository
	byEmail   map[string]*models.Participant
	getErr    error
	updateErr error
	createErr error
	created   []*models.Participant
	updates   int
}

func (f *fakeParticipantsRepo) get(email string) (*models.Participant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeParticipantsRepo) GetByEmail(ctx context.Context, email string) (*models.Participant, error) {
	return f.get(email)
}

func (f *fakeParticipantsRepo) GetByEmailForUpdate(ctx context.Context, email string) (*models.Participant, error) {
	return f.get(email)
}

func (f *fakeParticipantsRepo) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.byEmail {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeParticipantsRepo) Create(ctx context.Context, p *models.Participant) (*models.Participant, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeParticipantsRepo) List(ctx context.Context) ([]*models.Participant, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*models.Participant, 0, len(f.byEmail))
	for _, p := range f.byEmail {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeParticipantsRepo) Update(ctx context.Context, p *models.Participant) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates++
	cp := *p
	f.byEmail[p.Email] = &cp
	return nil
}

type fakeResponsesRepo struct {
	responses.Repository
	stored    []*models.Response
	existsErr error
	createErr error
	listErr   error
}

func (f *fakeResponsesRepo) ExistsBySurveyAndEmail(ctx context.Context, surveyID int64, email string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	for _, r := range f.stored {
		if r.SurveyID == surveyID && r.ParticipantEmail == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResponsesRepo) Create(ctx context.Context, r *models.Response) (*models.Response, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	r.ID = int64(len(f.stored) + 1)
	cp := *r
	f.stored = append(f.stored, &cp)
	return r, nil
}

func (f *fakeResponsesRepo) ListByParticipantEmail(ctx context.Context, email string) ([]*models.Response, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Response, 0)
	for _, r := range f.stored {
		if r.ParticipantEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResponsesRepo) ListBySurveyID(ctx context.Context, surveyID int64) ([]*models.Response, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.Response, 0)
	for _, r := range f.stored {
		if r.SurveyID == surveyID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeModeratorsRepo struct {
	moderators.Repository
	byEmail   map[string]*models.Moderator
	getErr    error
	createErr error
	deleteErr error
}

func (f *fakeModeratorsRepo) GetByEmail(ctx context.Context, email string) (*models.Moderator, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	m, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return m, nil
}

func (f *fakeModeratorsRepo) GetByID(ctx context.Context, id int64) (*models.Moderator, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, m := range f.byEmail {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeModeratorsRepo) Create(ctx context.Context, m *models.Moderator) (*models.Moderator, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	m.ID = int64(len(f.byEmail) + 1)
	f.byEmail[m.Email] = m
	return m, nil
}

func (f *fakeModeratorsRepo) List(ctx context.Context) ([]*models.Moderator, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*models.Moderator, 0, len(f.byEmail))
	for _, m := range f.byEmail {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeModeratorsRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	s *fakeSurveysRepo
	p *fakeParticipantsRepo
	r *fakeResponsesRepo
	m *fakeModeratorsRepo
}

func (m *fakeRepoManager) Surveys(db dbx.DBTX) surveys.Repository           { return m.s }
func (m *fakeRepoManager) Participants(db dbx.DBTX) participants.Repository { return m.p }
func (m *fakeRepoManager) Responses(db dbx.DBTX) responses.Repository       { return m.r }
func (m *fakeRepoManager) Moderators(db dbx.DBTX) moderators.Repository     { return m.m }

// newFakeStore seeds survey 1 (10 points) and participant p1@example.com.
func newFakeStore() *fakeRepoManager {
	return &fakeRepoManager{
		s: &fakeSurveysRepo{byID: map[int64]*models.Survey{
			1: {ID: 1, Title: "S1", Description: "first survey", Rewards: 10, Status: common.StatusActive},
		}},
		p: &fakeParticipantsRepo{byEmail: map[string]*models.Participant{
			"p1@example.com": {ID: 1, Name: "P1", Email: "p1@example.com", Status: common.StatusActive},
		}},
		r: &fakeResponsesRepo{},
		m: &fakeModeratorsRepo{byEmail: map[string]*models.Moderator{}},
	}
}

// -------- helpers --------

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

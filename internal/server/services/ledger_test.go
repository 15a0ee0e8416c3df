package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/surveychain/internal/logging"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardsFor_JoinsResponsesWithSurveys(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeStore()
	rm.s.byID[2] = &models.Survey{ID: 2, Title: "S2", Description: "second", Rewards: 25}
	rm.r.stored = []*models.Response{
		{ID: 1, ParticipantEmail: "p1@example.com", SurveyID: 1, Content: digestYes},
		{ID: 2, ParticipantEmail: "p2@example.com", SurveyID: 1, Content: digestYes},
		{ID: 3, ParticipantEmail: "p1@example.com", SurveyID: 2, Content: "abc"},
	}

	got, err := NewLedgerService(db, rm, logging.Discard()).RewardsFor(context.Background(), "p1@example.com")
	require.NoError(t, err)

	want := []*models.RewardEntry{
		{SurveyID: 1, Title: "S1", Description: "first survey", Points: 10, DigestedResponse: digestYes},
		{SurveyID: 2, Title: "S2", Description: "second", Points: 25, DigestedResponse: "abc"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RewardsFor mismatch (-want +got):\n%s", diff)
	}
}

func TestRewardsFor_SkipsMissingSurveys(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeStore()
	rm.r.stored = []*models.Response{
		{ID: 1, ParticipantEmail: "p1@example.com", SurveyID: 42, Content: digestYes},
		{ID: 2, ParticipantEmail: "p1@example.com", SurveyID: 1, Content: digestYes},
	}

	got, err := NewLedgerService(db, rm, logging.Discard()).RewardsFor(context.Background(), "p1@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].SurveyID)
}

func TestRewardsFor_NoResponsesIsEmptyNotError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	got, err := NewLedgerService(db, newFakeStore(), logging.Discard()).RewardsFor(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRewardsFor_StorageErrorsSurface(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeStore()
	rm.r.listErr = errBoom{}
	_, err := NewLedgerService(db, rm, logging.Discard()).RewardsFor(context.Background(), "p1@example.com")
	require.ErrorIs(t, err, errBoom{})

	rm = newFakeStore()
	rm.r.stored = []*models.Response{{ID: 1, ParticipantEmail: "p1@example.com", SurveyID: 1}}
	rm.s.getErr = errBoom{}
	_, err = NewLedgerService(db, rm, logging.Discard()).RewardsFor(context.Background(), "p1@example.com")
	require.ErrorIs(t, err, errBoom{})
}

func TestResponsesFor(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeStore()
	rm.r.stored = []*models.Response{
		{ID: 1, ParticipantEmail: "p1@example.com", SurveyID: 1},
		{ID: 2, ParticipantEmail: "p2@example.com", SurveyID: 1},
		{ID: 3, ParticipantEmail: "p1@example.com", SurveyID: 2},
	}
	l := NewLedgerService(db, rm, logging.Discard())

	got, err := l.ResponsesFor(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = l.ResponsesFor(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

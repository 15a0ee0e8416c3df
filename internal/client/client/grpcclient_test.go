package client

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/surveychain/internal/client/models"
	"github.com/dmitrijs2005/surveychain/internal/common"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	// inputs captured
	lastMethod string
	lastIn     *structpb.Struct

	// outputs preset, by method
	out  map[string]map[string]any
	errs map[string]error
}

func (f *fakePB) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	f.lastMethod = method
	f.lastIn = in
	if err := f.errs[method]; err != nil {
		return nil, err
	}
	return pb.NewStruct(f.out[method])
}

func newFake(out map[string]map[string]any) (*GRPCClient, *fakePB) {
	f := &fakePB{out: out, errs: map[string]error{}}
	return &GRPCClient{client: f}, f
}

func statusErr(code codes.Code, sentinel error) error {
	st := status.New(code, sentinel.Error())
	return pb.StatusWithReason(st, sentinel).Err()
}

/*************
 * accessTokenInterceptor tests
 *************/

func TestInterceptor_AttachesToken(t *testing.T) {
	c := &GRPCClient{accessToken: "A1"}

	called := false
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		called = true
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Equal(t, []string{"A1"}, md.Get(common.AccessTokenHeaderName))
		return nil
	}

	err := c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker)
	require.NoError(t, err)
	require.True(t, called)
}

func TestInterceptor_ReplacesStaleToken(t *testing.T) {
	c := &GRPCClient{accessToken: "NEW"}
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "OLD")

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Equal(t, []string{"NEW"}, md.Get(common.AccessTokenHeaderName))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker))
}

func TestInterceptor_NoTokenBeforeLogin(t *testing.T) {
	c := &GRPCClient{}

	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		require.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}

	require.NoError(t, c.accessTokenInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
}

/*************
 * mapError
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.NoError(t, c.mapError(nil))
	require.ErrorIs(t, c.mapError(status.Error(codes.Unavailable, "down")), ErrUnavailable)
	require.ErrorIs(t, c.mapError(status.Error(codes.DeadlineExceeded, "slow")), ErrUnavailable)

	expired := c.mapError(statusErr(codes.Unauthenticated, common.ErrTokenExpired))
	require.ErrorIs(t, expired, ErrUnauthorized)
	require.ErrorIs(t, expired, common.ErrTokenExpired)

	require.ErrorIs(t, c.mapError(statusErr(codes.AlreadyExists, common.ErrDuplicate)), common.ErrDuplicate)
	require.ErrorIs(t, c.mapError(statusErr(codes.NotFound, common.ErrParticipantNotFound)), common.ErrParticipantNotFound)

	plain := status.Error(codes.Internal, "boom")
	require.Equal(t, plain, c.mapError(plain))
}

/*************
 * calls
 *************/

func TestPing(t *testing.T) {
	c, f := newFake(map[string]map[string]any{pb.MethodPing: {"status": "OK"}})
	require.NoError(t, c.Ping(context.Background()))
	require.Equal(t, pb.MethodPing, f.lastMethod)

	c, _ = newFake(map[string]map[string]any{pb.MethodPing: {"status": "DEGRADED"}})
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestLoginStoresTokenAndLogoutDropsIt(t *testing.T) {
	c, f := newFake(map[string]map[string]any{
		pb.MethodLogin: {"access_token": "tok", "email": "p1@example.com", "role": common.RoleParticipant},
	})

	s, err := c.Login(context.Background(), "p1@example.com", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, &models.Session{Email: "p1@example.com", Role: common.RoleParticipant}, s)
	assert.Equal(t, "tok", c.accessToken)
	assert.Equal(t, "pw", pb.String(f.lastIn, "password"))

	c.Logout()
	assert.Empty(t, c.accessToken)
}

func TestLogin_Rejected(t *testing.T) {
	c, f := newFake(nil)
	f.errs[pb.MethodLogin] = statusErr(codes.Unauthenticated, common.ErrorUnauthorized)

	_, err := c.Login(context.Background(), "p1@example.com", []byte("bad"))
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, c.accessToken)
}

func TestRegister(t *testing.T) {
	c, f := newFake(map[string]map[string]any{pb.MethodRegisterParticipant: {"id": 1}})

	require.NoError(t, c.Register(context.Background(), "P", "p@example.com", []byte("pw")))
	assert.Equal(t, "p@example.com", pb.String(f.lastIn, "email"))
	assert.Equal(t, "P", pb.String(f.lastIn, "name"))
}

func TestListSurveys(t *testing.T) {
	c, _ := newFake(map[string]map[string]any{
		pb.MethodListSurveys: {"surveys": []map[string]any{
			{"id": 1, "title": "S1", "description": "d1", "rewards": 10, "total_responses": 2, "status": "Active"},
		}},
	})

	got, err := c.ListSurveys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Survey{{ID: 1, Title: "S1", Description: "d1", Rewards: 10, TotalResponses: 2, Status: "Active"}}, got)
}

func TestSubmit(t *testing.T) {
	c, f := newFake(map[string]map[string]any{
		pb.MethodSubmit: {"id": 7, "survey_id": 3, "participant_email": "p1@example.com", "response": "abc"},
	})

	r, err := c.Submit(context.Background(), 3, "", "yes", "note")
	require.NoError(t, err)
	assert.Equal(t, &models.Receipt{ResponseID: 7, SurveyID: 3, Email: "p1@example.com", Digest: "abc"}, r)
	assert.Equal(t, int64(3), pb.Int64(f.lastIn, "survey_id"))
	assert.Equal(t, "yes", pb.String(f.lastIn, "content"))
}

func TestSubmit_Duplicate(t *testing.T) {
	c, f := newFake(nil)
	f.errs[pb.MethodSubmit] = statusErr(codes.AlreadyExists, common.ErrDuplicate)

	_, err := c.Submit(context.Background(), 3, "", "yes", "")
	require.ErrorIs(t, err, common.ErrDuplicate)
	require.False(t, errors.Is(err, common.ErrSurveyNotFound))
}

func TestRewardsFor(t *testing.T) {
	c, _ := newFake(map[string]map[string]any{
		pb.MethodRewardsFor: {
			"email": "p1@example.com",
			"total": 35,
			"rewards": []map[string]any{
				{"survey_id": 1, "title": "S1", "points": 10, "response": "d1"},
				{"survey_id": 2, "title": "S2", "points": 25, "response": "d2"},
			},
		},
	})

	st, err := c.RewardsFor(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 35, st.Total)
	require.Len(t, st.Entries, 2)
	assert.Equal(t, models.RewardEntry{SurveyID: 2, Title: "S2", Points: 25, Digest: "d2"}, st.Entries[1])
}

func TestRewardsFor_EmptyLedger(t *testing.T) {
	c, _ := newFake(map[string]map[string]any{
		pb.MethodRewardsFor: {"email": "p1@example.com", "total": 0, "rewards": []map[string]any{}},
	})

	st, err := c.RewardsFor(context.Background(), "p1@example.com")
	require.NoError(t, err)
	assert.NotNil(t, st.Entries)
	assert.Empty(t, st.Entries)
}

func TestResponsesForAndExport(t *testing.T) {
	c, _ := newFake(map[string]map[string]any{
		pb.MethodResponsesFor: {"responses": []map[string]any{
			{"id": 1, "survey_id": 4, "participant_email": "p1@example.com", "response": "d1", "description": ""},
		}},
		pb.MethodExportResponses: {"key": "exports/surveys/4/a.csv", "url": "https://s3/a", "rows": 1},
	})

	rs, err := c.ResponsesFor(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []models.Response{{ID: 1, SurveyID: 4, ParticipantEmail: "p1@example.com", Digest: "d1"}}, rs)

	link, err := c.ExportResponses(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, &models.ExportLink{Key: "exports/surveys/4/a.csv", URL: "https://s3/a", Rows: 1}, link)
}

func TestClose_WithoutConnection(t *testing.T) {
	c := &GRPCClient{}
	require.NoError(t, c.Close())
}

package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/client/models"
	"github.com/dmitrijs2005/surveychain/internal/common"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.SurveyChainClient
	accessToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.accessToken != "" {
		ctx = withAccessToken(ctx, s.accessToken)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewSurveyChainClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.accessTokenInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewSurveyChainClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) call(ctx context.Context, method string, fields map[string]any) (*structpb.Struct, error) {
	var in *structpb.Struct
	if fields != nil {
		var err error
		if in, err = pb.NewStruct(fields); err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
	}

	out, err := s.client.Call(ctx, method, in)
	if err != nil {
		return nil, s.mapError(err)
	}
	return out, nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.call(ctx, pb.MethodPing, nil)
	if err != nil {
		return err
	}

	if pb.String(resp, "status") != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, name, email string, password []byte) error {

	_, err := s.call(ctx, pb.MethodRegisterParticipant, map[string]any{
		"name":     name,
		"email":    email,
		"password": string(password),
	})
	return err
}

// Login authenticates and keeps the access token for later calls.
func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {

	resp, err := s.call(ctx, pb.MethodLogin, map[string]any{"email": email, "password": string(password)})
	if err != nil {
		return nil, err
	}

	s.accessToken = pb.String(resp, "access_token")

	return &models.Session{Email: pb.String(resp, "email"), Role: pb.String(resp, "role")}, nil
}

// Logout forgets the access token. Tokens are not revoked server side.
func (s *GRPCClient) Logout() {
	s.accessToken = ""
}

func (s *GRPCClient) ListSurveys(ctx context.Context) ([]models.Survey, error) {

	resp, err := s.call(ctx, pb.MethodListSurveys, nil)
	if err != nil {
		return nil, err
	}

	rows := pb.List(resp, "surveys")
	surveys := make([]models.Survey, 0, len(rows))
	for _, r := range rows {
		surveys = append(surveys, models.Survey{
			ID:             pb.Int64(r, "id"),
			Title:          pb.String(r, "title"),
			Description:    pb.String(r, "description"),
			Rewards:        pb.Int(r, "rewards"),
			TotalResponses: pb.Int(r, "total_responses"),
			Status:         pb.String(r, "status"),
		})
	}
	return surveys, nil
}

// Submit settles a response. An empty email lets the server use the
// caller's own.
func (s *GRPCClient) Submit(ctx context.Context, surveyID int64, email, content, description string) (*models.Receipt, error) {

	resp, err := s.call(ctx, pb.MethodSubmit, map[string]any{
		"survey_id":         surveyID,
		"participant_email": email,
		"content":           content,
		"description":       description,
	})
	if err != nil {
		return nil, err
	}

	return &models.Receipt{
		ResponseID: pb.Int64(resp, "id"),
		SurveyID:   pb.Int64(resp, "survey_id"),
		Email:      pb.String(resp, "participant_email"),
		Digest:     pb.String(resp, "response"),
	}, nil
}

func (s *GRPCClient) RewardsFor(ctx context.Context, email string) (*models.RewardStatement, error) {

	resp, err := s.call(ctx, pb.MethodRewardsFor, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}

	rows := pb.List(resp, "rewards")
	st := &models.RewardStatement{
		Email:   pb.String(resp, "email"),
		Entries: make([]models.RewardEntry, 0, len(rows)),
		Total:   pb.Int(resp, "total"),
	}
	for _, r := range rows {
		st.Entries = append(st.Entries, models.RewardEntry{
			SurveyID:    pb.Int64(r, "survey_id"),
			Title:       pb.String(r, "title"),
			Description: pb.String(r, "description"),
			Points:      pb.Int(r, "points"),
			Digest:      pb.String(r, "response"),
		})
	}
	return st, nil
}

func (s *GRPCClient) ResponsesFor(ctx context.Context, surveyID int64) ([]models.Response, error) {

	resp, err := s.call(ctx, pb.MethodResponsesFor, map[string]any{"survey_id": surveyID})
	if err != nil {
		return nil, err
	}

	rows := pb.List(resp, "responses")
	out := make([]models.Response, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Response{
			ID:               pb.Int64(r, "id"),
			SurveyID:         pb.Int64(r, "survey_id"),
			ParticipantEmail: pb.String(r, "participant_email"),
			Digest:           pb.String(r, "response"),
			Description:      pb.String(r, "description"),
		})
	}
	return out, nil
}

func (s *GRPCClient) ExportResponses(ctx context.Context, surveyID int64) (*models.ExportLink, error) {

	resp, err := s.call(ctx, pb.MethodExportResponses, map[string]any{"survey_id": surveyID})
	if err != nil {
		return nil, err
	}

	return &models.ExportLink{
		Key:  pb.String(resp, "key"),
		URL:  pb.String(resp, "url"),
		Rows: pb.Int(resp, "rows"),
	}, nil
}

// mapError turns a status error into something callers can match with
// errors.Is: transport failures become ErrUnavailable, rejected tokens
// ErrUnauthorized, and everything else the sentinel named by the status.
func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %w", ErrUnauthorized, pb.ErrorFromStatus(err))
	default:
		return pb.ErrorFromStatus(err)
	}
}

package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/surveychain/internal/common"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"github.com/dmitrijs2005/surveychain/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return reply(map[string]any{"status": "OK"})
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := pb.String(req, "email")

	res, err := s.services.Auth.Login(ctx, email, []byte(pb.String(req, "password")))
	if err != nil {
		s.logger.Warn(ctx, "login failed", "email", email)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "logged in", "email", email, "role", res.Principal.Role)
	return reply(map[string]any{
		"access_token": res.AccessToken,
		"email":        res.Principal.Email,
		"role":         res.Principal.Role,
	})
}

func (s *GRPCServer) RegisterParticipant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	s.logger.Info(ctx, "Registration request")

	p, err := s.services.Participants.Register(ctx, pb.String(req, "name"), pb.String(req, "email"), []byte(pb.String(req, "password")))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "email", p.Email)
	return reply(participantFields(p))
}

func (s *GRPCServer) GetParticipant(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		p   *models.Participant
		err error
	)
	if email := pb.String(req, "email"); email != "" {
		if err := requireSelfOrStaff(ctx, email); err != nil {
			return nil, toStatus(err)
		}
		p, err = s.services.Participants.GetByEmail(ctx, email)
	} else {
		if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
			return nil, toStatus(err)
		}
		p, err = s.services.Participants.Get(ctx, pb.Int64(req, "id"))
	}
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(participantFields(p))
}

func (s *GRPCServer) ListParticipants(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
		return nil, toStatus(err)
	}

	ps, err := s.services.Participants.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	rows := make([]map[string]any, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, participantFields(p))
	}
	return reply(map[string]any{"participants": rows})
}

func (s *GRPCServer) CreateSurvey(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
		return nil, toStatus(err)
	}

	survey, err := s.services.Surveys.Create(ctx,
		pb.String(req, "title"), pb.String(req, "description"), pb.Int(req, "rewards"), pb.String(req, "status"))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "survey created", "survey_id", survey.ID)
	return reply(surveyFields(survey))
}

func (s *GRPCServer) GetSurvey(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	survey, err := s.services.Surveys.Get(ctx, pb.Int64(req, "id"))
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(surveyFields(survey))
}

func (s *GRPCServer) ListSurveys(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	surveys, err := s.services.Surveys.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	rows := make([]map[string]any, 0, len(surveys))
	for _, survey := range surveys {
		rows = append(rows, surveyFields(survey))
	}
	return reply(map[string]any{"surveys": rows})
}

func (s *GRPCServer) DeleteSurvey(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
		return nil, toStatus(err)
	}

	id := pb.Int64(req, "id")
	if err := s.services.Surveys.Delete(ctx, id); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "survey deleted", "survey_id", id)
	return reply(map[string]any{})
}

func (s *GRPCServer) AddModerator(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin); err != nil {
		return nil, toStatus(err)
	}

	m, err := s.services.Moderators.Add(ctx, pb.String(req, "name"), pb.String(req, "email"), []byte(pb.String(req, "password")))
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(moderatorFields(m))
}

func (s *GRPCServer) ListModerators(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin); err != nil {
		return nil, toStatus(err)
	}

	ms, err := s.services.Moderators.List(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	rows := make([]map[string]any, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, moderatorFields(m))
	}
	return reply(map[string]any{"moderators": rows})
}

func (s *GRPCServer) DeleteModerator(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin); err != nil {
		return nil, toStatus(err)
	}

	if err := s.services.Moderators.Delete(ctx, pb.Int64(req, "id")); err != nil {
		return nil, toStatus(err)
	}
	return reply(map[string]any{})
}

// Submit settles a response. Participants may leave participant_email out;
// it then defaults to the token's email.
func (s *GRPCServer) Submit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := s.emailOrCaller(ctx, pb.String(req, "participant_email"))
	if err := requireSelfOrStaff(ctx, email); err != nil {
		return nil, toStatus(err)
	}

	resp, err := s.services.Settlement.Submit(ctx, &models.Submission{
		SurveyID:         pb.Int64(req, "survey_id"),
		ParticipantEmail: email,
		Content:          pb.String(req, "content"),
		Description:      pb.String(req, "description"),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return reply(responseFields(resp))
}

func (s *GRPCServer) RewardsFor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	email := s.emailOrCaller(ctx, pb.String(req, "email"))
	if err := requireSelfOrStaff(ctx, email); err != nil {
		return nil, toStatus(err)
	}

	entries, err := s.services.Ledger.RewardsFor(ctx, email)
	if err != nil {
		return nil, toStatus(err)
	}

	total := 0
	rows := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		total += e.Points
		rows = append(rows, map[string]any{
			"survey_id":   e.SurveyID,
			"title":       e.Title,
			"description": e.Description,
			"points":      e.Points,
			"response":    e.DigestedResponse,
		})
	}
	return reply(map[string]any{"email": email, "rewards": rows, "total": total})
}

func (s *GRPCServer) ResponsesFor(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
		return nil, toStatus(err)
	}

	responses, err := s.services.Ledger.ResponsesFor(ctx, pb.Int64(req, "survey_id"))
	if err != nil {
		return nil, toStatus(err)
	}

	rows := make([]map[string]any, 0, len(responses))
	for _, r := range responses {
		rows = append(rows, responseFields(r))
	}
	return reply(map[string]any{"responses": rows})
}

func (s *GRPCServer) ExportResponses(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := requireRole(ctx, common.RoleAdmin, common.RoleModerator); err != nil {
		return nil, toStatus(err)
	}

	res, err := s.services.Export.Export(ctx, pb.Int64(req, "survey_id"))
	if err != nil {
		return nil, toStatus(err)
	}
	return reply(map[string]any{"key": res.Key, "url": res.URL, "rows": res.Rows})
}

func (s *GRPCServer) emailOrCaller(ctx context.Context, email string) string {
	if email = strings.TrimSpace(email); email != "" {
		return email
	}
	if claims, ok := claimsFromContext(ctx); ok && claims.Role == common.RoleParticipant {
		return claims.Email
	}
	return ""
}

func reply(fields map[string]any) (*structpb.Struct, error) {
	out, err := pb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "encoding response")
	}
	return out, nil
}

func surveyFields(s *models.Survey) map[string]any {
	return map[string]any{
		"id":              s.ID,
		"title":           s.Title,
		"description":     s.Description,
		"rewards":         s.Rewards,
		"total_responses": s.TotalResponses,
		"status":          s.Status,
	}
}

func participantFields(p *models.Participant) map[string]any {
	return map[string]any{
		"id":     p.ID,
		"name":   p.Name,
		"email":  p.Email,
		"reward": p.Reward,
		"status": p.Status,
	}
}

func moderatorFields(m *models.Moderator) map[string]any {
	return map[string]any{"id": m.ID, "name": m.Name, "email": m.Email}
}

func responseFields(r *models.Response) map[string]any {
	return map[string]any{
		"id":                r.ID,
		"survey_id":         r.SurveyID,
		"participant_email": r.ParticipantEmail,
		"response":          r.Content,
		"description":       r.Description,
	}
}

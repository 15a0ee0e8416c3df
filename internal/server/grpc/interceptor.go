package grpc

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/surveychain/internal/common"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"github.com/dmitrijs2005/surveychain/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// publicMethods can be called without an access token.
var publicMethods = map[string]bool{
	pb.FullMethod(pb.MethodPing):                true,
	pb.FullMethod(pb.MethodLogin):               true,
	pb.FullMethod(pb.MethodRegisterParticipant): true,
	pb.FullMethod(pb.MethodListSurveys):         true,
	pb.FullMethod(pb.MethodGetSurvey):           true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	// health checks and other services are not ours to guard
	if publicMethods[info.FullMethod] || !isSurveyChainMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(accessToken, s.jwtSecret)
	if err != nil {
		st := status.New(codes.Unauthenticated, err.Error())
		return nil, pb.StatusWithReason(st, err).Err()
	}

	ctx = context.WithValue(ctx, claimsKey, claims)

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "request failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "request served", args...)
	}
	return resp, err
}

func isSurveyChainMethod(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+pb.ServiceName+"/")
}

func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// requireRole admits callers holding one of roles.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return common.ErrorUnauthorized
	}
	if !slices.Contains(roles, claims.Role) {
		return common.ErrorForbidden
	}
	return nil
}

// requireSelfOrStaff admits a participant acting on their own email, and any
// admin or moderator.
func requireSelfOrStaff(ctx context.Context, email string) error {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return common.ErrorUnauthorized
	}
	switch claims.Role {
	case common.RoleAdmin, common.RoleModerator:
		return nil
	case common.RoleParticipant:
		if claims.Email == email {
			return nil
		}
	}
	return errors.Join(common.ErrorForbidden, errors.New("participants may only act on their own account"))
}

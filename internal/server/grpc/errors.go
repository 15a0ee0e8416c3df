package grpc

import (
	"errors"

	"github.com/dmitrijs2005/surveychain/internal/common"
	pb "github.com/dmitrijs2005/surveychain/internal/proto"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus converts a service error into a gRPC status carrying an
// ErrorInfo reason. Causes of internal failures are not sent to the caller.
func toStatus(err error) error {
	var code codes.Code
	msg := err.Error()

	switch {
	// a persistence failure may wrap a storage cause; never leak it
	case errors.Is(err, common.ErrPersistenceFailure):
		code, msg = codes.Internal, common.ErrPersistenceFailure.Error()
	case errors.Is(err, common.ErrInvalidRequest), errors.Is(err, common.ErrorValidation):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrDuplicate), errors.Is(err, common.ErrorAlreadyExists):
		code = codes.AlreadyExists
	case errors.Is(err, common.ErrSurveyNotFound), errors.Is(err, common.ErrParticipantNotFound), errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrorUnauthorized):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrorForbidden):
		code = codes.PermissionDenied
	default:
		code, msg = codes.Internal, "internal error"
	}

	return pb.StatusWithReason(status.New(code, msg), err).Err()
}

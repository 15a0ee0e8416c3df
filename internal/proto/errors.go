package proto

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// ErrorDomain is set on the ErrorInfo detail attached to failed calls.
const ErrorDomain = "surveychain.v1"

// reasons pairs ErrorInfo reasons with the sentinel errors they stand for.
var reasons = []struct {
	reason string
	err    error
}{
	{"DUPLICATE", common.ErrDuplicate},
	{"SURVEY_NOT_FOUND", common.ErrSurveyNotFound},
	{"PARTICIPANT_NOT_FOUND", common.ErrParticipantNotFound},
	{"INVALID_REQUEST", common.ErrInvalidRequest},
	{"PERSISTENCE_FAILURE", common.ErrPersistenceFailure},
	{"VALIDATION", common.ErrorValidation},
	{"ALREADY_EXISTS", common.ErrorAlreadyExists},
	{"NOT_FOUND", common.ErrorNotFound},
	{"UNAUTHORIZED", common.ErrorUnauthorized},
	{"FORBIDDEN", common.ErrorForbidden},
	{"TOKEN_EXPIRED", common.ErrTokenExpired},
	{"INVALID_TOKEN", common.ErrInvalidToken},
}

// ReasonFor returns the ErrorInfo reason for err, or "" if err matches no
// known sentinel.
func ReasonFor(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ""
}

// ErrorFromStatus turns a gRPC status error back into an error matching the
// sentinel named by its ErrorInfo detail. Errors without a known reason are
// returned unchanged.
func ErrorFromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		for _, r := range reasons {
			if r.reason == info.GetReason() {
				return fmt.Errorf("%w: %s", r.err, st.Message())
			}
		}
	}
	return err
}

// StatusWithReason attaches an ErrorInfo detail naming err's sentinel to st.
func StatusWithReason(st *status.Status, err error) *status.Status {
	reason := ReasonFor(err)
	if reason == "" {
		return st
	}
	withDetails, dErr := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain})
	if dErr != nil {
		return st
	}
	return withDetails
}

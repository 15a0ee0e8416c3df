// Package client talks to the SurveyChain server on behalf of the CLI.
//
// GRPCClient keeps the access token obtained by Login and attaches it to
// every outgoing call through a unary interceptor. Server failures come
// back as errors matching the sentinels in internal/common (ErrDuplicate,
// ErrSurveyNotFound and so on), recovered from the status details, so
// callers can branch with errors.Is. Transport problems are reported as
// ErrUnavailable and rejected credentials as ErrUnauthorized.
package client

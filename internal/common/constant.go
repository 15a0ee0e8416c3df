package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// StatusActive is the default status for new surveys and participants.
const StatusActive = "Active"

// Roles carried in access tokens.
const (
	RoleAdmin       = "ADMIN"
	RoleModerator   = "MODERATOR"
	RoleParticipant = "PARTICIPANT"
)

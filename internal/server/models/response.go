package models

// Response is one participant's answer to one survey. Content holds the
// digest of what was submitted, never the submitted text itself.
// Responses are never updated.
type Response struct {
	ID               int64
	ParticipantEmail string
	SurveyID         int64
	Content          string
	Description      string
}

// Submission is the inbound request settled by the settlement service.
// Content is raw here and is digested before it reaches storage.
type Submission struct {
	SurveyID         int64
	ParticipantEmail string
	Content          string
	Description      string
}

// RewardEntry is one row of a participant's reward ledger: a response joined
// with the survey that paid for it.
type RewardEntry struct {
	SurveyID         int64
	Title            string
	Description      string
	Points           int
	DigestedResponse string
}

// Package models holds the client-side view of SurveyChain records as they
// arrive over the wire.
package models

type Survey struct {
	ID             int64
	Title          string
	Description    string
	Rewards        int
	TotalResponses int
	Status         string
}

// Receipt acknowledges a settled submission. Digest is what the server
// stored in place of the submitted content.
type Receipt struct {
	ResponseID int64
	SurveyID   int64
	Email      string
	Digest     string
}

type RewardEntry struct {
	SurveyID    int64
	Title       string
	Description string
	Points      int
	Digest      string
}

// RewardStatement is a participant's ledger with its running total.
type RewardStatement struct {
	Email   string
	Entries []RewardEntry
	Total   int
}

type Response struct {
	ID               int64
	SurveyID         int64
	ParticipantEmail string
	Digest           string
	Description      string
}

// ExportLink points at an uploaded CSV export.
type ExportLink struct {
	Key  string
	URL  string
	Rows int
}

// Session is the identity returned by a successful login.
type Session struct {
	Email string
	Role  string
}

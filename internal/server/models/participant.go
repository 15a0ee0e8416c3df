package models

// Participant is a registered respondent. Email is the business key used by
// responses; Reward is the running balance credited on every settlement.
type Participant struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Reward       int
	Status       string
}

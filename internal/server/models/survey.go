package models

// MaxSurveyDescriptionLength bounds Survey.Description (column length).
const MaxSurveyDescriptionLength = 1000

// Survey is a questionnaire that pays a fixed Rewards amount per response.
type Survey struct {
	ID             int64
	Title          string
	Description    string
	Rewards        int
	TotalResponses int
	Status         string
}

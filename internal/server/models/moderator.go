package models

// Moderator manages surveys and participants on behalf of the admin.
type Moderator struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// Principal is the authenticated caller resolved at login.
type Principal struct {
	Email string
	Role  string
}

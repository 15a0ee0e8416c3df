// Package models defines server-side records persisted in the database and
// the read models derived from them.
package models

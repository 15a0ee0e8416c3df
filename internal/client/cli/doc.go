// Package cli provides the interactive SurveyChain command-line client.
//
// It wires configuration, the gRPC client and a small REPL. Participants
// log in, browse surveys, submit answers and check their reward ledger;
// admins and moderators can additionally list the responses to a survey
// and export them to CSV.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli

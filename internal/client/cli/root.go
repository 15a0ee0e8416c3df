package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", a.session.Email, a.session.Role)
}

// Root runs the REPL until the user exits or stdin is closed.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to SurveyChain CLI (type 'help' for commands)")

	pingCtx, cancel := a.withTimeout(ctx)
	if err := a.client.Ping(pingCtx); err != nil {
		log.Printf("Server is not reachable: %s", err.Error())
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/surveychain/internal/common"
)

// getSimpleText, getPassword, getMultiline and getID are indirections used
// to facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getID         = GetID
)

// Register prompts for a name, an email and a password and creates a
// participant account. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.client.Register(ctx, name, email, password); err != nil {
		a.report("Registration failed", err)
		return err
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login prompts for credentials and starts a session. The password is
// wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	session, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.report("Login unsuccessful", err)
		return err
	}

	a.session = session
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", session.Email, session.Role)
	return nil
}

// Logout drops the session and the client's access token.
func (a *App) Logout(ctx context.Context) error {
	a.client.Logout()
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fraudshield/internal/client/auth"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password and authenticates. The password
// bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.ttyFd, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if _, err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	a.printf("Welcome back, %s\n", a.getStatus())
	return nil
}

// Signup prompts for name, email and password and registers an account.
// It prints the server's confirmation; it never logs in.
func (a *App) Signup(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Full Name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.ttyFd, a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	conf, err := a.session.Signup(ctx, name, email, string(password))
	if err != nil {
		return err
	}

	a.printf("%s\n", conf.Message)
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// WhoAmI prints the session state and when the credential was stored.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.session.State()
	a.printf("%s\n", auth.Describe(st))
	if _, anonymous := st.(auth.Anonymous); anonymous {
		return nil
	}

	at, ok, err := a.tokens.SavedAt(ctx)
	if err != nil {
		return err
	}
	if ok {
		a.printf("session saved %s\n", at.Local().Format(time.DateTime))
	}
	return nil
}

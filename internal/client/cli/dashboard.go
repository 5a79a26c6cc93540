package cli

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/dmitrijs2005/fraudshield/internal/client/views"
)

var errAdminOnly = errors.New("admin access required")

// Dashboard loads and prints the view set for the current session.
func (a *App) Dashboard(ctx context.Context) error {
	vs := a.router.Route(a.session.State())
	defer views.UnmountAll(vs)

	if _, ok := vs.(views.AuthViews); ok {
		a.printf("Log in or sign up to see your dashboard\n")
		return nil
	}

	// Render whatever loaded, then report the first failure.
	err := views.MountAll(ctx, vs)

	switch v := vs.(type) {
	case views.AdminViews:
		renderAnalytics(a.out, v.Analytics)
		renderUsers(a.out, v.Users.Users())
	case views.UserViews:
		renderHistory(a.out, v.History.Records())
	}
	return err
}

// DeleteUser removes an account after confirmation, unless assumeYes, and
// prints the refreshed user list.
func (a *App) DeleteUser(ctx context.Context, id int64, assumeYes bool) error {
	vs, ok := a.router.Route(a.session.State()).(views.AdminViews)
	if !ok {
		return errAdminOnly
	}

	users := vs.Users
	if err := users.Mount(ctx); err != nil {
		return err
	}
	defer users.Unmount()

	var c views.Confirmer = confirmer{reader: a.reader, out: a.out}
	if assumeYes {
		c = views.ConfirmFunc(func(string) (bool, error) { return true, nil })
	}

	err := users.Delete(ctx, id, c)
	renderUsers(a.out, users.Users())
	return err
}

type confirmer struct {
	reader *bufio.Reader
	out    io.Writer
}

func (c confirmer) Confirm(prompt string) (bool, error) {
	return Confirm(c.reader, prompt, c.out)
}

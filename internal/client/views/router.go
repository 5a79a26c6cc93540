package views

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/fraudshield/internal/client/auth"
	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// ViewSet is what a principal is allowed to see.
type ViewSet interface {
	Views() []View
	viewSet()
}

// AuthViews is shown to anonymous callers: login and signup only.
type AuthViews struct{}

// AdminViews is the admin dashboard.
type AdminViews struct {
	Analytics *AnalyticsView
	Users     *UsersView
}

// UserViews is the regular user dashboard.
type UserViews struct {
	History *HistoryView
}

func (AuthViews) Views() []View    { return nil }
func (a AdminViews) Views() []View { return []View{a.Analytics, a.Users} }
func (u UserViews) Views() []View  { return []View{u.History} }

func (AuthViews) viewSet()  {}
func (AdminViews) viewSet() {}
func (UserViews) viewSet()  {}

// Router builds the view set for a session state.
type Router struct {
	api     client.Client
	session Session
	log     logging.Logger
}

func NewRouter(api client.Client, s Session, log logging.Logger) *Router {
	if log == nil {
		log = logging.Nop()
	}
	return &Router{api: api, session: s, log: log}
}

// Route maps a state to its view set. Admins get analytics and user
// management, users get their history, anyone else the auth views.
func (r *Router) Route(st auth.State) ViewSet {
	switch st.(type) {
	case auth.Admin:
		return AdminViews{
			Analytics: NewAnalyticsView(r.api, r.session, r.log),
			Users:     NewUsersView(r.api, r.session, r.log),
		}
	case auth.User:
		return UserViews{History: NewHistoryView(r.api, r.session, r.log)}
	default:
		return AuthViews{}
	}
}

// MountAll mounts every view of vs concurrently. All views are mounted even
// if one fails; the first error is returned.
func MountAll(ctx context.Context, vs ViewSet) error {
	var g errgroup.Group
	for _, v := range vs.Views() {
		g.Go(func() error {
			if err := v.Mount(ctx); err != nil {
				return fmt.Errorf("%s: %w", v.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

// UnmountAll ends the lifetime of every view of vs.
func UnmountAll(vs ViewSet) {
	for _, v := range vs.Views() {
		v.Unmount()
	}
}

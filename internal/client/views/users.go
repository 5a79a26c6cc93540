package views

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fraudshield/internal/client/client"
	"github.com/dmitrijs2005/fraudshield/internal/client/models"
	"github.com/dmitrijs2005/fraudshield/internal/logging"
)

// DeletePrompt is the question put to the operator before a deletion.
const DeletePrompt = "Delete this user?"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// UsersView lists accounts and deletes them on confirmation.
type UsersView struct {
	loader[[]models.UserRecord]
	api client.Client
}

func NewUsersView(api client.Client, s Session, log logging.Logger) *UsersView {
	v := &UsersView{api: api}
	v.setup("users", s, log, func(ctx context.Context, token string) ([]models.UserRecord, error) {
		return api.Users(ctx, token)
	})
	return v
}

// Users returns the loaded accounts in server order.
func (v *UsersView) Users() []models.UserRecord {
	u, _ := v.snapshot()
	return u
}

// Delete asks for confirmation and removes the account. A declined prompt
// does nothing. Otherwise the list is re-fetched whatever the outcome of the
// deletion; the returned error is the deletion error if there was one.
func (v *UsersView) Delete(ctx context.Context, id int64, c Confirmer) error {
	ok, err := c.Confirm(DeletePrompt)
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		v.log.Debug(ctx, "delete declined", "user_id", id)
		return nil
	}

	v.mu.Lock()
	lctx := v.ctx
	v.mu.Unlock()
	if lctx == nil {
		return ErrNotMounted
	}

	delErr := v.api.DeleteUser(lctx, v.session.Snapshot().Token, id)
	if delErr != nil {
		v.log.Warn(ctx, "delete failed", "user_id", id, "error", delErr)
	} else {
		v.log.Info(ctx, "user deleted", "user_id", id)
	}

	loadErr := v.reload()
	if delErr != nil {
		return fmt.Errorf("delete user %d: %w", id, delErr)
	}
	return loadErr
}

// Package lifecycle makes sure that every actor a test creates in the remote service is deleted
// again when the test ends.
package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/model"

	"go.uber.org/multierr"
)

// Deleter deletes the user that owns the given access token. *apiclient.Client implements it.
type Deleter interface {
	DeleteUser(ctx context.Context, token string) error
}

// Tracker collects actors for cleanup. Track may be called concurrently from any number of
// goroutines.
type Tracker struct {
	deleter Deleter
	logger  framework.Logger
	users   []*model.User
	lock    sync.Mutex
}

func NewTracker(deleter Deleter, logger framework.Logger) *Tracker {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Tracker{deleter: deleter, logger: logger}
}

// Track registers an actor for cleanup. Tracking the same actor again has no effect.
func (t *Tracker) Track(user *model.User) {
	if user == nil || !user.MarkTracked() {
		return
	}
	t.lock.Lock()
	t.users = append(t.users, user)
	t.lock.Unlock()
}

// Len returns the number of tracked actors.
func (t *Tracker) Len() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.users)
}

type action struct {
	description string
	run         func(context.Context) error
}

// CleanupAll deletes every tracked actor that holds tokens. Every deletion is attempted regardless
// of whether earlier ones failed; the returned error combines all failures and can be split with
// multierr.Errors. The tracked set is emptied either way.
func (t *Tracker) CleanupAll(ctx context.Context) error {
	t.lock.Lock()
	users := t.users
	t.users = nil
	t.lock.Unlock()

	var actions []action
	for _, u := range users {
		u := u
		token := u.AccessToken()
		if token == "" {
			t.logger.Printf("Not deleting %s: it was never authenticated", u)
			continue
		}
		actions = append(actions, action{
			description: fmt.Sprintf("delete user %s", u),
			run: func(ctx context.Context) error {
				if err := t.deleter.DeleteUser(ctx, token); err != nil {
					return err
				}
				u.MarkDeleted()
				return nil
			},
		})
	}

	var errs error
	for _, a := range actions {
		if err := a.run(ctx); err != nil {
			t.logger.Printf("Cleanup failed: %s: %s", a.description, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", a.description, err))
			continue
		}
		t.logger.Printf("Cleanup: %s", a.description)
	}
	return errs
}

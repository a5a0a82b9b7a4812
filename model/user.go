// Package model holds the in-memory state the harness keeps about what it has asked the API to do:
// the actors it created and the orders it submitted.
package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/orderapi/contract-tests/apidef"
)

// State is where an actor is in its lifecycle.
type State int

const (
	Unregistered State = iota
	Registered
	Reauthenticated
	PendingDeletion
	Deleted
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case Registered:
		return "registered"
	case Reauthenticated:
		return "reauthenticated"
	case PendingDeletion:
		return "pending deletion"
	case Deleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Credentials are the user-chosen attributes of an actor.
type Credentials struct {
	Email    string
	Name     string
	Password string
}

// NormalizedEmail is the email as the API stores and returns it.
func (c Credentials) NormalizedEmail() string {
	return strings.ToLower(c.Email)
}

// TokenPair is the pair of tokens issued by a successful register or login. It is never modified
// after creation; a new authentication replaces it as a whole.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether no tokens have been issued.
func (p TokenPair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// User is an actor created by a test. Its methods are safe for concurrent use, since cleanup may
// read the tokens from a different goroutine than the scenario that owns the actor.
type User struct {
	creds      Credentials
	tokens     TokenPair
	state      State
	authorized bool
	tracked    bool
	lock       sync.Mutex
}

// NewUser returns an Unregistered actor with the given credentials.
func NewUser(creds Credentials) *User {
	return &User{creds: creds}
}

func (u *User) Credentials() Credentials {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.creds
}

// SetCredentials records credentials that the API has accepted through PATCH /auth/user.
func (u *User) SetCredentials(creds Credentials) {
	u.lock.Lock()
	u.creds = creds
	u.lock.Unlock()
}

// Tokens returns the most recently remembered token pair.
func (u *User) Tokens() TokenPair {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.tokens
}

// AccessToken is shorthand for Tokens().AccessToken.
func (u *User) AccessToken() string {
	return u.Tokens().AccessToken
}

// RememberTokens replaces the actor's token pair. The first call moves the actor to Registered and
// later ones to Reauthenticated, unless it is already tracked for deletion.
func (u *User) RememberTokens(pair TokenPair) {
	u.lock.Lock()
	defer u.lock.Unlock()
	u.tokens = pair
	if u.authorized {
		u.setStateLocked(Reauthenticated)
	} else {
		u.setStateLocked(Registered)
	}
	u.authorized = true
}

// RememberAuthResponse takes the token pair from a register or login response.
func (u *User) RememberAuthResponse(resp apidef.AuthResponse) {
	u.RememberTokens(TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})
}

// MarkTracked is called by the lifecycle tracker. It reports false if the actor was already tracked.
func (u *User) MarkTracked() bool {
	u.lock.Lock()
	defer u.lock.Unlock()
	if u.tracked {
		return false
	}
	u.tracked = true
	if u.state != Deleted {
		u.state = PendingDeletion
	}
	return true
}

// MarkDeleted is called once the API has confirmed deletion of the actor.
func (u *User) MarkDeleted() {
	u.lock.Lock()
	u.state = Deleted
	u.lock.Unlock()
}

func (u *User) State() State {
	u.lock.Lock()
	defer u.lock.Unlock()
	return u.state
}

// RegistrationParams projects the actor onto the register/update payload.
func (u *User) RegistrationParams() apidef.RegistrationParams {
	c := u.Credentials()
	return apidef.NewRegistrationParams(c.Email, c.Name, c.Password)
}

// LoginParams projects the actor onto the login payload.
func (u *User) LoginParams() apidef.LoginParams {
	c := u.Credentials()
	return apidef.NewLoginParams(c.Email, c.Password)
}

func (u *User) String() string {
	c := u.Credentials()
	return fmt.Sprintf("%s <%s>", c.Name, c.Email)
}

func (u *User) setStateLocked(s State) {
	// a tracked actor stays pending deletion however often it logs in
	if u.state == PendingDeletion || u.state == Deleted {
		return
	}
	u.state = s
}

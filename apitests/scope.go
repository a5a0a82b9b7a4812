package apitests

import (
	"context"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/fixtures"
	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/lifecycle"
	"github.com/orderapi/contract-tests/model"
	"github.com/orderapi/contract-tests/verify"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// T represents a test or subtest in the order API suite.
//
// It implements the same basic functionality as Go's testing.T, on top of the framework package,
// so that it can be passed to assert and require. It also owns what a scenario needs to talk to the
// API: a client whose request logs go to this test's debug output, and a lifecycle tracker. Every
// actor created through NewActor is tracked at once and deleted when the test ends, whether it
// passed or not. A failed deletion is reported as a warning and does not fail the test.
type T struct {
	context *framework.Context
	harness *Harness
	client  *apiclient.Client
	tracker *lifecycle.Tracker
	ctx     context.Context
}

func newTestScope(c *framework.Context, harness *Harness) *T {
	logger := framework.MultiLogger(
		c.DebugLogger(),
		framework.PrefixedLogger("["+c.ID().String()+"] ", harness.config.Logger),
	)
	client := harness.config.Client.WithLogger(logger)
	t := &T{
		context: c,
		harness: harness,
		client:  client,
		tracker: lifecycle.NewTracker(client, logger),
		ctx:     context.Background(),
	}
	c.Defer(t.cleanup)
	return t
}

func (t *T) cleanup() {
	if err := t.tracker.CleanupAll(t.ctx); err != nil {
		for _, e := range multierr.Errors(err) {
			t.context.Warn("cleanup: " + e.Error())
		}
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. The subtest gets its own tracker, so its actors are deleted when it ends
// rather than when the parent ends.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Skip ends the test without failing it.
func (t *T) Skip(reason string) {
	t.context.SkipWithReason(reason)
}

func (t *T) Ctx() context.Context {
	return t.ctx
}

func (t *T) Client() *apiclient.Client {
	return t.client
}

func (t *T) SortDirection() verify.Direction {
	return t.harness.config.SortDirection
}

// Catalog returns the ingredient catalog, failing the test if it cannot be fetched.
func (t *T) Catalog() model.Catalog {
	catalog, err := t.harness.Catalog(t.ctx)
	require.NoError(t, err, "fetching ingredient catalog")
	return catalog
}

// RandomOrder builds an order of n ingredients at distinct catalog positions, skipping the test if
// the catalog is too small.
func (t *T) RandomOrder(n int) model.Order {
	items, err := fixtures.PickDistinct(t.Catalog().Items(), n)
	if err != nil {
		t.Skip(err.Error())
	}
	return model.NewOrder(items...)
}

// NewActor returns a new actor with random credentials, already tracked for cleanup. It has not
// been registered.
func (t *T) NewActor() *model.User {
	u := fixtures.NewUser()
	t.tracker.Track(u)
	t.Debug("Created actor %s", u)
	return u
}

// RegisterActor returns a new actor that has been registered, failing the test otherwise.
func (t *T) RegisterActor() *model.User {
	u := t.NewActor()
	t.Register(u)
	return u
}

// Register registers the actor with its credentials and remembers its tokens.
func (t *T) Register(u *model.User) apidef.AuthResponse {
	resp, err := t.client.Register(t.ctx, u.RegistrationParams(), 200)
	require.NoError(t, err)
	return t.rememberAuth(u, resp)
}

// Login logs the actor in with its current credentials and remembers the new tokens.
func (t *T) Login(u *model.User) apidef.AuthResponse {
	resp, err := t.client.Login(t.ctx, u.LoginParams(), 200)
	require.NoError(t, err)
	return t.rememberAuth(u, resp)
}

func (t *T) rememberAuth(u *model.User, resp *apiclient.Response) apidef.AuthResponse {
	var auth apidef.AuthResponse
	require.NoError(t, resp.Decode(&auth))
	require.True(t, auth.Success, "success flag")
	u.RememberAuthResponse(auth)
	return auth
}

// PlaceOrder submits the order as the actor and decodes the result.
func (t *T) PlaceOrder(u *model.User, order model.Order) apidef.CreateOrderResponse {
	resp, err := t.client.CreateOrder(t.ctx, u.AccessToken(), order.Params(), 200)
	require.NoError(t, err)
	var created apidef.CreateOrderResponse
	require.NoError(t, resp.Decode(&created))
	return created
}

// ListOrders fetches the actor's order listing.
func (t *T) ListOrders(u *model.User) apidef.OrdersResponse {
	resp, err := t.client.ListOrders(t.ctx, u.AccessToken(), 200)
	require.NoError(t, err)
	var list apidef.OrdersResponse
	require.NoError(t, resp.Decode(&list))
	return list
}

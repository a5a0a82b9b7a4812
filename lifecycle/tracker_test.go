package lifecycle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/model"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type fakeDeleter struct {
	failFor map[string]error
	deleted []string
	lock    sync.Mutex
}

func (f *fakeDeleter) DeleteUser(_ context.Context, token string) error {
	if err := f.failFor[token]; err != nil {
		return err
	}
	f.lock.Lock()
	f.deleted = append(f.deleted, token)
	f.lock.Unlock()
	return nil
}

func authedUser(token string) *model.User {
	u := model.NewUser(model.Credentials{Email: token + "@example.com", Name: token})
	u.RememberTokens(model.TokenPair{AccessToken: token, RefreshToken: "r-" + token})
	return u
}

func TestTrackIsIdempotent(t *testing.T) {
	tr := NewTracker(&fakeDeleter{}, nil)
	u := authedUser("a")
	tr.Track(u)
	tr.Track(u)
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, model.PendingDeletion, u.State())
}

func TestConcurrentTrackLosesNothing(t *testing.T) {
	tr := NewTracker(&fakeDeleter{}, nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tr.Track(model.NewUser(model.Credentials{}))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, tr.Len())
}

func TestCleanupAllContinuesAfterFailure(t *testing.T) {
	d := &fakeDeleter{failFor: map[string]error{"b": errors.New("service unavailable")}}
	tr := NewTracker(d, nil)
	a, b, c := authedUser("a"), authedUser("b"), authedUser("c")
	tr.Track(a)
	tr.Track(b)
	tr.Track(c)

	err := tr.CleanupAll(context.Background())
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "service unavailable")

	assert.Equal(t, []string{"a", "c"}, d.deleted)
	assert.Equal(t, model.Deleted, a.State())
	assert.Equal(t, model.PendingDeletion, b.State())
	assert.Equal(t, model.Deleted, c.State())
	assert.Equal(t, 0, tr.Len())
}

func TestCleanupAllSkipsUnauthenticatedActors(t *testing.T) {
	d := &fakeDeleter{}
	tr := NewTracker(d, nil)
	tr.Track(model.NewUser(model.Credentials{Email: "x@example.com"}))
	assert.NoError(t, tr.CleanupAll(context.Background()))
	assert.Empty(t, d.deleted)
}

func TestCleanupAllUsesLatestToken(t *testing.T) {
	d := &fakeDeleter{}
	tr := NewTracker(d, nil)
	u := authedUser("old")
	tr.Track(u)
	u.RememberTokens(model.TokenPair{AccessToken: "new", RefreshToken: "r"})
	require.NoError(t, tr.CleanupAll(context.Background()))
	assert.Equal(t, []string{"new"}, d.deleted)
}

func TestCleanupAllWithAPIClient(t *testing.T) {
	headers := make(http.Header)
	headers.Set("Content-Type", "application/json")
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(
		http.StatusAccepted, headers, []byte(`{"success":true,"message":"User successfully removed"}`)))

	httphelpers.WithServer(handler, func(server *httptest.Server) {
		client := apiclient.NewClient(apiclient.Config{BaseURL: server.URL + "/api"})
		tr := NewTracker(client, nil)
		u := authedUser("Bearer abc")
		tr.Track(u)
		require.NoError(t, tr.CleanupAll(context.Background()))
		assert.Equal(t, model.Deleted, u.State())

		req := <-requests
		assert.Equal(t, http.MethodDelete, req.Request.Method)
		assert.Equal(t, "/api/auth/user", req.Request.URL.Path)
		assert.Equal(t, "Bearer abc", req.Request.Header.Get("Authorization"))
		assert.Empty(t, req.Body)
	})
}

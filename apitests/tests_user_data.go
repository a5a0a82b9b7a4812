package apitests

import (
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/fixtures"
	"github.com/orderapi/contract-tests/model"
	"github.com/orderapi/contract-tests/verify"

	"github.com/stretchr/testify/require"
)

func DoUserDataTests(t *T) {
	t.Run("change email", func(t *T) {
		u := t.RegisterActor()
		creds := u.Credentials()
		creds.Email = fixtures.MutateUntilDifferent(creds.Email, fixtures.Email)
		changeCredentials(t, u, creds)
		auth := t.Login(u)
		verify.Owner(t, creds, auth.User)
	})

	t.Run("change name", func(t *T) {
		u := t.RegisterActor()
		creds := u.Credentials()
		creds.Name = fixtures.MutateUntilDifferent(creds.Name, fixtures.Username)
		changeCredentials(t, u, creds)
	})

	t.Run("change password", func(t *T) {
		u := t.RegisterActor()
		creds := u.Credentials()
		creds.Password = fixtures.MutateUntilDifferent(creds.Password, fixtures.Password)
		changeCredentials(t, u, creds)
		auth := t.Login(u)
		verify.Owner(t, creds, auth.User)
	})

	t.Run("change email to one already taken", func(t *T) {
		u := t.RegisterActor()
		other := t.RegisterActor()
		creds := u.Credentials()
		creds.Email = other.Credentials().Email
		resp, err := t.Client().UpdateUser(t.Ctx(), u.AccessToken(), credentialParams(creds), 403)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageEmailTaken)
	})

	t.Run("change without authorization", func(t *T) {
		u := t.RegisterActor()
		resp, err := t.Client().UpdateUser(t.Ctx(), "", u.RegistrationParams(), 401)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageUnauthorised)
	})
}

// changeCredentials sends the full new credentials, checks the returned user, and records them on
// the actor once the API has accepted them.
func changeCredentials(t *T, u *model.User, creds model.Credentials) {
	resp, err := t.Client().UpdateUser(t.Ctx(), u.AccessToken(), credentialParams(creds), 200)
	require.NoError(t, err)
	var auth apidef.AuthResponse
	require.NoError(t, resp.Decode(&auth))
	require.True(t, auth.Success, "success flag")
	u.SetCredentials(creds)
	verify.Owner(t, creds, auth.User)
}

func credentialParams(creds model.Credentials) apidef.RegistrationParams {
	return apidef.NewRegistrationParams(creds.Email, creds.Name, creds.Password)
}

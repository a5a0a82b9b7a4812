package apitests

import (
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/fixtures"
	"github.com/orderapi/contract-tests/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoLoginTests(t *T) {
	t.Run("valid credentials", func(t *T) {
		u := t.RegisterActor()
		auth := t.Login(u)
		verify.Owner(t, u.Credentials(), auth.User)
		verify.Tokens(t, u.Tokens())
		assert.Equal(t, auth.AccessToken, u.AccessToken(), "the newest token pair is remembered")
	})

	t.Run("wrong password", func(t *T) {
		u := t.RegisterActor()
		resp, err := t.Client().Login(t.Ctx(), fixtures.ForgotPassword(u.LoginParams()), 401)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageIncorrectLogin)
	})

	t.Run("wrong email", func(t *T) {
		u := t.RegisterActor()
		resp, err := t.Client().Login(t.Ctx(), fixtures.ForgotEmail(u.LoginParams()), 401)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageIncorrectLogin)
	})
}

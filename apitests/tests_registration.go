package apitests

import (
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/verify"

	"github.com/stretchr/testify/require"
)

func DoRegistrationTests(t *T) {
	t.Run("unique user", func(t *T) {
		u := t.NewActor()
		auth := t.Register(u)
		verify.Owner(t, u.Credentials(), auth.User)
		verify.Tokens(t, u.Tokens())
	})

	t.Run("duplicate user", func(t *T) {
		u := t.RegisterActor()
		resp, err := t.Client().Register(t.Ctx(), u.RegistrationParams(), 403)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageUserExists)
	})

	for _, f := range []apidef.Field{apidef.FieldEmail, apidef.FieldPassword, apidef.FieldName} {
		f := f
		t.Run("missing "+string(f), func(t *T) {
			u := t.NewActor()
			resp, err := t.Client().Register(t.Ctx(), u.RegistrationParams().Without(f), 403)
			require.NoError(t, err)
			verify.Failure(t, resp, apidef.MessageRequiredFields)
		})
	}

	t.Run("empty name", func(t *T) {
		u := t.NewActor()
		resp, err := t.Client().Register(t.Ctx(), u.RegistrationParams().WithName(""), 403)
		require.NoError(t, err)
		verify.Failure(t, resp, apidef.MessageRequiredFields)
	})
}

package verify

import (
	"strings"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const bearerPrefix = "Bearer "

// Owner checks a returned user against the actor's credentials. The API stores emails lower-cased,
// so the returned email must equal the lower-cased one the actor registered with.
func Owner(t assert.TestingT, creds model.Credentials, actual apidef.UserInfo) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := assert.Equal(t, creds.NormalizedEmail(), actual.Email, "user email")
	return assert.Equal(t, creds.Name, actual.Name, "user name") && ok
}

// Failure checks the envelope of an expected-failure response. The status has already been checked
// by the client.
func Failure(t assert.TestingT, resp *apiclient.Response, message string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !assert.NotNil(t, resp, "no response") {
		return false
	}
	if !assert.True(t, resp.IsJSON(), "expected a JSON error body, got: %s", string(resp.Raw())) {
		return false
	}
	ok := assert.False(t, resp.Success, "success flag")
	return assert.Equal(t, message, resp.Message, "error message") && ok
}

// Tokens checks the shape of a freshly issued token pair: the access token is "Bearer " followed by
// a JWT with an expiry, and the refresh token is present. Signatures are not checked since the
// harness does not know the key.
func Tokens(t assert.TestingT, pair model.TokenPair) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	ok := assert.NotEmpty(t, pair.RefreshToken, "refresh token")
	if !assert.True(t, strings.HasPrefix(pair.AccessToken, bearerPrefix),
		"access token should start with %q: %q", bearerPrefix, pair.AccessToken) {
		return false
	}
	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(strings.TrimPrefix(pair.AccessToken, bearerPrefix), claims)
	if !assert.NoError(t, err, "access token is not a JWT") {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if !assert.NoError(t, err, "access token expiry") || !assert.NotNil(t, exp, "access token has no expiry") {
		return false
	}
	return ok
}

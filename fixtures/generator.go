// Package fixtures generates the random input data that tests feed to the API: fresh credentials for
// new actors, and values that are guaranteed not to match anything the API knows about.
//
// All functions draw from math/rand/v2's global source, which is safe for concurrent use, so
// scenarios running in parallel can share this package freely.
package fixtures

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/orderapi/contract-tests/apidef"
	"github.com/orderapi/contract-tests/model"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	hexDigits    = "0123456789abcdef"

	emailLocalLength  = 12
	emailDomainLength = 8
	usernameLength    = 10
	passwordLength    = 16

	// DefaultIDLength is the length of the API's object ids, used when there is no catalog to
	// learn it from.
	DefaultIDLength = 24
)

var emailTLDs = []string{"com", "org", "net", "io"}

// Email returns a random, syntactically valid address. The local part uses mixed case, so ownership
// checks, which expect the lower-cased address back, confirm that the API normalizes emails.
func Email() string {
	return randomString(lowerLetters+upperLetters+digits, emailLocalLength) +
		"@" + randomString(lowerLetters, emailDomainLength) +
		"." + emailTLDs[rand.Intn(len(emailTLDs))]
}

// Username returns a random display name.
func Username() string {
	return randomString(upperLetters, 1) + randomString(lowerLetters, usernameLength-1)
}

// Password returns a random password containing letters of both cases and digits.
func Password() string {
	return randomString(upperLetters, 2) + randomString(digits, 2) +
		randomString(lowerLetters+upperLetters+digits, passwordLength-4)
}

// NewCredentials returns a complete set of random credentials.
func NewCredentials() model.Credentials {
	return model.Credentials{Email: Email(), Name: Username(), Password: Password()}
}

// NewUser returns an Unregistered actor with random credentials.
func NewUser() *model.User {
	return model.NewUser(NewCredentials())
}

// RetryUntil draws from generate until reject returns false, and returns that draw.
//
// It has no attempt limit: the caller must make sure that accepted values are not rare.
func RetryUntil[V any](generate func() V, reject func(V) bool) V {
	for {
		v := generate()
		if !reject(v) {
			return v
		}
	}
}

// MutateUntilDifferent draws from generator until the value differs from original.
func MutateUntilDifferent(original string, generator func() string) string {
	return RetryUntil(generator, func(s string) bool { return s == original })
}

// NonMatchingHash returns a random lowercase hex string of exactly length characters that is not a
// member of forbidden.
//
// This is rejection sampling with no retry limit. It terminates quickly only if 16^length is much
// larger than len(forbidden); with the API's 24-character ids a collision is practically impossible,
// but a caller passing a tiny length together with a large forbidden set may loop for a long time.
func NonMatchingHash(length int, forbidden map[string]struct{}) string {
	return RetryUntil(
		func() string { return randomString(hexDigits, length) },
		func(s string) bool {
			_, found := forbidden[s]
			return found
		},
	)
}

// UnknownIngredientIDs returns count ids that are not in the catalog, with the same length as the
// catalog's ids.
func UnknownIngredientIDs(catalog model.Catalog, count int) []string {
	length := DefaultIDLength
	if items := catalog.Items(); len(items) > 0 {
		length = len(items[0].ID)
	}
	forbidden := catalog.IDs()
	ret := make([]string, 0, count)
	for len(ret) < count {
		id := NonMatchingHash(length, forbidden)
		// the ids within one order are also kept distinct
		forbidden[id] = struct{}{}
		ret = append(ret, id)
	}
	return ret
}

// ErrNotEnoughItems is returned by PickDistinct when there are fewer items than requested.
var ErrNotEnoughItems = errors.New("not enough items to pick from")

// PickDistinct returns n randomly chosen elements of items at distinct positions.
func PickDistinct[V any](items []V, n int) ([]V, error) {
	if n > len(items) {
		return nil, ErrNotEnoughItems
	}
	ret := make([]V, 0, n)
	for _, i := range rand.Perm(len(items))[:n] {
		ret = append(ret, items[i])
	}
	return ret, nil
}

// ForgotPassword returns a copy of the login params whose password is a different random one.
func ForgotPassword(params apidef.LoginParams) apidef.LoginParams {
	params.Password = ldvalue.NewOptionalString(MutateUntilDifferent(params.Password.StringValue(), Password))
	return params
}

// ForgotEmail returns a copy of the login params whose email is a different random one.
func ForgotEmail(params apidef.LoginParams) apidef.LoginParams {
	params.Email = ldvalue.NewOptionalString(MutateUntilDifferent(params.Email.StringValue(), Email))
	return params
}

func randomString(alphabet string, length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

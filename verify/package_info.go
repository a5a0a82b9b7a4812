// Package verify contains the checks that the scenarios run against API responses.
//
// Every function takes an assert.TestingT, reports through it the way testify assertions do, and
// returns true if the check passed. None of them stop the test; callers that cannot continue after a
// failed check should use the return value, or wrap the call in require-style handling themselves.
package verify

type tHelper interface {
	Helper()
}

// Package framework contains the low-level test runner used by the contract tests. It is not tied to
// the order API.
//
// The general model is:
//
// 1. There is a notion of a test context which is similar to Go's *testing.T, allowing pieces of
// test logic to be associated with a test identifier and to accumulate success/failure results.
// Tests run outside of the Go test runner, so that the suite can be pointed at any deployment of
// the service from the command line.
//
// 2. Each test can register deferred actions, which run however the test ends. This is where
// resources created in the remote service get cleaned up.
//
// 3. Each test captures its own debug output, which a TestLogger can show or hide depending on
// the test outcome.
//
// The domain-specific code that knows what is being tested provides a test API on top of the
// test context.
package framework

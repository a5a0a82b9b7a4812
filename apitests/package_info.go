// Package apitests contains the contract scenarios for the order API, and the test scope type they
// are written against.
//
// Scenarios are ordinary functions taking a *T. They use testify's assert and require packages
// with the *T as if it were a *testing.T, and the checks in the verify package for the invariants
// that need more than a simple comparison.
package apitests

package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/verify"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams(t *testing.T) {
	t.Setenv(envBaseURL, "http://from-env/api")

	var p commandParams
	require.True(t, p.Read([]string{"prog", "-sort", "desc", "-run", "orders", "-skip", "above cap", "-rps", "2.5"}))
	assert.Equal(t, "http://from-env/api", p.baseURL)
	assert.Equal(t, verify.Descending, p.direction)
	assert.Equal(t, 2.5, p.rps)
	assert.Equal(t, []string{"orders"}, p.filters.MustMatch.Patterns())
	assert.Equal(t, []string{"above cap"}, p.filters.MustNotMatch.Patterns())
	assert.Equal(t, defaultTimeout, p.timeout)
}

func TestReadParamsRejectsBadSort(t *testing.T) {
	var p commandParams
	assert.False(t, p.Read([]string{"prog", "-url", "http://x", "-sort", "sideways"}))
}

func TestRerunCommandSelectsExactlyTheFailedTests(t *testing.T) {
	p := commandParams{baseURL: "http://localhost:3000/api", sort: "desc"}
	failures := []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"orders", "list", "51 orders above cap"}}},
	}
	assert.Equal(t,
		`prog -url http://localhost:3000/api -sort desc -run '^orders$/^list$/^51 orders above cap$' -debug`,
		p.rerunCommand("prog", failures))

	var filters framework.RegexFilters
	require.NoError(t, filters.MustMatch.Set(exactPathPattern(failures[0].TestID)))
	assert.True(t, filters.AsFilter(framework.TestID{Path: []string{"orders"}}))
	assert.True(t, filters.AsFilter(failures[0].TestID))
	assert.False(t, filters.AsFilter(framework.TestID{Path: []string{"orders", "list", "52 orders above cap"}}))
	assert.False(t, filters.AsFilter(framework.TestID{Path: []string{"orders", "create"}}))
}

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = os.Getenv("NO_COLOR") != "" }()

	var buf bytes.Buffer
	logger := &ConsoleTestLogger{DebugOutputOnFailure: true, Output: &buf}
	id := framework.TestID{Path: []string{"login", "wrong email"}}

	var captured framework.CapturingLogger
	captured.Printf("Sending POST /auth/login")

	logger.TestStarted(id)
	logger.TestError(id, errors.New("first line\nsecond line"))
	logger.TestWarning(id, "cleanup: delete user failed")
	logger.TestFinished(id, true, captured.Output())
	logger.TestSkipped(id, "not today")

	out := buf.String()
	assert.Contains(t, out, "[login/wrong email]\n")
	assert.Contains(t, out, "  first line\n  second line\n")
	assert.Contains(t, out, "  WARNING: cleanup: delete user failed\n")
	assert.Contains(t, out, "  FAILED: login/wrong email\n")
	assert.Contains(t, out, "DEBUG ")
	assert.Contains(t, out, "Sending POST /auth/login")
	assert.Contains(t, out, "  SKIPPED: login/wrong email (not today)\n")
}

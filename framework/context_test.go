package framework

import (
	"bytes"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) { r.events = append(r.events, "start "+id.String()) }
func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}
func (r *recordingTestLogger) TestWarning(id TestID, message string) {
	r.events = append(r.events, "warning "+id.String()+": "+message)
}
func (r *recordingTestLogger) TestFinished(id TestID, failed bool, _ CapturedOutput) {
	if failed {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}
func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+": "+reason)
}

func TestRunRecordsPassAndFail(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {
			c.Errorf("bad %d", 1)
			c.FailNow()
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "b", results.Failures[0].TestID.String())
	assert.Equal(t, []string{
		"start a",
		"passed a",
		"start b",
		"error b: bad 1",
		"failed b",
	}, logger.events)
}

func TestNestedIDsDoNotShareBackingArray(t *testing.T) {
	var ids []string
	Run(nil, nil, func(c *Context) {
		c.Run("parent", func(c *Context) {
			c.Run("x", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("y", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})
	assert.Equal(t, []string{"parent/x", "parent/y"}, ids)
}

func TestPanicIsReportedAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("p", func(c *Context) { panic(errors.New("boom")) })
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("s", func(c *Context) { c.SkipWithReason("not today") })
	})
	assert.True(t, results.OK())
	assert.Contains(t, logger.events, "skipped s: not today")
}

func TestFilter(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("above cap"))
	var ran []string
	Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("50 orders", func(c *Context) { ran = append(ran, c.ID().String()) })
		c.Run("51 orders above cap", func(c *Context) { ran = append(ran, c.ID().String()) })
	})
	assert.Equal(t, []string{"50 orders"}, ran)
}

func TestRunFilterMatchesEachLevel(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("^orders$/^list$/^25 orders$"))
	var ran []string
	Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("login", func(c *Context) { ran = append(ran, c.ID().String()) })
		c.Run("orders", func(c *Context) {
			c.Run("create", func(c *Context) { ran = append(ran, c.ID().String()) })
			c.Run("list", func(c *Context) {
				c.Run("25 orders", func(c *Context) { ran = append(ran, c.ID().String()) })
				c.Run("49 orders", func(c *Context) { ran = append(ran, c.ID().String()) })
			})
		})
	})
	assert.Equal(t, []string{"orders/list/25 orders"}, ran)
}

func TestSplitLevels(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLevels("a/b"))
	assert.Equal(t, []string{"a[/]", "(x/y)"}, splitLevels("a[/]/(x/y)"))
	assert.Equal(t, []string{`a\/b`}, splitLevels(`a\/b`))
}

func TestInvalidFilterRegex(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestDeferredActionsRunAfterFailureInReverseOrder(t *testing.T) {
	var calls []string
	results := Run(nil, nil, func(c *Context) {
		c.Run("d", func(c *Context) {
			c.Defer(func() { calls = append(calls, "first") })
			c.Defer(func() { calls = append(calls, "second") })
			c.Errorf("failing")
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, calls)
	assert.False(t, results.OK())
}

func TestPanickingDeferredActionBecomesWarning(t *testing.T) {
	logger := &recordingTestLogger{}
	ran := false
	results := Run(nil, logger, func(c *Context) {
		c.Run("d", func(c *Context) {
			c.Defer(func() { ran = true })
			c.Defer(func() { panic("cleanup exploded") })
		})
	})
	assert.True(t, ran)
	assert.True(t, results.OK())
	warned := results.Warnings()
	require.Len(t, warned, 1)
	assert.Regexp(t, regexp.MustCompile("cleanup exploded"), warned[0].Warnings[0])
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, Results{
		Failures: []TestResult{{TestID: TestID{Path: []string{"orders", "create"}}}},
	})
	assert.Contains(t, buf.String(), "FAILED TESTS (1)")
	assert.Contains(t, buf.String(), "orders/create")

	buf.Reset()
	PrintResults(&buf, Results{})
	assert.Equal(t, "All tests passed\n", buf.String())
}

func TestMultiAndPrefixedLogger(t *testing.T) {
	var a, b CapturingLogger
	l := PrefixedLogger("[x] ", MultiLogger(&a, nil, &b))
	l.Printf("hello %s", "there")
	require.Len(t, a.Output(), 1)
	assert.Equal(t, "[x] hello there", a.Output()[0].Message)
	assert.Equal(t, a.Output()[0].Message, b.Output()[0].Message)
}

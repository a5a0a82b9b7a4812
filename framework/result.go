package framework

import (
	"fmt"
	"io"
	"strings"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID   TestID
	Errors   []error
	Warnings []string
	Skipped  bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Warnings returns the results that recorded at least one warning.
func (r Results) Warnings() []TestResult {
	var ret []TestResult
	for _, t := range r.Tests {
		if len(t.Warnings) > 0 {
			ret = append(ret, t)
		}
	}
	return ret
}

// PrintResults writes a summary of the failures and warnings.
func PrintResults(w io.Writer, results Results) {
	if warned := results.Warnings(); len(warned) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(warned))
		for _, t := range warned {
			fmt.Fprintf(w, "  %s\n", t.TestID)
			for _, m := range t.Warnings {
				fmt.Fprintf(w, "    %s\n", m)
			}
		}
	}
	if results.OK() {
		fmt.Fprintln(w, "All tests passed")
		return
	}
	fmt.Fprintf(w, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		fmt.Fprintf(w, "  %s\n", f.TestID)
	}
}

type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

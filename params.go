package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/verify"

	"github.com/alessio/shellescape"
)

const (
	envBaseURL            = "ORDER_API_URL"
	defaultTimeout        = time.Second * 30
	defaultStartupTimeout = time.Second * 10
)

type commandParams struct {
	baseURL        string
	filters        framework.RegexFilters
	debug          bool
	debugAll       bool
	timeout        time.Duration
	startupTimeout time.Duration
	rps            float64
	sort           string
	direction      verify.Direction
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", os.Getenv(envBaseURL), "API base URL including /api (default from $"+envBaseURL+")")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run, one per level like go test -run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.DurationVar(&c.timeout, "timeout", defaultTimeout, "timeout for each HTTP request")
	fs.DurationVar(&c.startupTimeout, "startup-timeout", defaultStartupTimeout, "how long to wait for the API to answer")
	fs.Float64Var(&c.rps, "rps", 0, "maximum requests per second, 0 for no limit")
	fs.StringVar(&c.sort, "sort", verify.Ascending.String(), "expected order of GET /orders by updatedAt: asc or desc")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.baseURL == "" {
		fmt.Fprintf(os.Stderr, "-url is required, or set %s\n", envBaseURL)
		fs.Usage()
		return false
	}
	direction, err := verify.ParseDirection(c.sort)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	c.direction = direction
	return true
}

// rerunCommand returns a command line that runs only the given tests again with the same settings.
func (c *commandParams) rerunCommand(program string, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(program, "-url", c.baseURL)
	if c.sort != verify.Ascending.String() {
		b.add("-sort", c.sort)
	}
	if c.rps > 0 {
		b.add("-rps", strconv.FormatFloat(c.rps, 'f', -1, 64))
	}
	for _, f := range failures {
		b.add("-run", exactPathPattern(f.TestID))
	}
	b.add("-debug")
	return b.String()
}

func exactPathPattern(id framework.TestID) string {
	levels := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		levels = append(levels, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(levels, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/orderapi/contract-tests/apiclient"
	"github.com/orderapi/contract-tests/apitests"
	"github.com/orderapi/contract-tests/framework"
	"github.com/orderapi/contract-tests/logging"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// a missing .env file is normal; the environment and flags are enough
	_ = godotenv.Load()

	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	logConfig := logging.ConfigFromEnv()
	if params.debugAll && !logConfig.Dev {
		logConfig.Level = "debug"
	}
	logger, err := logging.Init(logConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot initialize logging: %s\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	runLogger := framework.NullLogger()
	if params.debugAll {
		runLogger = logging.NewDebugPrinter(logger)
	}

	client := apiclient.NewClient(apiclient.Config{
		BaseURL:           params.baseURL,
		Timeout:           params.timeout,
		RequestsPerSecond: params.rps,
		Logger:            runLogger,
	})
	if err := client.AwaitService(context.Background(), params.startupTimeout, os.Stdout); err != nil {
		logger.Error("API is not reachable", zap.String("url", params.baseURL), zap.Error(err))
		fmt.Fprintf(os.Stderr, "API error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters, apitests.KnownIssues)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	harness := apitests.NewHarness(apitests.HarnessConfig{
		Client:        client,
		Logger:        runLogger,
		SortDirection: params.direction,
	})

	results := apitests.RunTestSuite(harness, params.filters.AsFilter, testLogger)
	logger.Info("test run finished",
		zap.Int("tests", len(results.Tests)),
		zap.Int("failures", len(results.Failures)),
		zap.Int("warnings", len(results.Warnings())),
	)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}

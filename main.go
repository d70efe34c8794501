package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/localkb/search-contract-tests/framework"
	"github.com/localkb/search-contract-tests/searchtests"
	"github.com/localkb/search-contract-tests/servicedef"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	var params commandParams
	if !params.Read(args, errOut) {
		return 1
	}

	if params.list {
		for _, s := range searchtests.AllScenarios() {
			fmt.Fprintln(out, s.Describe())
		}
		return 0
	}

	cfg, err := loadConfig(params.configPath)
	if err != nil {
		fmt.Fprintf(errOut, "Invalid configuration: %s\n", err)
		return 1
	}
	if params.serviceURL != "" {
		cfg.BaseURL = params.serviceURL
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "Invalid configuration: %s\n", err)
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05.000"}).
			With().Timestamp().Logger()
		mainDebugLogger = &logger
	}

	harness, err := framework.NewTestHarness(
		framework.HarnessConfig{
			BaseURL:        cfg.BaseURL,
			ProbeTimeout:   cfg.ProbeTimeout,
			RequestTimeout: cfg.SearchTimeout,
			StartupWait:    cfg.StartupWait,
		},
		mainDebugLogger,
		out,
	)
	if err != nil {
		fmt.Fprintf(errOut, "Search server error: %s\n", err)
		fmt.Fprintln(errOut, "Start the search server and try again.")
		return 1
	}
	printServiceInfo(out, harness.BaseURL(), harness.ServiceStatus())

	fmt.Fprintln(out)
	framework.PrintFilterDescription(out, params.filters)

	fmt.Fprintln(out, "Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  out,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := searchtests.RunTestSuite(harness, params.filters.AsFilter, testLogger, searchtests.SuiteOptions{
		SearchPath: cfg.SearchPath,
		Pause:      cfg.ScenarioPause,
	})

	fmt.Fprintln(out)
	framework.PrintResults(out, results)
	fmt.Fprintln(out)
	printVerdict(out, results)

	if params.reportPath != "" {
		if err := framework.WriteReport(params.reportPath, results); err != nil {
			fmt.Fprintf(errOut, "Could not write report: %s\n", err)
			return 1
		}
	}
	return results.ExitCode()
}

func printServiceInfo(out io.Writer, baseURL string, status framework.ServiceStatus) {
	var info servicedef.ServiceInfo
	if err := json.Unmarshal(status.Body, &info); err != nil || info.IsEmpty() {
		fmt.Fprintf(out, "Server at %s responded with status %d and no metadata\n", baseURL, status.StatusCode)
		return
	}
	fmt.Fprintf(out, "Server at %s responded with status %d: %s %s (%s)\n",
		baseURL, status.StatusCode, info.Service, info.Version, info.Status)
}

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/localkb/search-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	passedColor  = color.New(color.FgGreen, color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

// ConsoleTestLogger prints one status line per scenario as the suite runs.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", errorColor.Sprint(line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, elapsed time.Duration, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", failedColor.Sprint("FAILED:"), id, elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", passedColor.Sprint("PASSED:"), id, elapsed.Round(time.Millisecond))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "  %s %s\n", skippedColor.Sprint("SKIPPED:"), id)
	} else {
		fmt.Fprintf(c.Out, "  %s %s (%s)\n", skippedColor.Sprint("SKIPPED:"), id, reason)
	}
}

// printVerdict writes the closing line, in green if every scenario passed and red otherwise.
func printVerdict(out io.Writer, results framework.Results) {
	if results.OK() {
		fmt.Fprintln(out, passedColor.Sprint("All scenarios passed"))
		return
	}
	fmt.Fprintln(out, failedColor.Sprintf("%d scenario(s) failed", len(results.Failures)))
}

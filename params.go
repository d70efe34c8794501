package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/localkb/search-contract-tests/framework"
)

type commandParams struct {
	serviceURL string
	configPath string
	reportPath string
	filters    framework.RegexFilters
	list       bool
	debug      bool
	debugAll   bool
}

// Read parses the command line. Every flag is optional; with none, the harness runs
// all scenarios against the configured server.
func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.serviceURL, "url", "", "search server base URL (overrides configuration)")
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.reportPath, "report", "", "write results to this file (.json, .yaml or .yml)")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.BoolVar(&c.list, "list", false, "list the scenarios and exit")
	fs.BoolVar(&c.debug, "debug", false, "show debug output for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "show debug output for all scenarios")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return false
	}
	return true
}

package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the framework's equivalent of *testing.T. It implements the TestingT
// interface of testify's assert and require packages.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	errors      []error
}

// Run executes action with a root Context and returns the results of every test that
// action started with Context.Run, in the order they were started.
func Run(
	filter Filter,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	if c.failed {
		// A failure outside of any named test still has to fail the run.
		result := TestResult{TestID: TestID{Path: []string{"(suite)"}}, Errors: c.errors}
		env.results.Tests = append(env.results.Tests, result)
		env.results.Failures = append(env.results.Failures, result)
	}
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
	}()

	action(c)
}

func (c *Context) ID() TestID {
	return c.id
}

// Run runs a named test. A panic or FailNow inside action ends only that test; the
// caller continues with whatever comes next.
func (c *Context) Run(name string, action func(*Context)) {
	id := TestID{Path: append(append([]string(nil), c.id.Path...), name)}

	c.env.testLogger.TestStarted(id)
	if c.env.filter != nil && !c.env.filter(id) {
		const reason = "excluded by filter parameters"
		c.env.results.Tests = append(c.env.results.Tests, TestResult{TestID: id, Skipped: true, SkipReason: reason})
		c.env.testLogger.TestSkipped(id, reason)
		return
	}
	c1 := &Context{
		id:  id,
		env: c.env,
	}
	started := time.Now()
	c1.run(action)
	elapsed := time.Since(started)

	result := TestResult{TestID: id, Errors: c1.errors, Elapsed: elapsed}
	c.env.results.Tests = append(c.env.results.Tests, result)
	if c1.Failed() {
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
	c.env.testLogger.TestFinished(id, c1.Failed(), elapsed, c1.debugLogger.Output())
}

// Errorf records a failure without ending the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := reformatError(fmt.Errorf(format, args...))
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, err)
}

// Error records err as a failure without ending the test.
func (c *Context) Error(err error) {
	c.Errorf("%s", err)
}

// FailNow ends the test immediately. Any failure must already have been recorded.
func (c *Context) FailNow() {
	panic(c)
}

// Failed reports whether the test has recorded a failure so far.
func (c *Context) Failed() bool {
	return c.failed
}

func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// testify formats its failures as a block of labeled lines, starting with a stack trace
// that only points into this framework. Drop the trace and keep the rest.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	var kept []string
	inTrace := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "Error Trace:") {
			inTrace = true
			continue
		}
		if inTrace {
			if !isTestifyLabel(trimmed) {
				continue
			}
			inTrace = false
		}
		kept = append(kept, trimmed)
	}
	if len(kept) == len(lines) {
		return err
	}
	return errors.New(strings.Join(kept, "\n"))
}

func isTestifyLabel(line string) bool {
	for _, label := range []string{"Error:", "Test:", "Messages:"} {
		if strings.HasPrefix(line, label) {
			return true
		}
	}
	return false
}

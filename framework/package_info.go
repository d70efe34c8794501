// Package framework contains the low-level implementation of test harness infrastructure
// that is not specific to any one search contract.
//
// The general model is:
//
// 1. The test harness talks to a server under test, which exposes a root resource that
// proves it is alive (GET) and one or more resources that accept JSON requests (POST).
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results.
//
// 3. Results are collected in definition order and can be printed or written to a file.
//
// The domain-specific code that knows what is being tested is responsible for building the
// requests, judging the responses, and providing a test API on top of the test context.
package framework

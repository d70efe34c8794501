// Package searchtests contains the search contract scenarios and their supporting API:
// building each request shape, sending it to the search endpoint, and judging the
// response against the schema every conforming server must follow.
//
// Infrastructure that is not specific to search, such as the status query, the test
// context and result reporting, is in the lower-level framework package.
package searchtests

package searchtests

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/localkb/search-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const maxQuotedBody = 200

// Expectation is what a scenario requires of a response beyond the common schema.
type Expectation struct {
	// NoResults requires total to be 0 and results to be empty.
	NoResults bool

	// MaxResults, if positive, is the most results the response may contain.
	MaxResults int
}

// ValidationError lists everything that was wrong with a response.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

// Validate checks a search response against the required schema and then against
// expect. It returns nil or a *ValidationError.
//
// Only the first item in results is checked for the required result fields. Content is
// never judged: ranking and relevance are up to the server.
func Validate(expect Expectation, resp SearchResponse) error {
	var problems []string
	fail := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if resp.StatusCode != 200 {
		fail("status code was %d, expected 200; body: %s", resp.StatusCode, quoteBody(resp.Raw))
		return &ValidationError{Problems: problems}
	}
	if !resp.IsJSON || resp.Body.Type() != ldvalue.ObjectType {
		fail("response body was not a JSON object: %s", quoteBody(resp.Raw))
		return &ValidationError{Problems: problems}
	}

	body := resp.Body
	present := keySet(body)
	for _, field := range servicedef.RequiredResponseFields {
		if !present[field] {
			fail("response is missing required field %q", field)
		}
	}

	results := body.GetByKey(servicedef.FieldResults)
	if present[servicedef.FieldResults] {
		if results.Type() != ldvalue.ArrayType {
			fail("%q should be an array, was %s", servicedef.FieldResults, describeValue(results))
		} else if results.Count() > 0 {
			first := results.GetByIndex(0)
			if first.Type() != ldvalue.ObjectType {
				fail("first result should be an object, was %s", describeValue(first))
			} else {
				firstFields := keySet(first)
				for _, field := range servicedef.RequiredResultFields {
					if !firstFields[field] {
						fail("first result is missing required field %q", field)
					}
				}
			}
		}
	}
	if v := body.GetByKey(servicedef.FieldTookMS); present[servicedef.FieldTookMS] &&
		(!v.IsNumber() || v.Float64Value() < 0) {
		fail("%q should be a non-negative number, was %s", servicedef.FieldTookMS, describeValue(v))
	}
	total := body.GetByKey(servicedef.FieldTotal)
	totalOK := total.IsNumber() && total.Float64Value() >= 0 &&
		total.Float64Value() == math.Trunc(total.Float64Value())
	if present[servicedef.FieldTotal] && !totalOK {
		fail("%q should be a non-negative integer, was %s", servicedef.FieldTotal, describeValue(total))
	}
	if v := body.GetByKey(servicedef.FieldEngine); present[servicedef.FieldEngine] && !v.IsString() {
		fail("%q should be a string, was %s", servicedef.FieldEngine, describeValue(v))
	}

	resultCount := -1
	if results.Type() == ldvalue.ArrayType {
		resultCount = results.Count()
	}
	if expect.NoResults {
		if totalOK && total.Float64Value() != 0 {
			fail("%q was %s, expected 0 for a request that searches for nothing",
				servicedef.FieldTotal, formatNumber(total.Float64Value()))
		}
		if resultCount > 0 {
			fail("%q had %d items, expected none for a request that searches for nothing",
				servicedef.FieldResults, resultCount)
		}
	}
	if expect.MaxResults > 0 && resultCount > expect.MaxResults {
		fail("%q had %d items, but the request asked for at most %d",
			servicedef.FieldResults, resultCount, expect.MaxResults)
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func keySet(v ldvalue.Value) map[string]bool {
	ret := make(map[string]bool)
	for _, k := range v.Keys() {
		ret[k] = true
	}
	return ret
}

func describeValue(v ldvalue.Value) string {
	// JSONString renders whole numbers through int, which wraps past MaxInt64.
	if v.IsNumber() {
		return fmt.Sprintf("%s %s", v.Type(), formatNumber(v.Float64Value()))
	}
	return fmt.Sprintf("%s %s", v.Type(), v.JSONString())
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quoteBody(raw string) string {
	if raw == "" {
		return "(empty)"
	}
	if len(raw) > maxQuotedBody {
		raw = raw[:maxQuotedBody] + "..."
	}
	return fmt.Sprintf("%q", raw)
}

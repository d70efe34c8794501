package servicedef

import (
	"encoding/json"
	"errors"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	SearchPath = "/search"

	FieldQuery   = "query"
	FieldQueries = "queries"
	FieldCount   = "count"

	FieldResults = "results"
	FieldTookMS  = "took_ms"
	FieldTotal   = "total"
	FieldEngine  = "engine"

	FieldLink    = "link"
	FieldTitle   = "title"
	FieldSnippet = "snippet"
)

// RequiredResponseFields are the top-level properties every search response must have.
var RequiredResponseFields = []string{FieldResults, FieldTookMS, FieldTotal, FieldEngine}

// RequiredResultFields are the properties every item in "results" must have.
var RequiredResultFields = []string{FieldLink, FieldTitle, FieldSnippet}

// SearchRequest is the body of a POST to the search endpoint.
//
// An undefined Query and a nil Queries are left out of the JSON entirely. That matters
// because an empty query string and a missing query are different request shapes.
type SearchRequest struct {
	Query   ldvalue.OptionalString
	Queries []string
	Count   int
}

// SearchResponse is the body the search endpoint must return.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	TookMS  float64        `json:"took_ms"`
	Total   int            `json:"total"`
	Engine  string         `json:"engine"`
}

type SearchResult struct {
	Link    string `json:"link"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// AsValue returns the request as a JSON object value.
func (r SearchRequest) AsValue() ldvalue.Value {
	b := ldvalue.ObjectBuild()
	if r.Query.IsDefined() {
		b.Set(FieldQuery, ldvalue.String(r.Query.StringValue()))
	}
	if r.Queries != nil {
		qs := ldvalue.ArrayBuild()
		for _, q := range r.Queries {
			qs.Add(ldvalue.String(q))
		}
		b.Set(FieldQueries, qs.Build())
	}
	b.Set(FieldCount, ldvalue.Int(r.Count))
	return b.Build()
}

func (r SearchRequest) MarshalJSON() ([]byte, error) {
	return []byte(r.AsValue().JSONString()), nil
}

func (r *SearchRequest) UnmarshalJSON(data []byte) error {
	v := ldvalue.Parse(data)
	if v.Type() != ldvalue.ObjectType {
		return errors.New("search request must be a JSON object")
	}
	*r = SearchRequest{}
	if q := v.GetByKey(FieldQuery); q.IsString() {
		r.Query = ldvalue.NewOptionalString(q.StringValue())
	}
	if qs := v.GetByKey(FieldQueries); qs.Type() == ldvalue.ArrayType {
		r.Queries = make([]string, 0, qs.Count())
		for i := 0; i < qs.Count(); i++ {
			r.Queries = append(r.Queries, qs.GetByIndex(i).StringValue())
		}
	}
	r.Count = v.GetByKey(FieldCount).IntValue()
	return nil
}

// String returns the JSON encoding, for logging.
func (r SearchRequest) String() string {
	data, _ := json.Marshal(r)
	return string(data)
}

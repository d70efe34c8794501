package searchtests

import (
	"fmt"

	"github.com/localkb/search-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Shape identifies one of the ways a client may phrase a search request. The server
// has to tell them apart from the request body alone.
type Shape int

const (
	// ShapeSimple sets "query" to a plain search string.
	ShapeSimple Shape = iota
	// ShapeMulti sets "queries" to a list of search strings and leaves "query" out.
	ShapeMulti
	// ShapeEmbedded sets "query" to a string that is itself a JSON object with a
	// "queries" array. The server must decode it rather than search for it literally.
	ShapeEmbedded
	// ShapeEmpty sets "query" to "". The server must treat this as no search at all.
	ShapeEmpty
	// ShapeFormat is a simple query asking for a single result, used to check the
	// response schema in isolation.
	ShapeFormat
)

const (
	simpleQuery = "MSX computer"
	simpleCount = 5
	multiCount  = 3
	embedCount  = 5
	emptyCount  = 5
	formatQuery = "test"
	formatCount = 1
)

var (
	multiQueries    = []string{"x68000", "Sharp computer"}
	embeddedQueries = []string{"retro computer", "vintage"}
)

func (s Shape) String() string {
	switch s {
	case ShapeSimple:
		return "simple"
	case ShapeMulti:
		return "multi"
	case ShapeEmbedded:
		return "embedded"
	case ShapeEmpty:
		return "empty"
	case ShapeFormat:
		return "format"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// BuildRequest returns the canonical request for a shape. It panics on an unknown shape.
func BuildRequest(shape Shape) servicedef.SearchRequest {
	switch shape {
	case ShapeSimple:
		return servicedef.SearchRequest{Query: ldvalue.NewOptionalString(simpleQuery), Count: simpleCount}
	case ShapeMulti:
		return servicedef.SearchRequest{Queries: append([]string(nil), multiQueries...), Count: multiCount}
	case ShapeEmbedded:
		return servicedef.SearchRequest{Query: ldvalue.NewOptionalString(EmbeddedQuery(embeddedQueries...)), Count: embedCount}
	case ShapeEmpty:
		return servicedef.SearchRequest{Query: ldvalue.NewOptionalString(""), Count: emptyCount}
	case ShapeFormat:
		return servicedef.SearchRequest{Query: ldvalue.NewOptionalString(formatQuery), Count: formatCount}
	default:
		panic(fmt.Sprintf("no request defined for %s", shape))
	}
}

// EmbeddedQuery encodes queries the way some clients smuggle them through the "query"
// field: as a JSON object with a "queries" array, serialized to a string.
func EmbeddedQuery(queries ...string) string {
	qs := ldvalue.ArrayBuild()
	for _, q := range queries {
		qs.Add(ldvalue.String(q))
	}
	return ldvalue.ObjectBuild().Set(servicedef.FieldQueries, qs.Build()).Build().JSONString()
}

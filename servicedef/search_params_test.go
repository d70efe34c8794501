package servicedef

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestSearchRequestOmitsUndefinedFields(t *testing.T) {
	data, err := json.Marshal(SearchRequest{Queries: []string{"a", "b"}, Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"queries":["a","b"],"count":3}`, string(data))
}

func TestSearchRequestKeepsEmptyQuery(t *testing.T) {
	data, err := json.Marshal(SearchRequest{Query: ldvalue.NewOptionalString(""), Count: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"","count":5}`, string(data))
}

func TestSearchRequestDecodesAbsentQueryAsUndefined(t *testing.T) {
	var r SearchRequest
	require.NoError(t, json.Unmarshal([]byte(`{"queries":["x"],"count":2}`), &r))
	assert.False(t, r.Query.IsDefined())
	assert.Equal(t, []string{"x"}, r.Queries)
	assert.Equal(t, 2, r.Count)
}

func TestSearchRequestRejectsNonObject(t *testing.T) {
	var r SearchRequest
	assert.Error(t, json.Unmarshal([]byte(`["query"]`), &r))
}

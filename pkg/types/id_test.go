package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID       ID `json:"id"`
	ParentID ID `json:"parent_id"`
}

func TestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		id     ID
		parent ID
	}{
		{name: "numbers", in: `{"id":12,"parent_id":3}`, id: "12", parent: "3"},
		{name: "strings", in: `{"id":"12","parent_id":"emp-3"}`, id: "12", parent: "emp-3"},
		{name: "null parent", in: `{"id":"a1","parent_id":null}`, id: "a1"},
		{name: "missing parent", in: `{"id":7}`, id: "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r record
			require.NoError(t, json.Unmarshal([]byte(tt.in), &r))
			assert.Equal(t, tt.id, r.ID)
			assert.Equal(t, tt.parent, r.ParentID)
		})
	}

	var r record
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &r))
	assert.Error(t, json.Unmarshal([]byte(`{"id":{}}`), &r))
}

func TestID_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(record{ID: "12", ParentID: "emp-3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":12,"parent_id":"emp-3"}`, string(out))

	out, err = json.Marshal(record{ID: "007"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"007","parent_id":null}`, string(out))
}

func TestID_Helpers(t *testing.T) {
	assert.True(t, ID("").IsZero())
	assert.True(t, ID("0").IsZero())
	assert.False(t, ID("10").IsZero())
	assert.Equal(t, "a%2Fb", ID("a/b").PathSegment())
	assert.Equal(t, "x", ID("x").String())

	id, err := ParseID("  42 ")
	require.NoError(t, err)
	assert.Equal(t, ID("42"), id)
	_, err = ParseID(" ")
	assert.Error(t, err)
}

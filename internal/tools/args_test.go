package tools

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func argsOf(values map[string]any) Args {
	req := mcp.CallToolRequest{}
	req.Params.Name = "test"
	req.Params.Arguments = values
	return newArgs(req)
}

func TestArgs_String(t *testing.T) {
	a := argsOf(map[string]any{"name": "alice", "count": float64(3), "null": nil})

	assert.Equal(t, "alice", a.String("name", "x"))
	assert.Equal(t, "3", a.String("count", "x"))
	assert.Equal(t, "x", a.String("null", "x"))
	assert.Equal(t, "x", a.String("missing", "x"))
}

func TestArgs_RequireString(t *testing.T) {
	a := argsOf(map[string]any{"name": "alice", "null": nil, "count": float64(1)})

	v, err := a.RequireString("name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	_, err = a.RequireString("null")
	assert.EqualError(t, err, `required argument "null" not found`)

	_, err = a.RequireString("count")
	assert.Error(t, err)
}

func TestArgs_Int(t *testing.T) {
	a := argsOf(map[string]any{
		"float":  float64(10),
		"number": json.Number("7"),
		"text":   "12",
		"frac":   2.5,
		"bad":    "many",
		"bool":   true,
	})

	tests := []struct {
		key     string
		want    int
		wantErr bool
	}{
		{"float", 10, false},
		{"number", 7, false},
		{"text", 12, false},
		{"missing", 99, false},
		{"frac", 0, true},
		{"bad", 0, true},
		{"bool", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := a.Int(tt.key, 99)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := a.RequireInt("missing")
	assert.EqualError(t, err, `required argument "missing" not found`)
}

func TestArgs_Bool(t *testing.T) {
	a := argsOf(map[string]any{"yes": true, "no": false, "null": nil})

	assert.True(t, a.Bool("yes", false))
	assert.False(t, a.Bool("no", true))
	assert.True(t, a.Bool("null", true))
	assert.False(t, a.Bool("missing", false))
}

func TestArgs_ObjectAndList(t *testing.T) {
	a := argsOf(map[string]any{
		"obj":  map[string]any{"k": "v"},
		"list": []any{"a", "b"},
		"text": "nope",
	})

	obj, err := a.Object("obj")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, obj)

	obj, err = a.Object("missing")
	require.NoError(t, err)
	assert.Nil(t, obj)

	_, err = a.Object("text")
	assert.EqualError(t, err, `argument "text" must be an object`)

	list, err := a.RequireList("list")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, list)

	_, err = a.RequireList("text")
	assert.EqualError(t, err, `argument "text" must be an array`)

	_, err = a.RequireValue("missing")
	assert.Error(t, err)
}

func TestArgs_NilArguments(t *testing.T) {
	a := argsOf(nil)

	assert.False(t, a.Has("anything"))
	assert.Equal(t, "d", a.String("anything", "d"))
}

package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

// Args wraps the arguments of one tool call. A key holding JSON null counts as absent.
type Args struct {
	req    mcp.CallToolRequest
	values map[string]any
}

func newArgs(req mcp.CallToolRequest) Args {
	values := req.GetArguments()
	if values == nil {
		values = map[string]any{}
	}
	return Args{req: req, values: values}
}

// Has reports whether key was supplied with a non-null value.
func (a Args) Has(key string) bool {
	v, ok := a.values[key]
	return ok && v != nil
}

// Raw returns the value as supplied.
func (a Args) Raw(key string) any {
	return a.values[key]
}

// String returns the argument rendered as text, or def when absent.
func (a Args) String(key, def string) string {
	if !a.Has(key) {
		return def
	}
	if s, ok := a.values[key].(string); ok {
		return s
	}
	return render(a.values[key])
}

// RequireString returns a required string argument.
func (a Args) RequireString(key string) (string, error) {
	if !a.Has(key) {
		return "", fmt.Errorf("required argument %q not found", key)
	}
	return a.req.RequireString(key)
}

// Int returns an integer argument, or def when absent.
func (a Args) Int(key string, def int) (int, error) {
	if !a.Has(key) {
		return def, nil
	}
	return toInt(key, a.values[key])
}

// RequireInt returns a required integer argument.
func (a Args) RequireInt(key string) (int, error) {
	if !a.Has(key) {
		return 0, fmt.Errorf("required argument %q not found", key)
	}
	return toInt(key, a.values[key])
}

// Bool returns a boolean argument, or def when absent.
func (a Args) Bool(key string, def bool) bool {
	if !a.Has(key) {
		return def
	}
	return a.req.GetBool(key, def)
}

// Object returns an object argument, or nil when absent.
func (a Args) Object(key string) (map[string]any, error) {
	if !a.Has(key) {
		return nil, nil
	}
	obj, ok := a.values[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an object", key)
	}
	return obj, nil
}

// RequireValue returns a required argument of any JSON type.
func (a Args) RequireValue(key string) (any, error) {
	if !a.Has(key) {
		return nil, fmt.Errorf("required argument %q not found", key)
	}
	return a.values[key], nil
}

// RequireList returns a required array argument.
func (a Args) RequireList(key string) ([]any, error) {
	if !a.Has(key) {
		return nil, fmt.Errorf("required argument %q not found", key)
	}
	list, ok := a.values[key].([]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an array", key)
	}
	return list, nil
}

func toInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", key, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer, got %s", key, n)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer, got %q", key, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, v)
	}
}

package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// object is a decoded JSON object. Lookups treat JSON null the same as a missing key.
type object map[string]any

// expectObject asserts that a backend response is a JSON object.
func expectObject(v any) (object, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected response format: expected a JSON object, got %s", jsonKind(v))
	}
	return object(m), nil
}

func asObject(v any) object {
	switch m := v.(type) {
	case object:
		return m
	case map[string]any:
		return object(m)
	default:
		return nil
	}
}

func (o object) has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// str renders the value under key, or def when it is absent.
func (o object) str(key, def string) string {
	if !o.has(key) {
		return def
	}
	return render(o[key])
}

// num renders a numeric field, defaulting to 0.
func (o object) num(key string) string {
	return o.str(key, "0")
}

func (o object) obj(key string) object {
	return asObject(o[key])
}

func (o object) list(key string) []any {
	l, _ := o[key].([]any)
	return l
}

func (o object) flag(key string) bool {
	return truthy(o[key])
}

func (o object) float(key string) float64 {
	f, _ := toFloat(o[key])
	return f
}

func (o object) int(key string) int64 {
	f, _ := toFloat(o[key])
	return int64(f)
}

// keys returns the object keys in sorted order.
func (o object) keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// render formats a JSON value for display.
func render(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "True"
		}
		return "False"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case json.Number:
		f, err := val.Float64()
		return err != nil || f != 0
	case float64:
		return val != 0
	case int:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func enabledDisabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

// truncate cuts s to limit characters and appends "..." when it was longer.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// joinValues renders every list element and joins them with ", ".
func joinValues(list []any) string {
	parts := make([]string, 0, len(list))
	for _, v := range list {
		parts = append(parts, render(v))
	}
	return strings.Join(parts, ", ")
}

// comma formats a number with thousands separators.
func comma(v any) string {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return humanize.Comma(i)
		}
	case int:
		return humanize.Comma(int64(val))
	case int64:
		return humanize.Comma(val)
	}
	f, ok := toFloat(v)
	if !ok {
		return "0"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return humanize.Comma(int64(f))
	}
	return humanize.Commaf(f)
}

// fixed1 formats a number with one decimal place.
func fixed1(v any) string {
	f, _ := toFloat(v)
	return fmt.Sprintf("%.1f", f)
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// countEntry is one name/count pair of a JSON object of counters.
type countEntry struct {
	Name  string
	Count any
	Value float64
}

// byCountDesc returns the counters of o, largest first. Ties keep key order.
func byCountDesc(o object) []countEntry {
	entries := make([]countEntry, 0, len(o))
	for _, k := range o.keys() {
		f, _ := toFloat(o[k])
		entries = append(entries, countEntry{Name: k, Count: o[k], Value: f})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Value > entries[j].Value })
	return entries
}

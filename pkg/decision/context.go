package decision

import (
	"strings"
	"time"
)

// Context is the immutable input data a decision is evaluated against.
// It maps dot-separated field paths to typed values (strings, numbers,
// booleans, nulls, arrays, nested maps, timestamps).
//
// The input map is deep-copied at construction and never mutated afterwards,
// so one Context can be shared by any number of concurrent evaluations. The
// reference time is pinned at construction: temporal operators resolve "now"
// against it, which keeps repeated evaluations of the same Context
// deterministic.
type Context struct {
	data map[string]interface{}
	now  time.Time
}

// NewContext creates a Context from the given data, pinning the reference
// time to the current wall clock in UTC.
func NewContext(data map[string]interface{}) *Context {
	return NewContextAt(data, time.Now().UTC())
}

// NewContextAt creates a Context with an explicit reference time. Use this
// to make temporal operators reproducible in tests and replays.
func NewContextAt(data map[string]interface{}, now time.Time) *Context {
	return &Context{
		data: copyValue(data).(map[string]interface{}),
		now:  now.UTC(),
	}
}

// Now returns the pinned reference time.
func (c *Context) Now() time.Time {
	return c.now
}

// Lookup resolves a dot-separated field path against the context data.
// Missing intermediate segments yield (nil, false), never an error.
func (c *Context) Lookup(path string) (interface{}, bool) {
	return c.LookupSegments(strings.Split(path, "."))
}

// LookupSegments resolves a pre-split field path. Callers that evaluate the
// same paths repeatedly can cache the split and avoid re-splitting.
func (c *Context) LookupSegments(segments []string) (interface{}, bool) {
	if len(segments) == 0 {
		return nil, false
	}

	var current interface{} = c.data
	for _, segment := range segments {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = m[segment]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Data returns a deep copy of the context data. The copy is safe to modify.
func (c *Context) Data() map[string]interface{} {
	return copyValue(c.data).(map[string]interface{})
}

// Len returns the number of top-level fields.
func (c *Context) Len() int {
	return len(c.data)
}

// copyValue deep-copies a decoded JSON/YAML value tree. Scalars are returned
// as-is; maps and slices are copied recursively. Map keys from YAML decoding
// (map[interface{}]interface{}) are normalized to strings.
func copyValue(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			out[k] = copyValue(item)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			key, ok := k.(string)
			if !ok {
				continue
			}
			out[key] = copyValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = copyValue(item)
		}
		return out
	default:
		return v
	}
}

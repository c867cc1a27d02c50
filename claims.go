package authx

import (
	"encoding/json"
	"time"
)

// Claims is the open mapping decoded from an ID token payload. Values keep
// the shapes the parser produced: strings, booleans, numbers, string slices,
// and time.Time for the registered temporal claims.
type Claims map[string]any

// String returns the named claim as a string, or "" when absent or not a
// string.
func (c Claims) String(name string) string {
	if v, ok := c[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Bool returns the named claim as a boolean. Providers serialize boolean
// claims either as JSON booleans or as "true"/"false" strings.
func (c Claims) Bool(name string) bool {
	switch v := c[name].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

// StringSlice returns the named claim as a slice of strings, dropping
// non-string elements. Absent or scalar claims yield nil.
func (c Claims) StringSlice(name string) []string {
	switch v := c[name].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case string:
		if v != "" {
			return []string{v}
		}
		return nil
	default:
		return nil
	}
}

// EpochTime returns the named claim interpreted as a point in time. Temporal
// claims arrive either already parsed (time.Time) or as epoch seconds in one
// of the JSON number shapes. The second return reports whether the claim was
// present and well-formed.
func (c Claims) EpochTime(name string) (time.Time, bool) {
	switch v := c[name].(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	case int:
		return time.Unix(int64(v), 0), true
	case json.Number:
		sec, err := v.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(sec, 0), true
	default:
		return time.Time{}, false
	}
}

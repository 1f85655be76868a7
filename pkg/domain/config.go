package domain

import "strconv"

// Config holds the accumulated, validated answers for a flow. Values are
// JSON-generic (string, bool, int/float64, []any, map[string]any) so that a
// session survives a marshal round-trip through any store unchanged.
type Config map[string]any

// Clone deep-copies the configuration.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, e := range t {
			m[k] = e
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}

// String returns the value for key as a string, or fallback when absent or
// not a string.
func (c Config) String(key, fallback string) string {
	if s, ok := c[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// Int returns the value for key as an int. JSON decoding turns numbers into
// float64, so both representations are accepted.
func (c Config) Int(key string, fallback int) int {
	switch t := c[key].(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n
		}
	}
	return fallback
}

// Bool returns the value for key as a bool, or fallback when absent.
func (c Config) Bool(key string, fallback bool) bool {
	if b, ok := c[key].(bool); ok {
		return b
	}
	return fallback
}

package form

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// stringValue converts a bound value to its string form. Lists join with sep.
func stringValue(v any, sep string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return strings.Join(t, sep)
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, stringValue(p, sep))
		}
		return strings.Join(parts, sep)
	case bool:
		if t {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// stringList returns the elements of a list value, or the value wrapped in a
// one element list.
func stringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, p := range t {
			out = append(out, stringValue(p, ","))
		}
		return out
	default:
		return []string{stringValue(t, ",")}
	}
}

func isList(v any) bool {
	switch v.(type) {
	case []string, []any:
		return true
	}
	return false
}

// isBlank mirrors the loose emptiness used by the bool and url filters:
// nil, "", "0", false, zero numbers and empty lists are blank. Words such as
// "false" or "no" are not blank.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == "" || t == "0"
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case Data:
		return len(t) == 0
	}
	return false
}

// intValue parses the leading integer of a value: leading whitespace and an
// optional sign are accepted, parsing stops at the first non digit. Lists are
// 1 when non empty.
func intValue(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case int:
		return int64(t)
	case int64:
		return t
	case float64:
		return int64(t)
	case []string, []any:
		if isBlank(t) {
			return 0
		}
		return 1
	}

	s := strings.TrimLeftFunc(stringValue(v, ","), unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

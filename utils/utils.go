package utils

import (
	"net/url"
	"strings"
)

func StringInSlice(a string, list []string) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}

// SplitCommaSeparated flattens repeated and comma separated values into one
// list, dropping blanks.
func SplitCommaSeparated(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// QueryParamsToMap echoes query parameters back to clients: single values as
// strings, repeated ones as lists.
func QueryParamsToMap(values url.Values) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for key, vs := range values {
		if len(vs) == 1 {
			out[key] = vs[0]
			continue
		}
		out[key] = vs
	}
	return out
}

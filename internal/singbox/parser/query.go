package parser

import "strings"

// ParseQuery splits a raw query (no leading '?') into key/value pairs.
// Segments without '=' are skipped, later keys overwrite earlier ones and
// nothing is percent-decoded. net/url is not used because it rejects or
// rewrites values that share links carry verbatim (';', bare '%', '+').
func ParseQuery(s string) map[string]string {
	q := make(map[string]string)
	for _, part := range strings.Split(s, "&") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		q[k] = v
	}
	return q
}


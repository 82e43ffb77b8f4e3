package parser

import (
	"encoding/base64"
	"strconv"
	"strings"
)

// DecodeBase64Padded repairs missing '=' padding and decodes with the
// standard alphabet. URL-safe and raw alphabets are not accepted.
func DecodeBase64Padded(s string) ([]byte, error) {
	b, err := decodeBase64(s)
	if err != nil {
		return nil, &ParseError{Kind: MalformedBase64, Message: "invalid base64", Cause: err}
	}
	return b, nil
}

// decodeBase64 is DecodeBase64Padded without the ParseError, for decoders
// that attach their own scheme and message.
func decodeBase64(s string) ([]byte, error) {
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	return base64.StdEncoding.DecodeString(s)
}

var minimalPercent = strings.NewReplacer(
	"%3D", "=",
	"%2B", "+",
	"%2F", "/",
)

// DecodeMinimalPercent unescapes only %3D, %2B and %2F. Every other
// percent sequence is left alone.
func DecodeMinimalPercent(s string) string {
	return minimalPercent.Replace(s)
}

// FixIllegalUrl cleans up common issues in pasted links.
func FixIllegalUrl(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// cutFragment drops a trailing #label.
func cutFragment(s string) string {
	before, _, _ := strings.Cut(s, "#")
	return before
}

// cutLast splits s around the last occurrence of sep.
func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// splitHostPort splits at the last colon so that address literals like
// 2001:db8::1:443 keep their inner colons in the host.
func splitHostPort(scheme Scheme, addr string) (string, uint16, error) {
	host, portStr, ok := cutLast(addr, ":")
	if !ok {
		return "", 0, newError(scheme, MissingSeparator, nil, "address %q has no ':' before the port", addr)
	}
	port, err := parsePort(scheme, portStr)
	if err != nil {
		return "", 0, err
	}
	return host, port, nil
}

func parsePort(scheme Scheme, s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, newError(scheme, InvalidPort, err, "port %q is not a number in 1-65535", s)
	}
	if n == 0 {
		return 0, newError(scheme, InvalidPort, nil, "port must be in 1-65535, got 0")
	}
	return uint16(n), nil
}

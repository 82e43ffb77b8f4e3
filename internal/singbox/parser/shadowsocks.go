package parser

import (
	"strings"
	"unicode/utf8"
)

// parseShadowsocks accepts both the legacy form
//
//	ss://base64(method:password@host:port)
//
// and SIP002 with base64 user info
//
//	ss://base64(method:password)@host:port
func parseShadowsocks(body string) (*Shadowsocks, error) {
	decoded, err := decodeShadowsocksBody(body)
	if err != nil {
		return nil, err
	}

	userInfo, addr, ok := cutLast(decoded, "@")
	if !ok {
		return nil, newError(SchemeShadowsocks, MissingSeparator, nil, "missing '@' between user info and address")
	}

	method, password, ok := strings.Cut(userInfo, ":")
	if !ok {
		return nil, newError(SchemeShadowsocks, MissingSeparator, nil, "user info is not method:password")
	}

	server, port, err := splitHostPort(SchemeShadowsocks, addr)
	if err != nil {
		return nil, err
	}

	return &Shadowsocks{
		Server:     server,
		ServerPort: port,
		Method:     method,
		Password:   password,
	}, nil
}

func decodeShadowsocksBody(body string) (string, error) {
	// Legacy: the whole body is base64.
	full, fullErr := decodeBase64(body)
	if fullErr == nil {
		if !utf8.Valid(full) {
			return "", newError(SchemeShadowsocks, InvalidEncoding, nil, "decoded link is not valid UTF-8")
		}
		return string(full), nil
	}

	// SIP002: only the user info is base64.
	userB64, hostPart, ok := strings.Cut(body, "@")
	if !ok {
		return "", newError(SchemeShadowsocks, MalformedBase64, fullErr, "link is neither base64 nor base64@host:port")
	}
	user, err := decodeBase64(userB64)
	if err != nil {
		return "", newError(SchemeShadowsocks, MalformedBase64, err, "user info is not base64")
	}
	if !utf8.Valid(user) {
		return "", newError(SchemeShadowsocks, InvalidEncoding, nil, "decoded user info is not valid UTF-8")
	}
	return string(user) + "@" + hostPart, nil
}

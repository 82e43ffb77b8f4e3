package parser

import "strings"

func parseAnyTLS(body string) (*AnyTLS, error) {
	body, _, _ = strings.Cut(body, "?")

	password, rest, ok := cutLast(body, "@")
	if !ok {
		return nil, newError(SchemeAnyTLS, MissingSeparator, nil, "missing '@' after password")
	}
	server, port, err := splitHostPort(SchemeAnyTLS, rest)
	if err != nil {
		return nil, err
	}
	return &AnyTLS{Server: server, ServerPort: port, Password: password}, nil
}

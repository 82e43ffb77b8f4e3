package parser

import "strings"

// parseTrojan reads trojan://password@host:port. Any query is dropped.
func parseTrojan(body string) (*Trojan, error) {
	password, rest, ok := cutLast(body, "@")
	if !ok {
		return nil, newError(SchemeTrojan, MissingSeparator, nil, "missing '@' after password")
	}
	addr, _, _ := strings.Cut(rest, "?")

	server, port, err := splitHostPort(SchemeTrojan, addr)
	if err != nil {
		return nil, err
	}
	return &Trojan{Server: server, ServerPort: port, Password: password}, nil
}

package parser

import "strings"

func parseVLess(body string) (*VLess, error) {
	uuid, rest, ok := cutLast(body, "@")
	if !ok {
		return nil, newError(SchemeVLess, MissingSeparator, nil, "missing '@' after uuid")
	}
	addr, query, _ := strings.Cut(rest, "?")

	server, port, err := splitHostPort(SchemeVLess, addr)
	if err != nil {
		return nil, err
	}

	q := ParseQuery(query)
	p := &VLess{
		Server:     server,
		ServerPort: port,
		UUID:       uuid,
		Flow:       q["flow"],
		Network:    q["type"],
		Security:   q["security"],
		SNI:        q["sni"],
		Host:       q["host"],
		Path:       q["path"],
		ALPN:       q["alpn"],
	}
	if p.Network == "" {
		p.Network = "tcp"
	}
	return p, nil
}

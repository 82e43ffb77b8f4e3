package parser

import "strings"

// parseHysteria2 handles both hy2:// and hysteria2:// bodies. The
// credential before '@' becomes the password.
func parseHysteria2(body string) (*Hysteria2, error) {
	credential, rest, ok := cutLast(body, "@")
	if !ok {
		return nil, newError(SchemeHysteria2, MissingSeparator, nil, "missing '@' after credential")
	}
	addr, query, _ := strings.Cut(rest, "?")

	server, port, err := splitHostPort(SchemeHysteria2, addr)
	if err != nil {
		return nil, err
	}

	q := ParseQuery(query)
	p := &Hysteria2{
		Server:       server,
		ServerPort:   port,
		Password:     credential,
		Peer:         q["peer"],
		ObfsPassword: DecodeMinimalPercent(q["obfs-password"]),
		SNI:          q["sni"],
		ALPN:         q["alpn"],
	}
	if v, ok := q["insecure"]; ok {
		p.Insecure = OptionalBool{Value: v == "1", Valid: true}
	}
	if v, ok := q["obfs"]; ok {
		p.Obfs = OptionalString{Value: v, Valid: true}
	}
	return p, nil
}

package parser

import (
	"fmt"
	"strings"
)

var prefixes = []struct {
	prefix string
	scheme Scheme
}{
	{"ss://", SchemeShadowsocks},
	{"vmess://", SchemeVMess},
	{"trojan://", SchemeTrojan},
	{"vless://", SchemeVLess},
	{"hy2://", SchemeHysteria2},
	{"hysteria2://", SchemeHysteria2},
	{"anytls://", SchemeAnyTLS},
}

// SupportedPrefixes lists the accepted link prefixes in match order.
func SupportedPrefixes() []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p.prefix)
	}
	return out
}

// Classify matches raw against the known prefixes and strips the prefix
// and any #fragment.
func Classify(raw string) (ProxyLink, error) {
	raw = FixIllegalUrl(raw)
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(raw, p.prefix); ok {
			return ProxyLink{Scheme: p.scheme, Body: cutFragment(rest)}, nil
		}
	}
	return ProxyLink{}, &ParseError{
		Kind:    UnsupportedScheme,
		Message: fmt.Sprintf("unsupported link, expected one of %s", strings.Join(SupportedPrefixes(), ", ")),
	}
}

// Parse classifies raw and hands it to the matching decoder.
func Parse(raw string) (Endpoint, error) {
	link, err := Classify(raw)
	if err != nil {
		return nil, err
	}
	switch link.Scheme {
	case SchemeShadowsocks:
		return parseShadowsocks(link.Body)
	case SchemeVMess:
		return parseVMess(link.Body)
	case SchemeTrojan:
		return parseTrojan(link.Body)
	case SchemeVLess:
		return parseVLess(link.Body)
	case SchemeHysteria2:
		return parseHysteria2(link.Body)
	case SchemeAnyTLS:
		return parseAnyTLS(link.Body)
	default:
		return nil, &ParseError{Kind: UnsupportedScheme, Message: fmt.Sprintf("no decoder for %s", link.Scheme)}
	}
}

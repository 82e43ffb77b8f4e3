package singbox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"kiki/internal/singbox/parser"

	"github.com/samber/lo"
)

// ProxyTag is the tag of the outbound slot this tool owns.
const ProxyTag = "proxy"

// BuildOutbound converts a decoded endpoint into a sing-box outbound.
// tag is written verbatim as the outbound's "tag"; nil becomes null.
// The result is compact JSON and identical for identical inputs.
func BuildOutbound(ep parser.Endpoint, tag json.RawMessage) ([]byte, error) {
	var out any

	switch e := ep.(type) {
	case *parser.Shadowsocks:
		out = buildShadowsocks(e, tag)
	case *parser.VMess:
		out = buildVMess(e, tag)
	case *parser.Trojan:
		out = buildTrojan(e, tag)
	case *parser.VLess:
		out = buildVLess(e, tag)
	case *parser.Hysteria2:
		out = buildHysteria2(e, tag)
	case *parser.AnyTLS:
		out = buildAnyTLS(e, tag)
	default:
		return nil, fmt.Errorf("outbound conversion not implemented: %T", ep)
	}

	return marshalCompact(out)
}

// --- Outbound shapes ---

type emptyObject struct{}

type transportOptions struct {
	Type        string            `json:"type"`
	Host        string            `json:"host,omitempty"`
	Path        string            `json:"path,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ServiceName string            `json:"service_name,omitempty"`
}

// tlsOptions marshals to {} when TLS is off.
type tlsOptions struct {
	Enabled    bool         `json:"enabled,omitempty"`
	ServerName string       `json:"server_name,omitempty"`
	Insecure   *bool        `json:"insecure,omitempty"`
	ALPN       []string     `json:"alpn,omitempty"`
	UTLS       *utlsOptions `json:"utls,omitempty"`
}

type utlsOptions struct {
	Enabled     bool   `json:"enabled"`
	Fingerprint string `json:"fingerprint"`
}

type shadowsocksOutbound struct {
	Tag        json.RawMessage `json:"tag"`
	Type       string          `json:"type"`
	Server     string          `json:"server"`
	ServerPort uint16          `json:"server_port"`
	Method     string          `json:"method"`
	Password   string          `json:"password"`
}

type vmessOutbound struct {
	Tag                 json.RawMessage  `json:"tag"`
	Type                string           `json:"type"`
	Server              string           `json:"server"`
	ServerPort          uint16           `json:"server_port"`
	UUID                string           `json:"uuid"`
	Security            string           `json:"security"`
	AlterID             int              `json:"alter_id"`
	Network             string           `json:"network"`
	Transport           transportOptions `json:"transport"`
	TLS                 tlsOptions       `json:"tls"`
	GlobalPadding       bool             `json:"global_padding"`
	AuthenticatedLength bool             `json:"authenticated_length"`
	PacketEncoding      string           `json:"packet_encoding"`
	Multiplex           emptyObject      `json:"multiplex"`
}

type trojanOutbound struct {
	Tag        json.RawMessage `json:"tag"`
	Type       string          `json:"type"`
	Server     string          `json:"server"`
	ServerPort uint16          `json:"server_port"`
	Password   string          `json:"password"`
	Network    string          `json:"network"`
	TLS        emptyObject     `json:"tls"`
	Multiplex  emptyObject     `json:"multiplex"`
	Transport  emptyObject     `json:"transport"`
}

type vlessOutbound struct {
	Tag            json.RawMessage  `json:"tag"`
	Type           string           `json:"type"`
	Server         string           `json:"server"`
	ServerPort     uint16           `json:"server_port"`
	UUID           string           `json:"uuid"`
	Flow           string           `json:"flow,omitempty"`
	Network        string           `json:"network"`
	Transport      transportOptions `json:"transport"`
	TLS            tlsOptions       `json:"tls"`
	PacketEncoding string           `json:"packet_encoding"`
	Multiplex      emptyObject      `json:"multiplex"`
}

type hysteria2Obfs struct {
	Type     string `json:"type"`
	Password string `json:"password,omitempty"`
}

type hysteria2Outbound struct {
	Tag        json.RawMessage `json:"tag"`
	Type       string          `json:"type"`
	Server     string          `json:"server"`
	ServerPort uint16          `json:"server_port"`
	Password   string          `json:"password"`
	Obfs       *hysteria2Obfs  `json:"obfs,omitempty"`
	TLS        *tlsOptions     `json:"tls,omitempty"`
}

type anytlsOutbound struct {
	Tag        json.RawMessage `json:"tag"`
	Type       string          `json:"type"`
	Server     string          `json:"server"`
	ServerPort uint16          `json:"server_port"`
	Password   string          `json:"password"`
	TLS        emptyObject     `json:"tls"`
}

// --- Builders ---

func buildShadowsocks(e *parser.Shadowsocks, tag json.RawMessage) *shadowsocksOutbound {
	return &shadowsocksOutbound{
		Tag:        tag,
		Type:       "shadowsocks",
		Server:     e.Server,
		ServerPort: e.ServerPort,
		Method:     e.Method,
		Password:   e.Password,
	}
}

func buildVMess(e *parser.VMess, tag json.RawMessage) *vmessOutbound {
	out := &vmessOutbound{
		Tag:                 tag,
		Type:                "vmess",
		Server:              e.Server,
		ServerPort:          e.ServerPort,
		UUID:                e.UUID,
		Security:            e.Security,
		AlterID:             e.AlterID,
		Network:             e.Network,
		Transport:           buildTransport(e.Network, e.Host, e.Path, false),
		AuthenticatedLength: true,
	}

	if e.TLS != "" && e.TLS != "false" && e.TLS != "none" {
		out.TLS = buildTLS(e.SNI, e.Host, e.ALPN)
		if e.Fingerprint != "" {
			out.TLS.UTLS = &utlsOptions{Enabled: true, Fingerprint: e.Fingerprint}
		}
	}
	return out
}

func buildTrojan(e *parser.Trojan, tag json.RawMessage) *trojanOutbound {
	return &trojanOutbound{
		Tag:        tag,
		Type:       "trojan",
		Server:     e.Server,
		ServerPort: e.ServerPort,
		Password:   e.Password,
		Network:    "tcp",
	}
}

func buildVLess(e *parser.VLess, tag json.RawMessage) *vlessOutbound {
	out := &vlessOutbound{
		Tag:        tag,
		Type:       "vless",
		Server:     e.Server,
		ServerPort: e.ServerPort,
		UUID:       e.UUID,
		Flow:       e.Flow,
		Network:    e.Network,
		Transport:  buildTransport(e.Network, e.Host, e.Path, true),
	}
	if e.Security != "" && e.Security != "none" {
		out.TLS = buildTLS(e.SNI, e.Host, e.ALPN)
	}
	return out
}

func buildHysteria2(e *parser.Hysteria2, tag json.RawMessage) *hysteria2Outbound {
	out := &hysteria2Outbound{
		Tag:        tag,
		Type:       "hysteria2",
		Server:     e.Server,
		ServerPort: e.ServerPort,
		Password:   e.Password,
	}

	if e.Obfs.Valid && e.Obfs.Value != "" {
		out.Obfs = &hysteria2Obfs{Type: e.Obfs.Value, Password: e.ObfsPassword}
	}

	serverName := lo.CoalesceOrEmpty(e.SNI, e.Peer)
	alpn := splitALPN(e.ALPN)
	insecure := e.Insecure.Valid && e.Insecure.Value

	if insecure || serverName != "" || len(alpn) > 0 {
		out.TLS = &tlsOptions{
			Enabled:    true,
			ServerName: serverName,
			ALPN:       alpn,
		}
		if e.Insecure.Valid {
			v := e.Insecure.Value
			out.TLS.Insecure = &v
		}
	}
	return out
}

func buildAnyTLS(e *parser.AnyTLS, tag json.RawMessage) *anytlsOutbound {
	return &anytlsOutbound{
		Tag:        tag,
		Type:       "anytls",
		Server:     e.Server,
		ServerPort: e.ServerPort,
		Password:   e.Password,
	}
}

// buildTransport maps a link's network onto a sing-box transport. grpc is
// only understood for vless links.
func buildTransport(network, host, path string, grpc bool) transportOptions {
	switch {
	case network == "ws":
		t := transportOptions{Type: "websocket", Path: path}
		if host != "" {
			t.Headers = map[string]string{"Host": host}
		}
		return t
	case network == "h2":
		return transportOptions{Type: "http", Host: host, Path: path}
	case network == "grpc" && grpc:
		return transportOptions{Type: "grpc", ServiceName: path}
	default:
		return transportOptions{Type: network}
	}
}

func buildTLS(sni, host, alpn string) tlsOptions {
	return tlsOptions{
		Enabled:    true,
		ServerName: lo.CoalesceOrEmpty(sni, host),
		ALPN:       splitALPN(alpn),
	}
}

// splitALPN splits a comma list and trims each entry. Empty entries are dropped.
func splitALPN(s string) []string {
	if s == "" {
		return nil
	}
	return lo.Compact(lo.Map(strings.Split(s, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	}))
}

func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode outbound: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

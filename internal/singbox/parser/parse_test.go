package parser

import (
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func b64NoPad(s string) string {
	return base64.RawStdEncoding.EncodeToString([]byte(s))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want ProxyLink
	}{
		{"ss://abc#tag", ProxyLink{SchemeShadowsocks, "abc"}},
		{"vmess://abc", ProxyLink{SchemeVMess, "abc"}},
		{"trojan://pw@h:1#x#y", ProxyLink{SchemeTrojan, "pw@h:1"}},
		{"vless://u@h:1?type=ws", ProxyLink{SchemeVLess, "u@h:1?type=ws"}},
		{"hy2://c@h:1", ProxyLink{SchemeHysteria2, "c@h:1"}},
		{"hysteria2://c@h:1", ProxyLink{SchemeHysteria2, "c@h:1"}},
		{"anytls://p@h:1/?sni=a", ProxyLink{SchemeAnyTLS, "p@h:1/?sni=a"}},
		{"  ss://abc\r\n", ProxyLink{SchemeShadowsocks, "abc"}},
	}
	for _, tt := range tests {
		got, err := Classify(tt.in)
		if err != nil {
			t.Fatalf("Classify(%q) unexpected err: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Classify(%q)=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestClassify_Unsupported(t *testing.T) {
	for _, in := range []string{"socks5://h:1", "SS://abc", "", "http://example.com"} {
		_, err := Classify(in)
		if !IsKind(err, UnsupportedScheme) {
			t.Fatalf("Classify(%q) err=%v, want UnsupportedScheme", in, err)
		}
		if !strings.Contains(err.Error(), "hysteria2://") {
			t.Fatalf("error should list accepted schemes: %v", err)
		}
	}
}

func TestShadowsocks_DualDecode(t *testing.T) {
	want := &Shadowsocks{Method: "aes-256-gcm", Password: "pw123", Server: "example.com", ServerPort: 8388}

	full := "ss://" + b64("aes-256-gcm:pw123@example.com:8388") + "#tag"
	partial := "ss://" + b64("aes-256-gcm:pw123") + "@example.com:8388#tag"
	partialNoPad := "ss://" + b64NoPad("aes-256-gcm:pw123") + "@example.com:8388#tag"

	for _, link := range []string{full, partial, partialNoPad} {
		ep, err := Parse(link)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected err: %v", link, err)
		}
		if !reflect.DeepEqual(ep, want) {
			t.Fatalf("Parse(%q)=%+v, want %+v", link, ep, want)
		}
	}
}

func TestShadowsocks_PasswordWithSeparators(t *testing.T) {
	ep, err := Parse("ss://" + b64("chacha20-ietf-poly1305:p:a@ss@[::1]:443"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ss := ep.(*Shadowsocks)
	if ss.Method != "chacha20-ietf-poly1305" || ss.Password != "p:a@ss" {
		t.Fatalf("method/password=%q/%q", ss.Method, ss.Password)
	}
	if ss.Server != "[::1]" || ss.ServerPort != 443 {
		t.Fatalf("server/port=%q/%d", ss.Server, ss.ServerPort)
	}
}

func TestShadowsocks_Errors(t *testing.T) {
	tests := []struct {
		link string
		kind ErrorKind
	}{
		{"ss://not-base64-and-no-@", MalformedBase64},
		{"ss://not-base64-and-no-at", MalformedBase64},
		{"ss://" + b64("aes-256-gcm:pw@host"), MissingSeparator},
		{"ss://" + b64("aes-256-gcm-pw@host:1"), MissingSeparator},
		{"ss://" + b64("aes-256-gcm:pw-host:1"), MissingSeparator},
		{"ss://" + b64("aes-256-gcm:pw@host:http"), InvalidPort},
		{"ss://" + b64("aes-256-gcm:pw@host:70000"), InvalidPort},
		{"ss://" + b64("aes-256-gcm:pw") + "@host:0", InvalidPort},
		{"ss://" + b64("\xff\xfe:pw@host:1"), InvalidEncoding},
	}
	for _, tt := range tests {
		_, err := Parse(tt.link)
		if !IsKind(err, tt.kind) {
			t.Fatalf("Parse(%q) err=%v, want %s", tt.link, err, tt.kind)
		}
	}
}

func TestRightAnchoredPortSplit(t *testing.T) {
	ep, err := Parse("trojan://secret@2001:db8::1:443")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	server, port := ep.Address()
	if server != "2001:db8::1" || port != 443 {
		t.Fatalf("server/port=%q/%d, want 2001:db8::1/443", server, port)
	}
}

func TestVMess_Defaults(t *testing.T) {
	payload := `{"add":"v.example.com","port":"443","id":"b831381d-6324-4d53-ad4f-8cda48b30811"}`
	ep, err := Parse("vmess://" + b64NoPad(payload) + "#name")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v := ep.(*VMess)
	want := &VMess{
		Server:     "v.example.com",
		ServerPort: 443,
		UUID:       "b831381d-6324-4d53-ad4f-8cda48b30811",
		Security:   "auto",
		AlterID:    0,
		Network:    "tcp",
	}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %+v, want %+v", v, want)
	}
}

func TestVMess_AllFields(t *testing.T) {
	payload := `{"v":"2","ps":"n","add":"a.com","port":8443,"id":"u","aid":"4","scy":"aes-128-gcm","net":"ws",` +
		`"type":"none","host":"h.com","path":"/ws","tls":"tls","sni":"s.com","alpn":"h2, http/1.1","fp":"chrome"}`
	ep, err := Parse("vmess://" + b64(payload))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	v := ep.(*VMess)
	if v.ServerPort != 8443 || v.AlterID != 4 || v.Security != "aes-128-gcm" || v.Network != "ws" {
		t.Fatalf("unexpected %+v", v)
	}
	if v.TLS != "tls" || v.Host != "h.com" || v.Path != "/ws" || v.SNI != "s.com" || v.ALPN != "h2, http/1.1" || v.Fingerprint != "chrome" {
		t.Fatalf("unexpected %+v", v)
	}
}

func TestVMess_Errors(t *testing.T) {
	tests := []struct {
		payload string
		kind    ErrorKind
	}{
		{`{"add":"a","port":443}`, MissingField},
		{`{"id":"u","port":443}`, MissingField},
		{`{"id":"u","add":"a"}`, MissingField},
		{`{"id":"u","add":"a","port":""}`, MissingField},
		{`{"id":"u","add":"a","port":"abc"}`, InvalidPort},
		{`{"id":"u","add":"a","port":true}`, InvalidPort},
		{`{"id":"u","add":"a","port":65536}`, InvalidPort},
		{`{"id":"u","add":"a","port":1,"aid":"x"}`, InvalidEncoding},
		{`[1,2,3]`, InvalidEncoding},
	}
	for _, tt := range tests {
		_, err := Parse("vmess://" + b64(tt.payload))
		if !IsKind(err, tt.kind) {
			t.Fatalf("payload %s: err=%v, want %s", tt.payload, err, tt.kind)
		}
	}

	if _, err := Parse("vmess://%%%"); !IsKind(err, MalformedBase64) {
		t.Fatalf("err=%v, want MalformedBase64", err)
	}
}

func TestTrojan_QueryDiscarded(t *testing.T) {
	ep, err := Parse("trojan://p%40ss@t.example.com:443?sni=x.com&type=ws#label")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := &Trojan{Server: "t.example.com", ServerPort: 443, Password: "p%40ss"}
	if !reflect.DeepEqual(ep, want) {
		t.Fatalf("got %+v, want %+v", ep, want)
	}
}

func TestVLess_Query(t *testing.T) {
	link := "vless://uuid-1@v.example.com:443?security=tls&type=grpc&path=svc&sni=s.com&flow=xtls-rprx-vision&alpn=h2&type=ws#x"
	ep, err := Parse(link)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := &VLess{
		Server:     "v.example.com",
		ServerPort: 443,
		UUID:       "uuid-1",
		Flow:       "xtls-rprx-vision",
		Network:    "ws",
		Security:   "tls",
		SNI:        "s.com",
		Path:       "svc",
		ALPN:       "h2",
	}
	if !reflect.DeepEqual(ep, want) {
		t.Fatalf("got %+v, want %+v", ep, want)
	}
}

func TestVLess_NoPort(t *testing.T) {
	_, err := Parse("vless://uuid@host")
	if !IsKind(err, MissingSeparator) {
		t.Fatalf("err=%v, want MissingSeparator", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Scheme != SchemeVLess {
		t.Fatalf("err=%#v, want vless ParseError", err)
	}
}

func TestVLess_DefaultNetwork(t *testing.T) {
	ep, err := Parse("vless://u@h:1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ep.(*VLess).Network != "tcp" {
		t.Fatalf("network=%q, want tcp", ep.(*VLess).Network)
	}
}

func TestHysteria2_TriState(t *testing.T) {
	tests := []struct {
		link     string
		insecure OptionalBool
		obfs     OptionalString
	}{
		{"hysteria2://uuid@h:443?insecure=1", OptionalBool{true, true}, OptionalString{}},
		{"hysteria2://uuid@h:443?insecure=0", OptionalBool{false, true}, OptionalString{}},
		{"hysteria2://uuid@h:443?insecure=true", OptionalBool{false, true}, OptionalString{}},
		{"hy2://uuid@h:443", OptionalBool{}, OptionalString{}},
		{"hy2://uuid@h:443?obfs=", OptionalBool{}, OptionalString{"", true}},
		{"hy2://uuid@h:443?obfs=salamander", OptionalBool{}, OptionalString{"salamander", true}},
	}
	for _, tt := range tests {
		ep, err := Parse(tt.link)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected err: %v", tt.link, err)
		}
		h := ep.(*Hysteria2)
		if h.Insecure != tt.insecure {
			t.Fatalf("Parse(%q) insecure=%+v, want %+v", tt.link, h.Insecure, tt.insecure)
		}
		if h.Obfs != tt.obfs {
			t.Fatalf("Parse(%q) obfs=%+v, want %+v", tt.link, h.Obfs, tt.obfs)
		}
	}
}

func TestHysteria2_Fields(t *testing.T) {
	ep, err := Parse("hy2://cred@[2001:db8::1]:8443?peer=p.com&sni=s.com&alpn=h3&obfs=salamander&obfs-password=a%2Bb%2Fc%3D%3D%20#n")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	h := ep.(*Hysteria2)
	if h.Password != "cred" || h.Server != "[2001:db8::1]" || h.ServerPort != 8443 {
		t.Fatalf("unexpected %+v", h)
	}
	if h.Peer != "p.com" || h.SNI != "s.com" || h.ALPN != "h3" {
		t.Fatalf("unexpected %+v", h)
	}
	if h.ObfsPassword != "a+b/c==%20" {
		t.Fatalf("obfs-password=%q, want %q", h.ObfsPassword, "a+b/c==%20")
	}
}

func TestAnyTLS(t *testing.T) {
	ep, err := Parse("anytls://pa@ss@a.example.com:8443?sni=x&insecure=1#node")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := &AnyTLS{Server: "a.example.com", ServerPort: 8443, Password: "pa@ss"}
	if !reflect.DeepEqual(ep, want) {
		t.Fatalf("got %+v, want %+v", ep, want)
	}

	if _, err := Parse("anytls://a.example.com:8443"); !IsKind(err, MissingSeparator) {
		t.Fatalf("err=%v, want MissingSeparator", err)
	}
}

func TestEndpointScheme(t *testing.T) {
	links := map[string]Scheme{
		"ss://" + b64("m:p@h:1"):                          SchemeShadowsocks,
		"vmess://" + b64(`{"id":"u","add":"a","port":1}`): SchemeVMess,
		"trojan://p@h:1":                                  SchemeTrojan,
		"vless://u@h:1":                                   SchemeVLess,
		"hy2://c@h:1":                                     SchemeHysteria2,
		"anytls://p@h:1":                                  SchemeAnyTLS,
	}
	for link, want := range links {
		ep, err := Parse(link)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected err: %v", link, err)
		}
		if ep.Scheme() != want {
			t.Fatalf("Parse(%q).Scheme()=%q, want %q", link, ep.Scheme(), want)
		}
	}
}

func TestMalformedBase64_WrappedOnce(t *testing.T) {
	for _, link := range []string{"vmess://!!!notbase64", "ss://not-base64-and-no-@", "ss://%%%@host:1"} {
		_, err := Parse(link)
		if !IsKind(err, MalformedBase64) {
			t.Fatalf("Parse(%q) err=%v, want MalformedBase64", link, err)
		}
		if n := strings.Count(err.Error(), string(MalformedBase64)); n != 1 {
			t.Fatalf("Parse(%q) err=%q mentions the kind %d times", link, err.Error(), n)
		}
		var pe *ParseError
		errors.As(err, &pe)
		if errors.As(pe.Cause, new(*ParseError)) {
			t.Fatalf("Parse(%q) cause is itself a ParseError: %v", link, pe.Cause)
		}
		var corrupt base64.CorruptInputError
		if !errors.As(err, &corrupt) {
			t.Fatalf("Parse(%q) err=%v, want a base64.CorruptInputError cause", link, err)
		}
	}
}

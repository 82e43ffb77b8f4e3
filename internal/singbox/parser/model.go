package parser

// Scheme identifies which link encoding an endpoint came from.
type Scheme string

const (
	SchemeShadowsocks Scheme = "shadowsocks"
	SchemeVMess       Scheme = "vmess"
	SchemeTrojan      Scheme = "trojan"
	SchemeVLess       Scheme = "vless"
	SchemeHysteria2   Scheme = "hysteria2"
	SchemeAnyTLS      Scheme = "anytls"
)

// ProxyLink is a classified link: the scheme plus everything after the
// prefix, with any #fragment already removed.
type ProxyLink struct {
	Scheme Scheme
	Body   string
}

// Endpoint is a decoded proxy link. The implementations in this package
// are the only ones; callers switch on the concrete type.
type Endpoint interface {
	Scheme() Scheme
	Address() (server string, port uint16)
	endpoint()
}

// OptionalBool distinguishes an absent value from an explicit true/false.
type OptionalBool struct {
	Value bool
	Valid bool
}

// OptionalString distinguishes an absent value from a present one,
// including present-but-empty.
type OptionalString struct {
	Value string
	Valid bool
}

type Shadowsocks struct {
	Server     string
	ServerPort uint16
	Method     string
	Password   string
}

type VMess struct {
	Server      string
	ServerPort  uint16
	UUID        string
	Security    string // "auto" if unset
	AlterID     int
	Network     string // "tcp" if unset
	TLS         string
	Host        string
	Path        string
	SNI         string
	ALPN        string
	Fingerprint string
}

// Trojan query parameters are not read; TLS and transport options are
// unsupported for this protocol.
type Trojan struct {
	Server     string
	ServerPort uint16
	Password   string
}

type VLess struct {
	Server     string
	ServerPort uint16
	UUID       string
	Flow       string
	Network    string // "tcp" if unset
	Security   string
	SNI        string
	Host       string
	Path       string
	ALPN       string
}

type Hysteria2 struct {
	Server       string
	ServerPort   uint16
	Password     string // the link's credential segment
	Peer         string
	Insecure     OptionalBool
	Obfs         OptionalString
	ObfsPassword string
	SNI          string
	ALPN         string
}

type AnyTLS struct {
	Server     string
	ServerPort uint16
	Password   string
}

func (*Shadowsocks) Scheme() Scheme { return SchemeShadowsocks }
func (*VMess) Scheme() Scheme       { return SchemeVMess }
func (*Trojan) Scheme() Scheme      { return SchemeTrojan }
func (*VLess) Scheme() Scheme       { return SchemeVLess }
func (*Hysteria2) Scheme() Scheme   { return SchemeHysteria2 }
func (*AnyTLS) Scheme() Scheme      { return SchemeAnyTLS }

func (e *Shadowsocks) Address() (string, uint16) { return e.Server, e.ServerPort }
func (e *VMess) Address() (string, uint16)       { return e.Server, e.ServerPort }
func (e *Trojan) Address() (string, uint16)      { return e.Server, e.ServerPort }
func (e *VLess) Address() (string, uint16)       { return e.Server, e.ServerPort }
func (e *Hysteria2) Address() (string, uint16)   { return e.Server, e.ServerPort }
func (e *AnyTLS) Address() (string, uint16)      { return e.Server, e.ServerPort }

func (*Shadowsocks) endpoint() {}
func (*VMess) endpoint()       {}
func (*Trojan) endpoint()      {}
func (*VLess) endpoint()       {}
func (*Hysteria2) endpoint()   {}
func (*AnyTLS) endpoint()      {}

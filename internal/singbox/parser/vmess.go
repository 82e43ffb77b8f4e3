package parser

import (
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// vmessJSON is the v2rayN share format. port and aid show up both as
// numbers and as numeric strings.
type vmessJSON struct {
	Add  string          `json:"add"`
	Port json.RawMessage `json:"port"`
	Id   string          `json:"id"`
	Aid  json.RawMessage `json:"aid"`
	Scy  string          `json:"scy"`
	Net  string          `json:"net"`
	Host string          `json:"host"`
	Path string          `json:"path"`
	Tls  string          `json:"tls"`
	Sni  string          `json:"sni"`
	Alpn string          `json:"alpn"`
	Fp   string          `json:"fp"`
}

func parseVMess(body string) (*VMess, error) {
	raw, err := decodeBase64(body)
	if err != nil {
		return nil, newError(SchemeVMess, MalformedBase64, err, "payload is not base64")
	}
	if !utf8.Valid(raw) {
		return nil, newError(SchemeVMess, InvalidEncoding, nil, "decoded payload is not valid UTF-8")
	}

	var v vmessJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, newError(SchemeVMess, InvalidEncoding, err, "payload is not a flat JSON object")
	}

	if v.Id == "" {
		return nil, newError(SchemeVMess, MissingField, nil, "missing \"id\"")
	}
	if v.Add == "" {
		return nil, newError(SchemeVMess, MissingField, nil, "missing \"add\"")
	}

	portStr, present, err := numericField(v.Port)
	if err != nil {
		return nil, newError(SchemeVMess, InvalidPort, err, "\"port\" is neither a number nor a numeric string")
	}
	if !present {
		return nil, newError(SchemeVMess, MissingField, nil, "missing \"port\"")
	}
	port, err := parsePort(SchemeVMess, portStr)
	if err != nil {
		return nil, err
	}

	alterID := 0
	aidStr, present, err := numericField(v.Aid)
	if err == nil && present {
		alterID, err = strconv.Atoi(aidStr)
	}
	if err != nil {
		return nil, newError(SchemeVMess, InvalidEncoding, err, "\"aid\" is neither a number nor a numeric string")
	}

	p := &VMess{
		Server:      v.Add,
		ServerPort:  port,
		UUID:        v.Id,
		Security:    v.Scy,
		AlterID:     alterID,
		Network:     v.Net,
		TLS:         v.Tls,
		Host:        v.Host,
		Path:        v.Path,
		SNI:         v.Sni,
		ALPN:        v.Alpn,
		Fingerprint: v.Fp,
	}
	if p.Security == "" {
		p.Security = "auto"
	}
	if p.Network == "" {
		p.Network = "tcp"
	}
	return p, nil
}

// numericField reads a JSON number or string. null, absent and "" all
// count as not present.
func numericField(raw json.RawMessage) (string, bool, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != "", nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", true, err
	}
	return n.String(), true, nil
}

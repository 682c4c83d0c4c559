package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wallace/localsub/internal/b64text"
	"github.com/wallace/localsub/internal/convertererror"
	"github.com/wallace/localsub/internal/node"
)

// flexNumber unmarshals a JSON field that may be a number or a numeric
// string (several fields in a vmess link body come either way depending
// on the generator that produced it).
type flexNumber string

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexNumber(s)
		return nil
	}
	*f = flexNumber(data)
	return nil
}

func (f flexNumber) Int() int {
	n, _ := strconv.Atoi(strings.TrimSpace(string(f)))
	return n
}

type vmessBody struct {
	Add            string     `json:"add"`
	Port           flexNumber `json:"port"`
	ID             string     `json:"id"`
	AlterID        flexNumber `json:"aid"`
	Security       string     `json:"scy"`
	SecurityAlt    string     `json:"security"`
	PS             string     `json:"ps"`
	Net            string     `json:"net"`
	TLS            string     `json:"tls"`
	SNI            string     `json:"sni"`
	Host           string     `json:"host"`
	Path           string     `json:"path"`
	SkipCertVerify flexNumber `json:"skip-cert-verify"`
}

// ParseVmess decodes a vmess:// link: the part after the scheme is
// base64-encoded JSON, per spec.md §4.2.
func ParseVmess(raw string) (*node.VmessNode, error) {
	const prefix = "vmess://"
	if !strings.HasPrefix(raw, prefix) {
		return nil, convertererror.InvalidNodeFormat("vmess", "missing vmess:// prefix")
	}
	encoded := raw[len(prefix):]
	decoded, ok := b64text.DecodeFlexible(encoded)
	if !ok {
		return nil, convertererror.Base64Decode("vmess body is not valid base64")
	}

	var body vmessBody
	if err := json.Unmarshal([]byte(decoded), &body); err != nil {
		return nil, convertererror.InvalidNodeFormat("vmess", "invalid json body: "+err.Error())
	}

	id, err := uuid.Parse(body.ID)
	if err != nil {
		return nil, convertererror.InvalidNodeFormat("vmess", "invalid uuid: "+err.Error())
	}

	cipher := firstNonEmpty(body.Security, body.SecurityAlt)
	if cipher == "" {
		cipher = "auto"
	}

	sni := firstNonEmpty(body.SNI, body.Host)

	n := &node.VmessNode{
		NodeName:       body.PS,
		ServerHost:     body.Add,
		ServerPort:     body.Port.Int(),
		UUID:           id.String(),
		AlterID:        body.AlterID.Int(),
		Cipher:         cipher,
		Network:        body.Net,
		TLS:            body.TLS == "tls",
		SNI:            sni,
		SkipCertVerify: truthyBool(string(body.SkipCertVerify)),
		Transport: node.Transport{
			Network: body.Net,
			Path:    body.Path,
			Host:    body.Host,
		},
	}
	if n.NodeName == "" {
		n.NodeName = n.ServerHost
	}
	return n, nil
}

package clashyaml

// AmbientConfig is the "settings" portion of a Mihomo profile — every
// block spec.md §4.5 names as optional, grounded on the original
// source's ClashConfig/ProfileConfig/SnifferConfig/DnsConfig structs.
// It round-trips through yaml.v3 (struct field order is stable, unlike a
// plain map), unlike the proxies/proxy-groups/rules sections, which are
// hand-emitted for key-order and quoting control.
type AmbientConfig struct {
	MixedPort           int             `yaml:"mixed-port"`
	AllowLAN             bool            `yaml:"allow-lan"`
	Mode                 string          `yaml:"mode"`
	LogLevel             string          `yaml:"log-level"`
	IPv6                 bool            `yaml:"ipv6"`
	UnifiedDelay         bool            `yaml:"unified-delay"`
	TCPConcurrent        bool            `yaml:"tcp-concurrent"`
	FindProcessMode      string          `yaml:"find-process-mode,omitempty"`
	ExternalController   string          `yaml:"external-controller,omitempty"`
	Secret               string          `yaml:"secret,omitempty"`
	TUN                  *TUNConfig      `yaml:"tun,omitempty"`
	Profile              *ProfileConfig  `yaml:"profile,omitempty"`
	Sniffer              *SnifferConfig  `yaml:"sniffer,omitempty"`
	DNS                  *DNSConfig      `yaml:"dns,omitempty"`
}

type TUNConfig struct {
	Enable               bool     `yaml:"enable"`
	Stack                string   `yaml:"stack"`
	DNSHijack            []string `yaml:"dns-hijack"`
	AutoRoute            bool     `yaml:"auto-route"`
	AutoRedirect         bool     `yaml:"auto-redirect"`
	AutoDetectInterface  bool     `yaml:"auto-detect-interface"`
}

type ProfileConfig struct {
	StoreSelected bool `yaml:"store-selected"`
	StoreFakeIP   bool `yaml:"store-fake-ip"`
}

type SniffProtocolConfig struct {
	Ports              []string `yaml:"ports"`
	OverrideDestination *bool   `yaml:"override-destination,omitempty"`
}

type SniffProtocols struct {
	HTTP SniffProtocolConfig `yaml:"HTTP"`
	TLS  SniffProtocolConfig `yaml:"TLS"`
	QUIC SniffProtocolConfig `yaml:"QUIC"`
}

type SnifferConfig struct {
	Enable              bool           `yaml:"enable"`
	ForceDNSMapping     bool           `yaml:"force-dns-mapping"`
	ParsePureIP         bool           `yaml:"parse-pure-ip"`
	OverrideDestination bool           `yaml:"override-destination"`
	Sniff               SniffProtocols `yaml:"sniff"`
	SkipDomain          []string       `yaml:"skip-domain,omitempty"`
}

type FallbackFilter struct {
	GeoIP     bool     `yaml:"geoip"`
	GeoIPCode string   `yaml:"geoip-code"`
	IPCIDR    []string `yaml:"ipcidr"`
}

type DNSConfig struct {
	Enable            bool              `yaml:"enable"`
	Listen            string            `yaml:"listen"`
	IPv6              bool              `yaml:"ipv6"`
	PreferH3          bool              `yaml:"prefer-h3"`
	EnhancedMode      string            `yaml:"enhanced-mode"`
	FakeIPRange       string            `yaml:"fake-ip-range"`
	FakeIPFilter      []string          `yaml:"fake-ip-filter,omitempty"`
	DefaultNameserver []string          `yaml:"default-nameserver"`
	Nameserver        []string          `yaml:"nameserver"`
	Fallback          []string          `yaml:"fallback,omitempty"`
	FallbackFilter    *FallbackFilter   `yaml:"fallback-filter,omitempty"`
	NameserverPolicy  map[string]string `yaml:"nameserver-policy,omitempty"`
}

func trueBool() *bool { b := true; return &b }

// DefaultAmbientConfig mirrors ClashConfigBuilder's defaults.
func DefaultAmbientConfig(enableTUN bool) AmbientConfig {
	cfg := AmbientConfig{
		MixedPort:         7890,
		AllowLAN:          true,
		Mode:              "rule",
		LogLevel:          "info",
		IPv6:              false,
		UnifiedDelay:      true,
		TCPConcurrent:     true,
		ExternalController: "127.0.0.1:9090",
		Profile:           &ProfileConfig{StoreSelected: true, StoreFakeIP: true},
		Sniffer: &SnifferConfig{
			Enable:          true,
			ForceDNSMapping: true,
			ParsePureIP:     true,
			Sniff: SniffProtocols{
				HTTP: SniffProtocolConfig{Ports: []string{"80", "8080-8880"}, OverrideDestination: trueBool()},
				TLS:  SniffProtocolConfig{Ports: []string{"443", "8443"}},
				QUIC: SniffProtocolConfig{Ports: []string{"443", "8443"}},
			},
			SkipDomain: []string{"Mijia Cloud", "+.push.apple.com"},
		},
		DNS: &DNSConfig{
			Enable:            true,
			Listen:            "0.0.0.0:1053",
			IPv6:              false,
			EnhancedMode:      "fake-ip",
			FakeIPRange:       "198.18.0.1/16",
			FakeIPFilter:      []string{"*.lan", "*.local", "+.msftconnecttest.com", "+.msftncsi.com"},
			DefaultNameserver: []string{"223.5.5.5", "119.29.29.29"},
			Nameserver:        []string{"https://doh.pub/dns-query", "https://dns.alidns.com/dns-query"},
			Fallback:          []string{"https://1.1.1.1/dns-query", "https://dns.google/dns-query"},
		},
	}
	if enableTUN {
		cfg.TUN = &TUNConfig{
			Enable:              true,
			Stack:               "mixed",
			DNSHijack:           []string{"any:53", "tcp://any:53"},
			AutoRoute:           true,
			AutoRedirect:        true,
			AutoDetectInterface: true,
		}
	}
	return cfg
}

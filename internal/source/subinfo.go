package source

import (
	"strconv"
	"strings"
)

// SubscriptionInfo carries the traffic-accounting fields Mihomo-family
// subscription servers report via the subscription-userinfo header.
type SubscriptionInfo struct {
	Upload   uint64
	Download uint64
	Total    uint64
	Expire   int64
}

// ParseSubscriptionInfo parses a semicolon-separated "upload=…; download=…;
// total=…; expire=…" header value. Unknown keys are ignored; malformed
// integer values are skipped rather than failing the whole header.
func ParseSubscriptionInfo(header string) (SubscriptionInfo, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return SubscriptionInfo{}, false
	}
	var info SubscriptionInfo
	found := false
	for _, field := range strings.Split(header, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		val := strings.TrimSpace(kv[1])
		switch key {
		case "upload":
			if n, err := strconv.ParseUint(val, 10, 64); err == nil {
				info.Upload = n
				found = true
			}
		case "download":
			if n, err := strconv.ParseUint(val, 10, 64); err == nil {
				info.Download = n
				found = true
			}
		case "total":
			if n, err := strconv.ParseUint(val, 10, 64); err == nil {
				info.Total = n
				found = true
			}
		case "expire":
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				info.Expire = n
				found = true
			}
		}
	}
	return info, found
}

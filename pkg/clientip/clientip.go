package clientip

import (
	"net"
	"net/http"
	"strings"
)

const (
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRealIP         = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
	HeaderDOConnectingIP = "DO-Connecting-IP"
)

// FromForwardedFor returns the first comma-separated X-Forwarded-For entry,
// trimmed. The value is not validated.
func FromForwardedFor(r *http.Request) string {
	xff := r.Header.Get(HeaderForwardedFor)
	if xff == "" {
		return ""
	}
	first, _, _ := strings.Cut(xff, ",")
	return strings.TrimSpace(first)
}

// GetIP returns the best guess at the client address.
func GetIP(r *http.Request) string {
	for _, h := range []string{HeaderCFConnectingIP, HeaderDOConnectingIP} {
		if ip := parse(r.Header.Get(h)); ip != "" {
			return ip
		}
	}

	if xff := r.Header.Get(HeaderForwardedFor); xff != "" {
		for part := range strings.SplitSeq(xff, ",") {
			if ip := parse(part); ip != "" {
				return ip
			}
		}
	}

	if ip := parse(r.Header.Get(HeaderRealIP)); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	if ip := parse(host); ip != "" {
		return ip
	}
	return host
}

func parse(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}

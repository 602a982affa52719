package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const CtxRealIPKey = "real_ip"

// RealIP sets the client IP into the Gin context for rate limiting and logs.
// Forwarding headers are only read when the direct peer is one of trusted
// (IPs or CIDRs). Priority for a trusted peer:
// 1) CF-Connecting-IP (Cloudflare)
// 2) X-Forwarded-For, the right-most hop that is not itself trusted
// 3) the peer address
//
// With no trusted proxies every request is keyed on its peer address.
func RealIP(trusted []string) gin.HandlerFunc {
	nets := parseTrusted(trusted)
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c, nets))
		c.Next()
	}
}

func parseTrusted(list []string) []*net.IPNet {
	out := make([]*net.IPNet, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if !strings.Contains(s, "/") {
			ip := net.ParseIP(s)
			if ip == nil {
				continue
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		if _, n, err := net.ParseCIDR(s); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func isTrusted(ip net.IP, nets []*net.IPNet) bool {
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func peerIP(c *gin.Context) net.IP {
	host, _, err := net.SplitHostPort(strings.TrimSpace(c.Request.RemoteAddr))
	if err != nil {
		host = strings.TrimSpace(c.Request.RemoteAddr)
	}
	return net.ParseIP(host)
}

func realIP(c *gin.Context, trusted []*net.IPNet) string {
	peer := peerIP(c)
	if peer == nil {
		return c.ClientIP()
	}
	if !isTrusted(peer, trusted) {
		return peer.String()
	}
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip == nil {
				break
			}
			if !isTrusted(ip, trusted) {
				return ip.String()
			}
		}
	}
	return peer.String()
}

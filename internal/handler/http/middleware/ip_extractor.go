package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/netip"
	"strings"

	envcfg "notes-backend/pkg/config"
)

// IPExtractor names the client a request came from. The auth rate limiter keys on it.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// PeerExtractor trusts only the TCP peer address.
type PeerExtractor struct{}

func (PeerExtractor) ExtractIP(r *http.Request) (string, error) {
	addr, err := peerAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// ProxyTrust lists the reverse proxies allowed to speak for the client.
type ProxyTrust struct {
	Enabled bool
	Proxies []netip.Prefix
}

// Trusts reports whether addr is one of the configured proxies.
func (p ProxyTrust) Trusts(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range p.Proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// LoadProxyTrust reads TRUST_PROXY and TRUSTED_PROXIES, a comma-separated list of addresses or CIDRs.
func LoadProxyTrust() (ProxyTrust, error) {
	trust := ProxyTrust{Enabled: envcfg.GetEnvBool("TRUST_PROXY", false)}
	if !trust.Enabled {
		return trust, nil
	}

	entries := envcfg.GetEnvStringList("TRUSTED_PROXIES", nil)
	if len(entries) == 0 {
		return ProxyTrust{}, errors.New("TRUST_PROXY is enabled but TRUSTED_PROXIES is empty")
	}
	for _, e := range entries {
		prefix, err := netip.ParsePrefix(e)
		if err != nil {
			addr, addrErr := netip.ParseAddr(e)
			if addrErr != nil {
				return ProxyTrust{}, fmt.Errorf("TRUSTED_PROXIES: %q is neither an address nor a CIDR", e)
			}
			prefix = netip.PrefixFrom(addr, addr.BitLen())
		}
		trust.Proxies = append(trust.Proxies, prefix.Masked())
	}
	return trust, nil
}

// ForwardedExtractor believes X-Forwarded-For and X-Real-IP when the peer is a trusted proxy.
type ForwardedExtractor struct {
	trust ProxyTrust
}

func NewForwardedExtractor(trust ProxyTrust) *ForwardedExtractor {
	return &ForwardedExtractor{trust: trust}
}

// ExtractIP walks X-Forwarded-For from the right and returns the first hop that
// is not a trusted proxy, since entries left of that hop can be forged by the client.
// X-Real-IP is used when the list yields nothing; the peer address is the last resort.
func (e *ForwardedExtractor) ExtractIP(r *http.Request) (string, error) {
	peer, err := peerAddr(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if !e.trust.Trusts(peer) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("ignoring X-Forwarded-For from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return peer.String(), nil
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		if !e.trust.Trusts(addr) {
			return addr.Unmap().String(), nil
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap().String(), nil
	}
	return peer.String(), nil
}

// NewIPExtractor returns a ForwardedExtractor when proxies are trusted and a PeerExtractor otherwise.
func NewIPExtractor(trust ProxyTrust) IPExtractor {
	if trust.Enabled {
		return NewForwardedExtractor(trust)
	}
	return PeerExtractor{}
}

// peerAddr parses "host:port" or a bare address.
func peerAddr(remote string) (netip.Addr, error) {
	if ap, err := netip.ParseAddrPort(remote); err == nil {
		return ap.Addr().Unmap(), nil
	}
	if addr, err := netip.ParseAddr(remote); err == nil {
		return addr.Unmap(), nil
	}
	return netip.Addr{}, fmt.Errorf("unparsable remote address %q", remote)
}

package geo

import (
	"fmt"
	"net/netip"
	"strings"

	"geo-pricing-service/internal/ports"
)

// lookupPath returns the URL path segment for ip. An empty ip asks the
// service about the caller's own address; an address that cannot be
// geolocated (private, loopback, malformed) yields ErrNoCountry.
func lookupPath(ip string) (string, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return "", nil
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("parse visitor ip %q: %w", ip, ports.ErrNoCountry)
	}
	addr = addr.Unmap()
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return "", fmt.Errorf("visitor ip %s is not routable: %w", addr, ports.ErrNoCountry)
	}

	return addr.String(), nil
}

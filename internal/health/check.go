// Package health verifies the DNS records and the network path
// before and after an update run.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

var ErrRecordMismatch = errors.New("DNS records do not match")

// CheckDNS looks up each hostname and verifies at least one of the
// addresses found matches an address recorded in the database.
// Hostnames without any recorded address are skipped since they
// were never updated by this program.
func CheckDNS(ctx context.Context, resolver LookupIPer,
	hostnames []string, db Database) (err error) {
	for _, hostname := range hostnames {
		ipv4, ipv6 := db.GetHostIPs(hostname)
		if !ipv4.IsValid() && !ipv6.IsValid() {
			continue
		}

		lookedUpIPs, err := resolver.LookupNetIP(ctx, "ip", hostname)
		if err != nil {
			return fmt.Errorf("looking up %s: %w", hostname, err)
		}

		found := false
		for _, lookedUpIP := range lookedUpIPs {
			lookedUpIP = lookedUpIP.Unmap()
			if lookedUpIP == ipv4 || lookedUpIP == ipv6 {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s resolves to %s instead of %s",
				ErrRecordMismatch, hostname,
				joinAddresses(lookedUpIPs), recordedString(ipv4, ipv6))
		}
	}

	return nil
}

func joinAddresses(ips []netip.Addr) string {
	if len(ips) == 0 {
		return "no address"
	}
	ipStrings := make([]string, len(ips))
	for i, ip := range ips {
		ipStrings[i] = ip.String()
	}
	return strings.Join(ipStrings, ",")
}

func recordedString(ipv4, ipv6 netip.Addr) string {
	switch {
	case ipv4.IsValid() && ipv6.IsValid():
		return ipv4.String() + " or " + ipv6.String()
	case ipv4.IsValid():
		return ipv4.String()
	default:
		return ipv6.String()
	}
}

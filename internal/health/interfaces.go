package health

import (
	"context"
	"net/netip"
)

type Database interface {
	GetHostIPs(hostname string) (ipv4, ipv6 netip.Addr)
}

type LookupIPer interface {
	LookupNetIP(ctx context.Context, network, host string) (ips []netip.Addr, err error)
}

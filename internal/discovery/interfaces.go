package discovery

import (
	"context"
	"net/netip"

	"duiadns/internal/netscan"
)

type PublicIPFetcher interface {
	IP4(ctx context.Context) (ipv4 netip.Addr, err error)
	IP6(ctx context.Context) (ipv6 netip.Addr, err error)
}

type InterfaceLister interface {
	ListAddresses(family netscan.Family) (
		records []netscan.AddressRecord, err error)
}

type Logger interface {
	Debug(s string)
}

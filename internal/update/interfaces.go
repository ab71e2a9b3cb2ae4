package update

import (
	"context"
	"net/netip"
)

type Database interface {
	GetHostIPs(hostname string) (ipv4, ipv6 netip.Addr)
	StoreHostIPs(hostname string, ipv4, ipv6 netip.Addr)
	Persist() (err error)
}

type Discoverer interface {
	IPv4(ctx context.Context) (ipv4 netip.Addr, err error)
	IPv6(ctx context.Context) (ipv6 netip.Addr, err error)
}

type UpdateClient interface {
	Update(ctx context.Context, hostname string,
		ipv4, ipv6 netip.Addr) (err error)
}

type Notifier interface {
	Notify(message string)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}

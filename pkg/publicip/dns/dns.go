// Package dns echoes the machine public IP address by querying
// special purpose DNS records over TLS.
package dns

import (
	"github.com/miekg/dns"
)

type Fetcher struct {
	client  Client // for either IPv4 or IPv6
	client4 Client // for IPv4 only
	client6 Client // for IPv6 only
	ring    ring
}

type ring struct {
	counter   *uint32 // used atomically
	providers []Provider
}

func New(options ...Option) (f *Fetcher, err error) {
	settings := newDefaultSettings()
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, err
		}
	}

	return &Fetcher{
		client: &dns.Client{
			Net:     "tcp-tls",
			Timeout: settings.timeout,
		},
		client4: &dns.Client{
			Net:     "tcp4-tls",
			Timeout: settings.timeout,
		},
		client6: &dns.Client{
			Net:     "tcp6-tls",
			Timeout: settings.timeout,
		},
		ring: ring{
			counter:   new(uint32),
			providers: settings.providers,
		},
	}, nil
}

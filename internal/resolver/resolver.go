// Package resolver builds the net.Resolver used to verify DNS
// records, either the Go default resolver or one querying a custom
// plain DNS server over UDP.
package resolver

import (
	"context"
	"fmt"
	"net"
)

// New returns the Go default resolver when no address is set, so
// record checks see the same answers the rest of the system does.
func New(settings Settings) (resolver *net.Resolver, err error) {
	settings.setDefaults()
	err = settings.validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	if *settings.Address == "" {
		return net.DefaultResolver, nil
	}

	dialer := net.Dialer{Timeout: settings.Timeout}
	return &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
			const protocol = "udp"
			return dialer.DialContext(ctx, protocol, *settings.Address)
		},
	}, nil
}

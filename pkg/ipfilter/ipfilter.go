// Package ipfilter provides address class checks to decide if an IP
// address is suitable to be published in a DNS record.
package ipfilter

import (
	"errors"
	"fmt"
	"net/netip"
)

var (
	ErrAddrMulticast      = errors.New("address is multicast")
	ErrAddrLoopback       = errors.New("address is loopback")
	ErrAddrLinkLocal      = errors.New("address is link-local")
	ErrAddrIPv4Mapped     = errors.New("address is an IPv4-mapped IPv6 address")
	ErrAddrIPv4Compatible = errors.New("address is an IPv4-compatible IPv6 address")
	ErrAddrUniqueLocal    = errors.New("address is unique-local")
	ErrAddrNotInNetwork   = errors.New("address is not within network")
)

var (
	ipv4CompatiblePrefix = netip.MustParsePrefix("::/96")
	uniqueLocalPrefix    = netip.MustParsePrefix("fc00::/7")
)

// CheckPublicIPv6 verifies the IPv6 address given is fit to be
// published as a public address in a DNS record. It returns an
// error wrapping one of the Err* sentinel errors of this package
// if the address is multicast, loopback, link-local, IPv4-mapped,
// IPv4-compatible or unique-local.
func CheckPublicIPv6(addr netip.Addr) (err error) {
	switch {
	case addr.IsMulticast():
		return fmt.Errorf("%w: %s", ErrAddrMulticast, addr)
	case addr.IsLoopback():
		return fmt.Errorf("%w: %s", ErrAddrLoopback, addr)
	case addr.IsLinkLocalUnicast():
		return fmt.Errorf("%w: %s", ErrAddrLinkLocal, addr)
	case addr.Is4In6():
		return fmt.Errorf("%w: %s", ErrAddrIPv4Mapped, addr)
	case ipv4CompatiblePrefix.Contains(addr) && !addr.IsUnspecified():
		return fmt.Errorf("%w: %s", ErrAddrIPv4Compatible, addr)
	case uniqueLocalPrefix.Contains(addr):
		return fmt.Errorf("%w: %s", ErrAddrUniqueLocal, addr)
	}
	return nil
}

// CheckInNetwork verifies the address given is contained in the
// network given. An invalid (zero) network means no constraint
// and nil is returned, so a caller failing to parse a reference
// network can pass the zero netip.Prefix through.
func CheckInNetwork(addr netip.Addr, network netip.Prefix) (err error) {
	if !network.IsValid() {
		return nil
	}
	if !network.Contains(addr) {
		return fmt.Errorf("%w: %s is not in %s", ErrAddrNotInNetwork, addr, network)
	}
	return nil
}

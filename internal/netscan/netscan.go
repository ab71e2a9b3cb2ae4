// Package netscan enumerates the IP addresses assigned to the local
// network interfaces, with the address flags the platform exposes.
package netscan

import (
	"net"
	"net/netip"
)

type Family uint8

const (
	FamilyAll Family = iota
	FamilyIPv4
	FamilyIPv6
)

// Flags is a bitset of interface address flags. Platforms without
// address flag support report zero flags for every address.
type Flags uint8

const (
	FlagTemporary Flags = 1 << iota
	FlagDeprecated
)

// AddressRecord is a snapshot of one address assigned to a network
// interface. Network is the zero value when the platform does not
// expose the netmask, and Flags is zero when it does not expose
// address flags.
type AddressRecord struct {
	Interface string
	Address   netip.Addr
	Network   netip.Prefix
	Flags     Flags
}

type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// ListAddresses returns the address records of all the network
// interfaces for the family given, in the interface enumeration
// order of the platform.
func (s *Scanner) ListAddresses(family Family) (records []AddressRecord, err error) {
	return scan(family)
}

func recordFromIPNet(interfaceName string, ipNet net.IPNet) (
	record AddressRecord, ok bool) {
	address, ok := netip.AddrFromSlice(ipNet.IP)
	if !ok {
		return AddressRecord{}, false
	}
	address = address.Unmap().WithZone("")

	record = AddressRecord{
		Interface: interfaceName,
		Address:   address,
	}

	ones, maskBits := ipNet.Mask.Size()
	if maskBits == address.BitLen() {
		record.Network = netip.PrefixFrom(address, ones).Masked()
	}

	return record, true
}

func matchesFamily(address netip.Addr, family Family) bool {
	switch family {
	case FamilyIPv4:
		return address.Is4()
	case FamilyIPv6:
		return !address.Is4()
	default:
		return true
	}
}

// Package discovery finds the public IPv4 and IPv6 addresses to
// publish in DNS records. The IPv4 address is the one seen by the
// echo service; the IPv6 address is additionally refined against
// the local network interfaces so a stable address is preferred
// over a temporary privacy address on the same subnet.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/netip"

	"duiadns/internal/netscan"
	"duiadns/pkg/ipfilter"
)

type Discoverer struct {
	fetcher PublicIPFetcher
	scanner InterfaceLister
	logger  Logger
}

func New(fetcher PublicIPFetcher, scanner InterfaceLister,
	logger Logger) *Discoverer {
	return &Discoverer{
		fetcher: fetcher,
		scanner: scanner,
		logger:  logger,
	}
}

var (
	ErrAddrNotIPv4       = errors.New("address is not IPv4")
	ErrAddrNotIPv6       = errors.New("address is not IPv6")
	ErrAddrNotOnAnyIface = errors.New("public address not found on any network interface")
)

// IPv4 returns the public IPv4 address seen by the echo service.
func (d *Discoverer) IPv4(ctx context.Context) (ipv4 netip.Addr, err error) {
	ipv4, err = d.fetcher.IP4(ctx)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("fetching public IPv4 address: %w", err)
	}

	ipv4 = ipv4.Unmap().WithZone("")
	if !ipv4.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %s", ErrAddrNotIPv4, ipv4)
	}

	return ipv4, nil
}

// IPv6 returns the public IPv6 address to publish. The candidate
// seen by the echo service may be a temporary privacy address which
// rotates, so when the candidate is found on a local interface with
// the temporary flag set, the first permanent address on the same
// interface and subnet is returned instead. A candidate absent from
// every interface is a discovery failure, never substituted with an
// address from an unrelated interface.
func (d *Discoverer) IPv6(ctx context.Context) (ipv6 netip.Addr, err error) {
	candidate, err := d.fetcher.IP6(ctx)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("fetching public IPv6 address: %w", err)
	}

	candidate = candidate.WithZone("")
	if candidate.Is4() {
		return netip.Addr{}, fmt.Errorf("%w: %s", ErrAddrNotIPv6, candidate)
	}

	err = ipfilter.CheckPublicIPv6(candidate)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("checking public IPv6 address: %w", err)
	}

	records, err := d.scanner.ListAddresses(netscan.FamilyIPv6)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("listing interface addresses: %w", err)
	}

	for _, iface := range groupByInterface(records) {
		validated := validateRecords(candidate, iface.records)

		candidateFlags, found := findFlags(candidate, validated)
		if !found {
			continue
		}

		if candidateFlags&netscan.FlagTemporary == 0 {
			return candidate, nil
		}

		// The candidate is a temporary address: prefer the first
		// permanent address on the same interface if there is one.
		for _, record := range validated {
			if record.Flags&netscan.FlagTemporary != 0 {
				continue
			}
			d.logger.Debug("public IPv6 address " + candidate.String() +
				" is temporary on " + iface.name +
				", using permanent address " + record.Address.String())
			return record.Address, nil
		}

		return candidate, nil
	}

	return netip.Addr{}, fmt.Errorf("%w: %s", ErrAddrNotOnAnyIface, candidate)
}

type interfaceRecords struct {
	name    string
	records []netscan.AddressRecord
}

// groupByInterface groups records by interface name, keeping the
// enumeration order of interfaces and of records within each
// interface, so the address choice is deterministic per run.
func groupByInterface(records []netscan.AddressRecord) (
	grouped []interfaceRecords) {
	indexByName := make(map[string]int, len(records))
	for _, record := range records {
		i, ok := indexByName[record.Interface]
		if !ok {
			grouped = append(grouped, interfaceRecords{name: record.Interface})
			i = len(grouped) - 1
			indexByName[record.Interface] = i
		}
		grouped[i].records = append(grouped[i].records, record)
	}
	return grouped
}

// validateRecords returns the records of one interface which pass
// the public address class checks and lie on the same subnet as the
// public candidate. A record without netmask information imposes no
// subnet constraint, and malformed records are skipped.
func validateRecords(candidate netip.Addr,
	records []netscan.AddressRecord) (validated []netscan.AddressRecord) {
	for _, record := range records {
		record.Address = record.Address.WithZone("")
		if !record.Address.IsValid() || record.Address.Is4() {
			continue
		}

		err := ipfilter.CheckPublicIPv6(record.Address)
		if err != nil {
			continue
		}

		reference := netip.Prefix{}
		if record.Network.IsValid() {
			reference = netip.PrefixFrom(candidate, record.Network.Bits()).Masked()
		}
		err = ipfilter.CheckInNetwork(record.Address, reference)
		if err != nil {
			continue
		}

		validated = append(validated, record)
	}
	return validated
}

func findFlags(address netip.Addr, records []netscan.AddressRecord) (
	flags netscan.Flags, found bool) {
	for _, record := range records {
		if record.Address == address {
			return record.Flags, true
		}
	}
	return 0, false
}

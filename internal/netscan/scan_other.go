//go:build !linux

package netscan

import (
	"fmt"
	"net"
)

// scan enumerates interface addresses with the standard library.
// Address flags are not exposed so every address is permanent.
func scan(family Family) (records []AddressRecord, err error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("listing network interfaces: %w", err)
	}

	for _, iface := range interfaces {
		addresses, err := iface.Addrs()
		if err != nil {
			return nil, fmt.Errorf("listing addresses on %s: %w", iface.Name, err)
		}

		for _, address := range addresses {
			ipNet, ok := address.(*net.IPNet)
			if !ok {
				continue
			}
			record, ok := recordFromIPNet(iface.Name, *ipNet)
			if !ok {
				continue
			}
			if !matchesFamily(record.Address, family) {
				continue
			}
			records = append(records, record)
		}
	}

	return records, nil
}

//go:build linux

package netscan

import (
	"fmt"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

func scan(family Family) (records []AddressRecord, err error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("listing network links: %w", err)
	}

	netlinkFamily := netlink.FAMILY_ALL
	switch family {
	case FamilyIPv4:
		netlinkFamily = netlink.FAMILY_V4
	case FamilyIPv6:
		netlinkFamily = netlink.FAMILY_V6
	}

	for _, link := range links {
		addresses, err := netlink.AddrList(link, netlinkFamily)
		if err != nil {
			return nil, fmt.Errorf("listing addresses on %s: %w",
				link.Attrs().Name, err)
		}

		for _, address := range addresses {
			if address.IPNet == nil {
				continue
			}
			record, ok := recordFromIPNet(link.Attrs().Name, *address.IPNet)
			if !ok {
				continue
			}
			record.Flags = addressFlags(address.Flags)
			records = append(records, record)
		}
	}

	return records, nil
}

func addressFlags(netlinkFlags int) (flags Flags) {
	if netlinkFlags&unix.IFA_F_TEMPORARY != 0 {
		flags |= FlagTemporary
	}
	if netlinkFlags&unix.IFA_F_DEPRECATED != 0 {
		flags |= FlagDeprecated
	}
	return flags
}

package json

import "net/netip"

// GetHostIPs returns the last published addresses recorded for the
// hostname given. Each returned address is the zero netip.Addr when
// no address was recorded for that family, or when the recorded
// string is corrupt (unparseable or of the wrong family), so a
// corrupt record gets republished over on the next update.
func (db *Database) GetHostIPs(hostname string) (ipv4, ipv6 netip.Addr) {
	record := db.data[hostname]
	ipv4, _ = netip.ParseAddr(record.IPv4)
	if !ipv4.Unmap().Is4() {
		ipv4 = netip.Addr{}
	}
	ipv6, _ = netip.ParseAddr(record.IPv6)
	if ipv6.Unmap().Is4() {
		ipv6 = netip.Addr{}
	}
	return ipv4, ipv6
}

// StoreHostIPs merges the valid addresses given into the in-memory
// record of the hostname given, leaving the other family untouched.
// Nothing is written to disk until Persist is called.
func (db *Database) StoreHostIPs(hostname string, ipv4, ipv6 netip.Addr) {
	record := db.data[hostname]
	if ipv4.IsValid() {
		record.IPv4 = ipv4.String()
	}
	if ipv6.IsValid() {
		record.IPv6 = ipv6.String()
	}
	db.data[hostname] = record
}

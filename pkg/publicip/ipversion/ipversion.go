// Package ipversion defines the IP address family an IP fetcher
// operates on.
package ipversion

type IPVersion uint8

const (
	// IP4or6 accepts both IPv4 and IPv6 addresses.
	IP4or6 IPVersion = iota
	// IP4 accepts IPv4 addresses only.
	IP4
	// IP6 accepts IPv6 addresses only.
	IP6
)

func (v IPVersion) String() string {
	switch v {
	case IP4or6:
		return "ipv4 or ipv6"
	case IP4:
		return "ipv4"
	case IP6:
		return "ipv6"
	default:
		return "unknown"
	}
}

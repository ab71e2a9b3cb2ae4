package update

import "net/netip"

// ipToPublish decides whether the discovered address warrants an
// update against the cached address for the same family. It returns
// the discovered address when an update is needed and the zero
// netip.Addr otherwise:
//   - an invalid discovered address cannot be trusted, so no update;
//   - no valid cached address means first record or cache
//     corruption, so always (re)publish;
//   - equal addresses after canonicalization need no update.
func ipToPublish(discovered, cached netip.Addr) (ip netip.Addr) {
	discovered = discovered.Unmap().WithZone("")
	cached = cached.Unmap().WithZone("")
	switch {
	case !discovered.IsValid():
		return netip.Addr{}
	case !cached.IsValid():
		return discovered
	case discovered == cached:
		return netip.Addr{}
	default:
		return discovered
	}
}

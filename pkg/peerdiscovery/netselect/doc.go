// Package netselect picks the active local IPv4 network to scan.
//
// Selection runs in two passes:
//   - the interface carrying the default IPv4 gateway is inspected first, and the
//     first of its IPv4 addresses outside the ignore ranges wins
//   - otherwise every interface is scanned in enumeration order and the first
//     non-ignored IPv4 address is used
//
// The ignore ranges exclude loopback, link-local and the default subnets of
// common virtualization and container bridges, which would otherwise be picked
// on developer machines.
//
// Example usage:
//
//	selector := netselect.New(netselect.SystemSource{}, nil)
//	selection, err := selector.Select(ctx)
//	if errors.Is(err, netselect.ErrNoActiveNetwork) {
//		// nothing to scan
//	}
//	fmt.Println(selection.CIDR())
package netselect

// Package arp supplies IP to hardware-address mappings for discovered hosts.
//
// Resolution is a pluggable capability behind the Resolver interface:
//   - Empty always returns an empty table, every host is then reported ping-only
//   - Static returns a fixed table
//   - LocalTable reads the operating system neighbour cache
//     (/proc/net/arp on Linux, `arp -a` on macOS and Windows)
//
// LocalTable never sends packets itself. Entries appear in the cache as a side
// effect of the ping sweep, so reading it right after a sweep usually yields the
// hardware address of every alive host on the local segment.
package arp

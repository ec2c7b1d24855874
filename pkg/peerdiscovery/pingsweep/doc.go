// Package pingsweep provides a library for discovering active hosts on a network
// using a ping sweep.
//
// Discovery is performed by:
//   - Expanding the network range to its usable host addresses
//   - Sending one echo request to each address through a bounded executor
//     (200 concurrent probes by default, clamped to 4-1000)
//   - Collecting the addresses that replied, sorted by numeric value
//
// Example usage:
//
//	sweeper, err := pingsweep.New(&pingsweep.Options{Timeout: time.Second})
//	alive, err := sweeper.Sweep(ctx, "192.168.1.0/24")
//
// Probers:
//   - CommandProber runs the operating system ping binary, no privileges needed
//   - ICMPProber sends echo requests directly; unprivileged datagram sockets need
//     net.ipv4.ping_group_range on Linux, raw sockets need root/admin
//
// Limitations:
//   - Hosts with ICMP disabled or firewalled will not respond
//   - A sweep always runs to completion, worst case about
//     (hosts / concurrency) * timeout
package pingsweep

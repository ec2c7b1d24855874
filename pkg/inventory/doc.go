// Package inventory turns sweep results into canonical per-device records.
//
// A device is identified by its hardware address when the resolution table
// knows it, and by its single IP address otherwise (a "ping-only" host).
// Records are built fresh for every cycle and carry no history.
package inventory

package common

import (
	"fmt"
	"net"
	"strings"

	sliceutil "github.com/projectdiscovery/utils/slice"
)

// DefaultIgnoreRanges are the IPv4 ranges never chosen as the active network:
// loopback, link-local and the default subnets of common virtualization,
// container and NAT setups (VirtualBox host-only, Docker bridge, Hyper-V).
var DefaultIgnoreRanges = []string{
	"127.0.0.0/8",
	"169.254.0.0/16",
	"192.168.56.0/24",
	"10.0.75.0/24",
	"172.17.0.0/16",
	"192.168.57.0/24",
	"192.168.60.0/24",
}

// IgnoreRanges is a set of networks excluded from interface selection.
type IgnoreRanges []*net.IPNet

// ParseIgnoreRanges parses CIDR strings into IgnoreRanges.
// A bare IPv4 address is accepted as a /32.
func ParseIgnoreRanges(cidrs []string) (IgnoreRanges, error) {
	ranges := IgnoreRanges{}
	for _, cidr := range sliceutil.Dedupe(cidrs) {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			continue
		}
		if !strings.Contains(cidr, "/") {
			cidr += "/32"
		}
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore range %q: %w", cidr, err)
		}
		ranges = append(ranges, network)
	}
	return ranges, nil
}

// MustParseIgnoreRanges is like ParseIgnoreRanges but panics on error.
func MustParseIgnoreRanges(cidrs []string) IgnoreRanges {
	ranges, err := ParseIgnoreRanges(cidrs)
	if err != nil {
		panic(err)
	}
	return ranges
}

// Contains reports whether ip falls into any of the ranges.
func (r IgnoreRanges) Contains(ip net.IP) bool {
	for _, network := range r {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// Strings returns the ranges in CIDR notation.
func (r IgnoreRanges) Strings() []string {
	out := make([]string, 0, len(r))
	for _, network := range r {
		out = append(out, network.String())
	}
	return out
}

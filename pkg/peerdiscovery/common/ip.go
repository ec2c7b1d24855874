package common

import (
	"bytes"
	"fmt"
	"net"
	"sort"

	"github.com/projectdiscovery/mapcidr"
)

// IsNetworkOrBroadcast checks if an IP is the network or broadcast address
// of an IPv4 network.
func IsNetworkOrBroadcast(ip net.IP, network *net.IPNet) bool {
	if network == nil {
		return false
	}

	// Check if IP equals network address
	if ip.Equal(network.IP) {
		return true
	}

	ip4 := ip.To4()
	base := network.IP.To4()
	if ip4 == nil || base == nil || len(network.Mask) != net.IPv4len {
		return false
	}

	broadcast := make(net.IP, net.IPv4len)
	copy(broadcast, base)
	for i := range broadcast {
		broadcast[i] |= ^network.Mask[i]
	}
	return ip4.Equal(broadcast)
}

// UsableHosts expands an IPv4 CIDR into its host addresses.
// Network and broadcast addresses are dropped, except for /31 and /32
// ranges where every address is a host.
func UsableHosts(cidr string) ([]string, error) {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR: %w", err)
	}
	if network.IP.To4() == nil {
		return nil, fmt.Errorf("not an IPv4 range: %s", cidr)
	}

	ips, err := mapcidr.IPAddresses(network.String())
	if err != nil {
		return nil, fmt.Errorf("failed to expand CIDR %s: %w", network.String(), err)
	}

	ones, bits := network.Mask.Size()
	if bits-ones <= 1 {
		return ips, nil
	}

	hosts := make([]string, 0, len(ips))
	for _, ipStr := range ips {
		ip := net.ParseIP(ipStr)
		if ip == nil {
			continue
		}
		if IsNetworkOrBroadcast(ip, network) {
			continue
		}
		hosts = append(hosts, ipStr)
	}
	return hosts, nil
}

// CompareIP compares two IPs. Returns -1 if ip1 < ip2, 0 if equal, 1 if ip1 > ip2.
// IPv4 always comes before IPv6.
func CompareIP(ip1, ip2 net.IP) int {
	ip1v4 := ip1.To4()
	ip2v4 := ip2.To4()

	// IPv4 < IPv6
	if ip1v4 != nil && ip2v4 == nil {
		return -1
	}
	if ip1v4 == nil && ip2v4 != nil {
		return 1
	}
	if ip1v4 != nil && ip2v4 != nil {
		return bytes.Compare(ip1v4, ip2v4)
	}
	return bytes.Compare(ip1.To16(), ip2.To16())
}

// SortIPs sorts dotted-quad strings in place by numeric value.
// Strings that do not parse as IPs sort after all valid ones, lexically.
func SortIPs(ips []string) {
	parsed := make(map[string]net.IP, len(ips))
	for _, s := range ips {
		parsed[s] = net.ParseIP(s)
	}
	sort.SliceStable(ips, func(i, j int) bool {
		a, b := parsed[ips[i]], parsed[ips[j]]
		switch {
		case a == nil && b == nil:
			return ips[i] < ips[j]
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return CompareIP(a, b) < 0
	})
}

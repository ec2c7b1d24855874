package netselect

import (
	"context"
	"fmt"
	"net"

	"github.com/jackpal/gateway"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// SystemSource reads interfaces from the operating system.
type SystemSource struct{}

// Interfaces returns all interfaces with their parsed addresses.
func (SystemSource) Interfaces(ctx context.Context) ([]Interface, error) {
	stats, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	ifaces := make([]Interface, 0, len(stats))
	for _, stat := range stats {
		iface := Interface{Name: stat.Name}
		for _, addr := range stat.Addrs {
			ip, network, err := net.ParseCIDR(addr.Addr)
			if err != nil {
				continue
			}
			iface.Addrs = append(iface.Addrs, &net.IPNet{IP: ip, Mask: network.Mask})
		}
		ifaces = append(ifaces, iface)
	}
	return ifaces, nil
}

// GatewayInterface returns the interface whose network contains the default gateway.
func (SystemSource) GatewayInterface(_ context.Context, ifaces []Interface) (string, error) {
	gw, err := gateway.DiscoverGateway()
	if err != nil {
		return "", fmt.Errorf("failed to discover gateway: %w", err)
	}
	return InterfaceForGateway(gw, ifaces)
}

// InterfaceForGateway returns the first interface with an IPv4 network containing gw.
func InterfaceForGateway(gw net.IP, ifaces []Interface) (string, error) {
	gw4 := gw.To4()
	if gw4 == nil {
		return "", fmt.Errorf("gateway %s is not IPv4", gw)
	}
	for _, iface := range ifaces {
		for _, addr := range iface.Addrs {
			if addr == nil || addr.IP.To4() == nil {
				continue
			}
			network := &net.IPNet{IP: addr.IP.Mask(addr.Mask), Mask: addr.Mask}
			if network.Contains(gw4) {
				return iface.Name, nil
			}
		}
	}
	return "", fmt.Errorf("no interface routes gateway %s", gw4)
}

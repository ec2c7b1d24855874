package netselect

import (
	"context"
	"errors"
	"net"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/common"
)

// ErrNoActiveNetwork is returned when no interface carries a qualifying IPv4 address.
var ErrNoActiveNetwork = errors.New("could not detect active network")

// Selection is the network chosen for discovery.
type Selection struct {
	Interface string
	IP        net.IP
	Netmask   net.IPMask
	Network   *net.IPNet
}

// CIDR returns the selected range in CIDR notation, e.g. "192.168.1.0/24".
func (s *Selection) CIDR() string {
	if s == nil || s.Network == nil {
		return ""
	}
	return s.Network.String()
}

// NetmaskString returns the netmask in dotted-quad form.
func (s *Selection) NetmaskString() string {
	if s == nil || len(s.Netmask) != net.IPv4len {
		return ""
	}
	return net.IP(s.Netmask).String()
}

// Interface is a network interface with its addresses in OS-reported order.
type Interface struct {
	Name  string
	Addrs []*net.IPNet
}

// Source enumerates interfaces and reports the default gateway interface.
type Source interface {
	Interfaces(ctx context.Context) ([]Interface, error)
	// GatewayInterface returns the name of the interface routing the default
	// IPv4 gateway, or an error when there is none.
	GatewayInterface(ctx context.Context, ifaces []Interface) (string, error)
}

// Selector chooses the active network.
type Selector struct {
	source Source
	ignore common.IgnoreRanges
}

// New returns a selector. A nil ignore set uses common.DefaultIgnoreRanges.
func New(source Source, ignore common.IgnoreRanges) *Selector {
	if ignore == nil {
		ignore = common.MustParseIgnoreRanges(common.DefaultIgnoreRanges)
	}
	return &Selector{source: source, ignore: ignore}
}

// Select returns the active network or ErrNoActiveNetwork.
func (s *Selector) Select(ctx context.Context) (*Selection, error) {
	ifaces, err := s.source.Interfaces(ctx)
	if err != nil {
		gologger.Debug().Msgf("could not enumerate interfaces: %v", err)
		return nil, ErrNoActiveNetwork
	}

	if name, err := s.source.GatewayInterface(ctx, ifaces); err == nil && name != "" {
		for _, iface := range ifaces {
			if iface.Name != name {
				continue
			}
			if selection := s.firstQualifying(iface); selection != nil {
				return selection, nil
			}
			break
		}
		gologger.Debug().Msgf("gateway interface %s has no usable IPv4 address, falling back", name)
	} else if err != nil {
		gologger.Debug().Msgf("no default gateway: %v", err)
	}

	for _, iface := range ifaces {
		if selection := s.firstQualifying(iface); selection != nil {
			return selection, nil
		}
	}
	return nil, ErrNoActiveNetwork
}

func (s *Selector) firstQualifying(iface Interface) *Selection {
	for _, addr := range iface.Addrs {
		if addr == nil {
			continue
		}
		ip := addr.IP.To4()
		if ip == nil || len(addr.Mask) != net.IPv4len {
			continue
		}
		if s.ignore.Contains(ip) {
			continue
		}
		mask := append(net.IPMask(nil), addr.Mask...)
		return &Selection{
			Interface: iface.Name,
			IP:        ip,
			Netmask:   mask,
			Network:   &net.IPNet{IP: ip.Mask(mask), Mask: mask},
		}
	}
	return nil
}

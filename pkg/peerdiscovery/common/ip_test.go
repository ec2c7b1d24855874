package common

import (
	"net"
	"reflect"
	"testing"
)

func TestUsableHosts(t *testing.T) {
	tests := []struct {
		name      string
		cidr      string
		wantCount int
		wantFirst string
		wantLast  string
		wantErr   bool
	}{
		{name: "/24 network", cidr: "192.168.1.0/24", wantCount: 254, wantFirst: "192.168.1.1", wantLast: "192.168.1.254"},
		{name: "unaligned address", cidr: "10.0.0.77/29", wantCount: 6, wantFirst: "10.0.0.73", wantLast: "10.0.0.78"},
		{name: "/30 network", cidr: "10.0.0.0/30", wantCount: 2, wantFirst: "10.0.0.1", wantLast: "10.0.0.2"},
		{name: "/31 point-to-point", cidr: "10.0.0.0/31", wantCount: 2, wantFirst: "10.0.0.0", wantLast: "10.0.0.1"},
		{name: "/32 single host", cidr: "10.0.0.9/32", wantCount: 1, wantFirst: "10.0.0.9", wantLast: "10.0.0.9"},
		{name: "invalid", cidr: "nope", wantErr: true},
		{name: "ipv6", cidr: "fd00::/120", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosts, err := UsableHosts(tt.cidr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UsableHosts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(hosts) != tt.wantCount {
				t.Fatalf("UsableHosts() returned %d hosts, want %d", len(hosts), tt.wantCount)
			}
			if hosts[0] != tt.wantFirst {
				t.Errorf("first host = %s, want %s", hosts[0], tt.wantFirst)
			}
			if hosts[len(hosts)-1] != tt.wantLast {
				t.Errorf("last host = %s, want %s", hosts[len(hosts)-1], tt.wantLast)
			}
		})
	}
}

func TestIsNetworkOrBroadcast(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.1.0/24")

	tests := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.0", true},
		{"192.168.1.255", true},
		{"192.168.1.1", false},
		{"192.168.1.254", false},
	}
	for _, tt := range tests {
		if got := IsNetworkOrBroadcast(net.ParseIP(tt.ip), network); got != tt.want {
			t.Errorf("IsNetworkOrBroadcast(%s) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if IsNetworkOrBroadcast(net.ParseIP("192.168.1.0"), nil) {
		t.Error("nil network must never match")
	}
}

func TestSortIPs(t *testing.T) {
	ips := []string{"10.0.0.10", "10.0.0.9", "10.0.0.100", "9.255.255.255", "10.0.0.2"}
	SortIPs(ips)

	want := []string{"9.255.255.255", "10.0.0.2", "10.0.0.9", "10.0.0.10", "10.0.0.100"}
	if !reflect.DeepEqual(ips, want) {
		t.Errorf("SortIPs() = %v, want %v", ips, want)
	}
}

func TestSortIPsInvalidLast(t *testing.T) {
	ips := []string{"garbage", "10.0.0.2", "10.0.0.1"}
	SortIPs(ips)

	want := []string{"10.0.0.1", "10.0.0.2", "garbage"}
	if !reflect.DeepEqual(ips, want) {
		t.Errorf("SortIPs() = %v, want %v", ips, want)
	}
}

func TestIgnoreRanges(t *testing.T) {
	ranges, err := ParseIgnoreRanges(DefaultIgnoreRanges)
	if err != nil {
		t.Fatalf("ParseIgnoreRanges() error = %v", err)
	}

	tests := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"169.254.10.20", true},
		{"192.168.56.1", true},
		{"10.0.75.3", true},
		{"172.17.0.1", true},
		{"192.168.57.9", true},
		{"192.168.60.200", true},
		{"192.168.1.10", false},
		{"10.0.0.5", false},
		{"172.18.0.1", false},
	}
	for _, tt := range tests {
		if got := ranges.Contains(net.ParseIP(tt.ip)); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func TestParseIgnoreRanges(t *testing.T) {
	ranges, err := ParseIgnoreRanges([]string{"10.1.2.3", " 192.168.0.0/16 ", "", "10.1.2.3"})
	if err != nil {
		t.Fatalf("ParseIgnoreRanges() error = %v", err)
	}
	want := []string{"10.1.2.3/32", "192.168.0.0/16"}
	if !reflect.DeepEqual(ranges.Strings(), want) {
		t.Errorf("Strings() = %v, want %v", ranges.Strings(), want)
	}

	if _, err := ParseIgnoreRanges([]string{"300.0.0.0/8"}); err == nil {
		t.Error("expected error for invalid range")
	}
}

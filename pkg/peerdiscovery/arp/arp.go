package arp

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"
)

// Entry maps an IPv4 address to a hardware address.
type Entry struct {
	IP  string
	MAC string
}

// Table is an ordered list of entries. Order is significant to consumers.
type Table []Entry

// Lookup returns the hardware address recorded for ip.
func (t Table) Lookup(ip string) (string, bool) {
	for _, entry := range t {
		if entry.IP == ip {
			return entry.MAC, true
		}
	}
	return "", false
}

// Resolver produces an IP to hardware-address table.
type Resolver interface {
	Resolve(ctx context.Context) (Table, error)
}

// Empty is the resolver that knows no hardware addresses.
type Empty struct{}

// Resolve returns an empty table.
func (Empty) Resolve(context.Context) (Table, error) {
	return Table{}, nil
}

// Static returns a copy of a fixed table.
type Static Table

// Resolve returns the table.
func (s Static) Resolve(context.Context) (Table, error) {
	return append(Table{}, s...), nil
}

// LocalTable reads the operating system neighbour cache.
type LocalTable struct{}

// Resolve reads the local ARP table.
func (LocalTable) Resolve(ctx context.Context) (Table, error) {
	return readLocalARPTable(ctx)
}

// ParseLinuxARPTable parses the contents of /proc/net/arp.
func ParseLinuxARPTable(data string) Table {
	var table Table
	scanner := bufio.NewScanner(strings.NewReader(data))

	// Skip header line
	if !scanner.Scan() {
		return table
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}

		// Format: IP address HW type Flags HW address Mask Device
		if entry, ok := newEntry(fields[0], fields[3]); ok {
			table = append(table, entry)
		}
	}
	return table
}

// ParseDarwinARPTable parses `arp -a` output on macOS:
//
//	? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]
func ParseDarwinARPTable(data string) Table {
	var table Table
	scanner := bufio.NewScanner(strings.NewReader(data))

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Extract IP address (between parentheses)
		ipStart := strings.Index(line, "(")
		ipEnd := strings.Index(line, ")")
		if ipStart == -1 || ipEnd == -1 || ipStart >= ipEnd {
			continue
		}
		ipStr := line[ipStart+1 : ipEnd]

		// Extract MAC address (after "at ")
		atIndex := strings.Index(line, " at ")
		if atIndex == -1 {
			continue
		}
		rest := strings.Fields(line[atIndex+4:])
		if len(rest) == 0 {
			continue
		}

		if entry, ok := newEntry(ipStr, rest[0]); ok {
			table = append(table, entry)
		}
	}
	return table
}

// ParseWindowsARPTable parses `arp -a` output on Windows:
//
//	Interface: 192.168.1.100 --- 0xa
//	  Internet Address      Physical Address      Type
//	  192.168.1.1           aa-bb-cc-dd-ee-ff     dynamic
func ParseWindowsARPTable(data string) Table {
	var table Table
	scanner := bufio.NewScanner(strings.NewReader(data))

	inARPTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(line, "Internet Address") && strings.Contains(line, "Physical Address") {
			inARPTable = true
			continue
		}
		if strings.HasPrefix(line, "Interface:") {
			inARPTable = false
			continue
		}
		if !inARPTable {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		if entry, ok := newEntry(fields[0], fields[1]); ok {
			table = append(table, entry)
		}
	}
	return table
}

// newEntry validates one neighbour row. Incomplete, broadcast and
// multicast rows are rejected. The hardware address is kept as reported
// (macOS drops leading zeros, Windows uses hyphens).
func newEntry(ipStr, macStr string) (Entry, bool) {
	ip := net.ParseIP(ipStr).To4()
	if ip == nil || ip.IsMulticast() || ip.Equal(net.IPv4bcast) {
		return Entry{}, false
	}

	groups := strings.FieldsFunc(macStr, func(r rune) bool { return r == ':' || r == '-' })
	if len(groups) != 6 {
		return Entry{}, false
	}
	var zero, bcast int
	for _, group := range groups {
		if len(group) > 2 {
			return Entry{}, false
		}
		value, err := strconv.ParseUint(group, 16, 8)
		if err != nil {
			return Entry{}, false
		}
		switch value {
		case 0:
			zero++
		case 0xff:
			bcast++
		}
	}
	if zero == 6 || bcast == 6 {
		return Entry{}, false
	}
	return Entry{IP: ip.String(), MAC: macStr}, true
}

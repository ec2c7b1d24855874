package inventory

import (
	"github.com/projectdiscovery/lanmap/pkg/macvendor"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/common"
)

// Merge combines a resolution table and the alive addresses of a sweep into
// one record per device.
//
// Every alive address appears in exactly one record. Addresses sharing a
// hardware address collapse into one record; alive addresses absent from the
// table become ping-only records. Table entries for addresses that are not
// alive are ignored, and when the table lists an address twice the first
// entry wins. Records follow table order, then the order of unresolved
// addresses in alive.
func Merge(table arp.Table, alive []string) []HostRecord {
	aliveSet := make(map[string]struct{}, len(alive))
	for _, ip := range alive {
		aliveSet[ip] = struct{}{}
	}

	var records []HostRecord
	index := make(map[string]int)
	placed := make(map[string]struct{}, len(alive))

	add := func(key, mac, ip string) {
		i, ok := index[key]
		if !ok {
			i = len(records)
			index[key] = i
			records = append(records, HostRecord{MAC: mac, PingOnly: mac == ""})
		}
		records[i].IPs = append(records[i].IPs, ip)
		placed[ip] = struct{}{}
	}

	for _, entry := range table {
		if _, ok := aliveSet[entry.IP]; !ok {
			continue
		}
		if _, ok := placed[entry.IP]; ok {
			continue
		}
		mac := macvendor.Normalize(entry.MAC)
		key := mac
		if mac == "" {
			key = pingOnlyKey(entry.IP)
		}
		add(key, mac, entry.IP)
	}

	for _, ip := range alive {
		if _, ok := placed[ip]; ok {
			continue
		}
		add(pingOnlyKey(ip), "", ip)
	}

	for i := range records {
		common.SortIPs(records[i].IPs)
	}
	if records == nil {
		records = []HostRecord{}
	}
	return records
}

// VendorResolver maps a hardware address to a vendor name.
type VendorResolver interface {
	Resolve(mac string) string
}

// Enrich fills vendor and mobile classification in place and returns records.
// Ping-only records get PingOnlyVendor and are never mobile.
func Enrich(records []HostRecord, vendors VendorResolver) []HostRecord {
	for i := range records {
		record := &records[i]
		if record.MAC == "" {
			record.Vendor = PingOnlyVendor
			record.Mobile = false
			record.PingOnly = true
			continue
		}
		record.Vendor = macvendor.Unknown
		if vendors != nil {
			record.Vendor = vendors.Resolve(record.MAC)
		}
		record.Mobile = macvendor.IsMobile(record.Vendor)
		record.PingOnly = false
	}
	return records
}

// CountIPs returns the number of addresses across records.
func CountIPs(records []HostRecord) int {
	n := 0
	for _, record := range records {
		n += len(record.IPs)
	}
	return n
}

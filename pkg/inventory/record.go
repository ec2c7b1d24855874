package inventory

import (
	"encoding/json"
)

// PingOnlyVendor is the vendor reported for hosts without a hardware address.
const PingOnlyVendor = "Unknown (ping-only)"

// HostRecord is one device discovered during a sweep cycle.
type HostRecord struct {
	// MAC is the canonical hardware address, empty for ping-only hosts.
	MAC string
	// IPs are the alive addresses of the device in ascending numeric order.
	IPs      []string
	Vendor   string
	Mobile   bool
	PingOnly bool
}

// Key returns the identity of the record: its hardware address when known,
// otherwise a key derived from its single address.
func (h HostRecord) Key() string {
	if h.MAC != "" {
		return h.MAC
	}
	if len(h.IPs) == 0 {
		return pingOnlyKey("")
	}
	return pingOnlyKey(h.IPs[0])
}

func pingOnlyKey(ip string) string {
	return "ping-only:" + ip
}

type hostRecordJSON struct {
	MAC      *string  `json:"mac"`
	IPs      []string `json:"ips"`
	Vendor   string   `json:"vendor"`
	Mobile   bool     `json:"mobile"`
	PingOnly bool     `json:"ping_only"`
}

// MarshalJSON renders the snapshot element, with a null mac for ping-only hosts.
func (h HostRecord) MarshalJSON() ([]byte, error) {
	out := hostRecordJSON{
		IPs:      h.IPs,
		Vendor:   h.Vendor,
		Mobile:   h.Mobile,
		PingOnly: h.PingOnly,
	}
	if out.IPs == nil {
		out.IPs = []string{}
	}
	if h.MAC != "" {
		mac := h.MAC
		out.MAC = &mac
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses a snapshot element.
func (h *HostRecord) UnmarshalJSON(data []byte) error {
	var in hostRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*h = HostRecord{
		IPs:      in.IPs,
		Vendor:   in.Vendor,
		Mobile:   in.Mobile,
		PingOnly: in.PingOnly,
	}
	if in.MAC != nil {
		h.MAC = *in.MAC
	}
	return nil
}

package macvendor

import (
	"regexp"
	"strings"
)

var (
	delimiterRegex = regexp.MustCompile(`[:\-]`)
	nonHexRegex    = regexp.MustCompile(`[^0-9a-fA-F]`)
)

// Normalize canonicalizes a hardware address to lowercase colon-separated
// octets ("aa:bb:cc:dd:ee:ff"). Input that does not look like a six-octet
// address is returned lowercased. Blank input returns "".
func Normalize(raw string) string {
	mac := strings.TrimSpace(raw)
	if mac == "" {
		return ""
	}

	if delimiterRegex.MatchString(mac) {
		parts := delimiterRegex.Split(mac, -1)
		if len(parts) == 6 {
			for i, part := range parts {
				part = strings.ToLower(part)
				if len(part) < 2 {
					part = strings.Repeat("0", 2-len(part)) + part
				}
				parts[i] = part
			}
			return strings.Join(parts, ":")
		}
	}

	hexOnly := nonHexRegex.ReplaceAllString(mac, "")
	if len(hexOnly) == 12 {
		hexOnly = strings.ToLower(hexOnly)
		parts := make([]string, 0, 6)
		for i := 0; i < 12; i += 2 {
			parts = append(parts, hexOnly[i:i+2])
		}
		return strings.Join(parts, ":")
	}

	return strings.ToLower(mac)
}

// OUI returns the uppercase six hex digit organizationally unique
// identifier of a hardware address, or "" when it has fewer than six hex digits.
func OUI(mac string) string {
	hexOnly := nonHexRegex.ReplaceAllString(Normalize(mac), "")
	if len(hexOnly) < 6 {
		return ""
	}
	return strings.ToUpper(hexOnly[:6])
}

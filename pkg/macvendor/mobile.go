package macvendor

import (
	"strings"

	stringsutil "github.com/projectdiscovery/utils/strings"
)

// MobileKeywords classify a vendor name as a phone or tablet manufacturer.
var MobileKeywords = []string{"apple", "samsung", "xiaomi", "huawei", "oneplus", "pixel", "realme", "vivo"}

// IsMobile reports whether vendor contains a mobile keyword, ignoring case.
func IsMobile(vendor string) bool {
	if vendor == "" {
		return false
	}
	return stringsutil.ContainsAny(strings.ToLower(vendor), MobileKeywords...)
}

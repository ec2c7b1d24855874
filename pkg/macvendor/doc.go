// Package macvendor normalizes hardware addresses and resolves them to
// manufacturer names.
//
// Resolution results are memoized for the lifetime of the Resolver, failures
// included: an address whose lookup failed reports "Unknown" and is never looked
// up again. Under bursty discovery this keeps lookup cost bounded by the number
// of distinct devices.
//
// Example usage:
//
//	db, err := macvendor.OpenOUIDatabase("/usr/share/nmap/nmap-mac-prefixes")
//	resolver := macvendor.NewResolver(db)
//	vendor := resolver.Resolve("A4-83-E7-12-34-56")
//	mobile := macvendor.IsMobile(vendor)
package macvendor

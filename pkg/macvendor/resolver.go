package macvendor

import (
	"strings"

	"github.com/projectdiscovery/gcache"
	"github.com/projectdiscovery/gologger"
	"golang.org/x/sync/singleflight"
)

// Unknown is reported when no vendor could be determined.
const Unknown = "Unknown"

// Resolver resolves hardware addresses to vendor names with a process-wide
// memo. It is safe for concurrent use.
type Resolver struct {
	lookup Lookup
	cache  gcache.Cache[string, string]
	group  singleflight.Group
}

// NewResolver returns a Resolver backed by lookup. A nil lookup resolves
// every address to Unknown.
func NewResolver(lookup Lookup) *Resolver {
	return &Resolver{
		lookup: lookup,
		// size 0: unbounded, entries are never evicted
		cache: gcache.New[string, string](0).Simple().Build(),
	}
}

// Resolve returns the vendor for a raw hardware address in any delimiter style.
// Blank input returns Unknown without touching the cache.
func (r *Resolver) Resolve(raw string) string {
	mac := Normalize(raw)
	if mac == "" {
		return Unknown
	}
	if vendor, err := r.cache.Get(mac); err == nil {
		return vendor
	}

	value, _, _ := r.group.Do(mac, func() (interface{}, error) {
		// a concurrent caller may have finished the lookup meanwhile
		if vendor, err := r.cache.Get(mac); err == nil {
			return vendor, nil
		}
		vendor := r.resolveUncached(mac)
		_ = r.cache.Set(mac, vendor)
		return vendor, nil
	})
	return value.(string)
}

// Len returns the number of memoized addresses.
func (r *Resolver) Len() int {
	return r.cache.Len(false)
}

func (r *Resolver) resolveUncached(mac string) string {
	if r.lookup == nil {
		return Unknown
	}
	vendor, err := r.lookup.Lookup(mac)
	if err != nil {
		gologger.Debug().Msgf("vendor lookup for %s failed: %v", mac, err)
		return Unknown
	}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return Unknown
	}
	return vendor
}

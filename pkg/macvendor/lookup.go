package macvendor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// ErrVendorNotFound is returned when a lookup has no entry for an address.
var ErrVendorNotFound = errors.New("vendor not found")

// Lookup resolves a normalized hardware address to a vendor name.
type Lookup interface {
	Lookup(mac string) (string, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(mac string) (string, error)

// Lookup calls f.
func (f LookupFunc) Lookup(mac string) (string, error) {
	return f(mac)
}

// Chain tries each lookup in order and returns the first success.
type Chain []Lookup

// Lookup returns the first successful result of the chain.
func (c Chain) Lookup(mac string) (string, error) {
	var errs []error
	for _, lookup := range c {
		vendor, err := lookup.Lookup(mac)
		if err == nil {
			return vendor, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrVendorNotFound
	}
	return "", errors.Join(errs...)
}

// OUIDatabase is an in-memory OUI prefix to vendor table.
// It is safe for concurrent Lookups after loading.
type OUIDatabase struct {
	entries map[string]string // six uppercase hex digits -> vendor
}

// OpenOUIDatabase loads a vendor file from disk. See ParseOUIDatabase for
// the accepted layouts.
func OpenOUIDatabase(path string) (*OUIDatabase, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vendor database: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()
	return ParseOUIDatabase(file)
}

// ParseOUIDatabase reads vendor records, one per line. Accepted layouts:
//
//	A483E7 Apple                                  (nmap-mac-prefixes)
//	A4-83-E7   (hex)		Apple, Inc.           (IEEE oui.txt)
//	A4:83:E7	Apple	Apple, Inc.                 (Wireshark manuf)
//
// Comment lines starting with '#' and unrecognized lines are skipped.
// Wireshark entries carrying a mask longer than 24 bits are skipped.
func ParseOUIDatabase(r io.Reader) (*OUIDatabase, error) {
	db := &OUIDatabase{entries: make(map[string]string, 4096)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		prefix, vendor, ok := parseOUILine(line)
		if !ok {
			continue
		}
		if _, exists := db.entries[prefix]; !exists {
			db.entries[prefix] = vendor
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read vendor database: %w", err)
	}
	return db, nil
}

func parseOUILine(line string) (string, string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", false
	}

	key := fields[0]
	if slash := strings.Index(key, "/"); slash != -1 {
		if key[slash+1:] != "24" {
			return "", "", false
		}
		key = key[:slash]
	}
	key = strings.ToUpper(strings.NewReplacer(":", "", "-", "", ".", "").Replace(key))
	if len(key) != 6 || !isHex(key) {
		return "", "", false
	}

	rest := strings.TrimSpace(line[len(fields[0]):])
	switch {
	case strings.HasPrefix(rest, "(hex)"):
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "(hex)"))
	case strings.Contains(rest, "\t"):
		// manuf: short name, then optional long name
		columns := strings.Split(rest, "\t")
		rest = strings.TrimSpace(columns[len(columns)-1])
		if rest == "" {
			rest = strings.TrimSpace(columns[0])
		}
	}
	if rest == "" {
		return "", "", false
	}
	return key, rest, true
}

func isHex(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune("0123456789ABCDEF", c) {
			return false
		}
	}
	return true
}

// Len returns the number of prefixes loaded.
func (db *OUIDatabase) Len() int {
	return len(db.entries)
}

// Lookup returns the vendor registered for the address prefix.
func (db *OUIDatabase) Lookup(mac string) (string, error) {
	prefix := OUI(mac)
	if prefix == "" {
		return "", fmt.Errorf("invalid hardware address %q", mac)
	}
	vendor, ok := db.entries[prefix]
	if !ok {
		return "", ErrVendorNotFound
	}
	return vendor, nil
}

// DefaultAPIURL is a maclookup.app compatible endpoint; %s receives the address.
const DefaultAPIURL = "https://api.maclookup.app/v2/macs/%s"

// APILookup resolves vendors through an HTTP JSON API answering
// {"success":true,"found":true,"company":"..."}.
type APILookup struct {
	URL    string
	Client *http.Client
}

// NewAPILookup returns an APILookup for urlFormat, DefaultAPIURL when empty.
func NewAPILookup(urlFormat string, timeout time.Duration) *APILookup {
	if urlFormat == "" {
		urlFormat = DefaultAPIURL
	}
	return &APILookup{
		URL:    urlFormat,
		Client: &http.Client{Timeout: timeout},
	}
}

// Lookup queries the API for mac.
func (a *APILookup) Lookup(mac string) (string, error) {
	resp, err := a.Client.Get(fmt.Sprintf(a.URL, url.PathEscape(mac)))
	if err != nil {
		return "", fmt.Errorf("vendor api request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return "", ErrVendorNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vendor api returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("read vendor api response: %w", err)
	}

	result := gjson.ParseBytes(body)
	if success := result.Get("success"); success.Exists() && !success.Bool() {
		return "", fmt.Errorf("vendor api error: %s", result.Get("error").String())
	}
	if found := result.Get("found"); found.Exists() && !found.Bool() {
		return "", ErrVendorNotFound
	}
	company := strings.TrimSpace(result.Get("company").String())
	if company == "" {
		return "", ErrVendorNotFound
	}
	return company, nil
}

package macvendor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AA-BB-CC-DD-EE-FF", "aa:bb:cc:dd:ee:ff"},
		{"aabbccddeeff", "aa:bb:cc:dd:ee:ff"},
		{"AA:BB:CC:DD:EE:FF", "aa:bb:cc:dd:ee:ff"},
		{"  0:1a:2b:3:4d:5e ", "00:1a:2b:03:4d:5e"},
		{"aabb.ccdd.eeff", "aa:bb:cc:dd:ee:ff"},
		{"AA BB CC DD EE FF", "aa:bb:cc:dd:ee:ff"},
		{"aa:bb:cc", "aa:bb:cc"},
		{"NOT-A-MAC", "not-a-mac"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if Normalize("AA-BB-CC-DD-EE-FF") != Normalize("aabbccddeeff") {
		t.Error("hyphenated and bare forms must normalize identically")
	}
}

func TestOUI(t *testing.T) {
	if got := OUI("a4-83-e7-12-34-56"); got != "A483E7" {
		t.Errorf("OUI() = %s, want A483E7", got)
	}
	if got := OUI("a4:8"); got != "" {
		t.Errorf("OUI() = %s, want empty", got)
	}
}

func TestIsMobile(t *testing.T) {
	tests := []struct {
		vendor string
		want   bool
	}{
		{"Apple, Inc.", true},
		{"SAMSUNG ELECTRO-MECHANICS", true},
		{"Xiaomi Communications Co Ltd", true},
		{"HUAWEI TECHNOLOGIES CO.,LTD", true},
		{"OnePlus Technology (Shenzhen) Co., Ltd", true},
		{"Google Pixel", true},
		{"realme Chongqing Mobile", true},
		{"vivo Mobile Communication Co., Ltd.", true},
		{"Intel Corporate", false},
		{"Raspberry Pi Trading Ltd", false},
		{Unknown, false},
		{"Unknown (ping-only)", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsMobile(tt.vendor); got != tt.want {
			t.Errorf("IsMobile(%q) = %v, want %v", tt.vendor, got, tt.want)
		}
	}
}

// countingLookup counts calls per address.
type countingLookup struct {
	mu     sync.Mutex
	calls  map[string]int
	vendor map[string]string
	delay  time.Duration
}

func newCountingLookup(vendors map[string]string) *countingLookup {
	return &countingLookup{calls: map[string]int{}, vendor: vendors}
}

func (c *countingLookup) Lookup(mac string) (string, error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[mac]++
	if v, ok := c.vendor[mac]; ok {
		return v, nil
	}
	return "", ErrVendorNotFound
}

func (c *countingLookup) count(mac string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[mac]
}

func TestResolverMemoizesHitsAndFailures(t *testing.T) {
	lookup := newCountingLookup(map[string]string{"a4:83:e7:12:34:56": "Apple, Inc."})
	resolver := NewResolver(lookup)

	for _, raw := range []string{"A4-83-E7-12-34-56", "a483e7123456", "a4:83:e7:12:34:56"} {
		if got := resolver.Resolve(raw); got != "Apple, Inc." {
			t.Errorf("Resolve(%q) = %q", raw, got)
		}
	}
	if n := lookup.count("a4:83:e7:12:34:56"); n != 1 {
		t.Errorf("lookup called %d times, want 1", n)
	}

	for i := 0; i < 3; i++ {
		if got := resolver.Resolve("00:11:22:33:44:55"); got != Unknown {
			t.Errorf("Resolve() = %q, want %q", got, Unknown)
		}
	}
	if n := lookup.count("00:11:22:33:44:55"); n != 1 {
		t.Errorf("failing lookup called %d times, want 1", n)
	}
	if resolver.Len() != 2 {
		t.Errorf("Len() = %d, want 2", resolver.Len())
	}
}

func TestResolverBlankInput(t *testing.T) {
	lookup := newCountingLookup(nil)
	resolver := NewResolver(lookup)

	if got := resolver.Resolve("   "); got != Unknown {
		t.Errorf("Resolve() = %q, want %q", got, Unknown)
	}
	if resolver.Len() != 0 {
		t.Errorf("blank input must not touch the cache, Len() = %d", resolver.Len())
	}
}

func TestResolverNilLookup(t *testing.T) {
	resolver := NewResolver(nil)
	if got := resolver.Resolve("aa:bb:cc:dd:ee:ff"); got != Unknown {
		t.Errorf("Resolve() = %q, want %q", got, Unknown)
	}
}

func TestResolverBlankVendorIsUnknown(t *testing.T) {
	resolver := NewResolver(LookupFunc(func(string) (string, error) { return "  ", nil }))
	if got := resolver.Resolve("aa:bb:cc:dd:ee:ff"); got != Unknown {
		t.Errorf("Resolve() = %q, want %q", got, Unknown)
	}
}

func TestResolverConcurrentSingleLookup(t *testing.T) {
	lookup := newCountingLookup(map[string]string{"aa:bb:cc:dd:ee:ff": "Samsung"})
	lookup.delay = 10 * time.Millisecond
	resolver := NewResolver(lookup)

	var wg sync.WaitGroup
	var wrong int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if resolver.Resolve("AA-BB-CC-DD-EE-FF") != "Samsung" {
				atomic.AddInt32(&wrong, 1)
			}
		}()
	}
	wg.Wait()

	if wrong != 0 {
		t.Errorf("%d resolutions returned the wrong vendor", wrong)
	}
	if n := lookup.count("aa:bb:cc:dd:ee:ff"); n != 1 {
		t.Errorf("lookup called %d times, want 1", n)
	}
}

func TestChain(t *testing.T) {
	failing := LookupFunc(func(string) (string, error) { return "", errors.New("offline") })
	ok := LookupFunc(func(string) (string, error) { return "Intel", nil })

	vendor, err := Chain{failing, ok}.Lookup("aa:bb:cc:dd:ee:ff")
	if err != nil || vendor != "Intel" {
		t.Errorf("Chain.Lookup() = %q, %v", vendor, err)
	}
	if _, err := (Chain{failing}).Lookup("aa:bb:cc:dd:ee:ff"); err == nil {
		t.Error("expected error when every lookup fails")
	}
	if _, err := (Chain{}).Lookup("aa:bb:cc:dd:ee:ff"); !errors.Is(err, ErrVendorNotFound) {
		t.Errorf("empty chain error = %v", err)
	}
}

func TestParseOUIDatabase(t *testing.T) {
	data := strings.Join([]string{
		"# nmap style",
		"A483E7 Apple",
		"001A11 Google",
		"",
		"00-16-6C   (hex)\t\tSamsung Electronics Co.,Ltd",
		"00166C     (base 16)\t\tSamsung Electronics Co.,Ltd",
		"\t\t\t\t#416, Maetan 3-dong",
		"B8:27:EB\tRaspberr\tRaspberry Pi Foundation",
		"00:00:01\tXerox",
		"00:55:DA:00:00:00/28\tShinko\tShinko Technos co.,ltd.",
		"A483E7 Duplicate",
		"garbage",
	}, "\n")

	db, err := ParseOUIDatabase(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseOUIDatabase() error = %v", err)
	}

	tests := []struct {
		mac     string
		want    string
		wantErr bool
	}{
		{"a4:83:e7:01:02:03", "Apple", false},
		{"00:1a:11:00:00:01", "Google", false},
		{"00:16:6c:aa:bb:cc", "Samsung Electronics Co.,Ltd", false},
		{"b8:27:eb:11:22:33", "Raspberry Pi Foundation", false},
		{"00:00:01:00:00:00", "Xerox", false},
		{"00:55:da:00:00:01", "", true},
		{"ff:ff:ff:00:00:00", "", true},
		{"zz", "", true},
	}
	for _, tt := range tests {
		got, err := db.Lookup(tt.mac)
		if (err != nil) != tt.wantErr {
			t.Errorf("Lookup(%s) error = %v, wantErr %v", tt.mac, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Lookup(%s) = %q, want %q", tt.mac, got, tt.want)
		}
	}
	if db.Len() != 5 {
		t.Errorf("Len() = %d, want 5", db.Len())
	}
}

func TestAPILookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/a4:83:e7:12:34:56"):
			_, _ = fmt.Fprint(w, `{"success":true,"found":true,"macPrefix":"A483E7","company":"Apple, Inc."}`)
		case strings.HasSuffix(r.URL.Path, "/00:00:00:00:00:01"):
			_, _ = fmt.Fprint(w, `{"success":true,"found":false,"company":""}`)
		default:
			w.WriteHeader(http.StatusTooManyRequests)
		}
	}))
	defer server.Close()

	api := NewAPILookup(server.URL+"/v2/macs/%s", time.Second)

	vendor, err := api.Lookup("a4:83:e7:12:34:56")
	if err != nil || vendor != "Apple, Inc." {
		t.Errorf("Lookup() = %q, %v", vendor, err)
	}
	if _, err := api.Lookup("00:00:00:00:00:01"); !errors.Is(err, ErrVendorNotFound) {
		t.Errorf("Lookup() error = %v, want ErrVendorNotFound", err)
	}
	if _, err := api.Lookup("11:11:11:11:11:11"); err == nil {
		t.Error("expected error on rate limit")
	}
}

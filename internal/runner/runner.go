package runner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanmap/pkg/inventory"
	"github.com/projectdiscovery/lanmap/pkg/macvendor"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/arp"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/netselect"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/pingsweep"
	"github.com/rs/xid"
)

// SelectionFailedMessage is emitted once when no active network is found.
const SelectionFailedMessage = "Could not detect active network"

// vendorAPITimeout bounds a single online vendor lookup.
const vendorAPITimeout = 5 * time.Second

// Runner contains the internal logic of the discovery loop
type Runner struct {
	options   *Options
	selector  *netselect.Selector
	sweeper   *pingsweep.Sweeper
	addresses arp.Resolver
	vendors   *macvendor.Resolver
	output    io.Writer
}

// NewRunner wires the discovery components described by options.
func NewRunner(options *Options) (*Runner, error) {
	ignore, err := common.ParseIgnoreRanges(options.IgnoreRanges)
	if err != nil {
		return nil, err
	}

	var prober pingsweep.Prober = &pingsweep.CommandProber{}
	if options.ICMP || options.Privileged {
		prober = &pingsweep.ICMPProber{Privileged: options.Privileged}
	}
	sweeper, err := pingsweep.New(&pingsweep.Options{
		Concurrency: options.Concurrency,
		Timeout:     options.Timeout,
		Prober:      prober,
	})
	if err != nil {
		return nil, err
	}
	if _, ok := prober.(*pingsweep.CommandProber); ok {
		checkDescriptorLimit(sweeper.Concurrency())
	}

	var addresses arp.Resolver = arp.Empty{}
	if options.ARPTable {
		addresses = arp.LocalTable{}
	}

	lookup, err := vendorLookup(options)
	if err != nil {
		return nil, err
	}

	return &Runner{
		options:   options,
		selector:  netselect.New(netselect.SystemSource{}, ignore),
		sweeper:   sweeper,
		addresses: addresses,
		vendors:   macvendor.NewResolver(lookup),
		output:    os.Stdout,
	}, nil
}

// vendorLookup builds the configured vendor backends, nil when none is set.
func vendorLookup(options *Options) (macvendor.Lookup, error) {
	var chain macvendor.Chain
	if options.OUIDatabase != "" {
		db, err := macvendor.OpenOUIDatabase(options.OUIDatabase)
		if err != nil {
			return nil, err
		}
		gologger.Verbose().Msgf("loaded %d vendor prefixes from %s", db.Len(), options.OUIDatabase)
		chain = append(chain, db)
	}
	if options.VendorAPI {
		chain = append(chain, macvendor.NewAPILookup(options.VendorAPIURL, vendorAPITimeout))
	}
	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return chain[0], nil
	}
	return chain, nil
}

// Run selects the active network once, then emits a snapshot per cycle until
// ctx is done or the configured number of cycles has run. A failed selection
// emits a single error payload and returns netselect.ErrNoActiveNetwork.
func (r *Runner) Run(ctx context.Context) error {
	selection, err := r.selector.Select(ctx)
	if err != nil {
		if writeErr := r.emit(map[string]string{"error": SelectionFailedMessage}, false); writeErr != nil {
			gologger.Error().Msgf("could not write error payload: %v", writeErr)
		}
		return err
	}

	gologger.Info().Msgf("scanning %s on %s (local address %s, netmask %s)", selection.CIDR(), selection.Interface, selection.IP, selection.NetmaskString())
	gologger.Verbose().Msgf("concurrency %d, timeout %s, interval %s", r.sweeper.Concurrency(), r.sweeper.Timeout(), r.options.Interval)

	for cycle := 1; ; cycle++ {
		if err := r.runCycle(ctx, selection); err != nil && ctx.Err() == nil {
			gologger.Error().Msgf("cycle %d failed: %v", cycle, err)
		}
		if r.options.Cycles > 0 && cycle >= r.options.Cycles {
			return nil
		}
		if !sleep(ctx, r.options.Interval) {
			return nil
		}
	}
}

// runCycle performs one sweep, merge, resolve and emit pass. Panics are
// converted to errors so a bad cycle never stops the loop.
func (r *Runner) runCycle(ctx context.Context, selection *netselect.Selection) (err error) {
	id := xid.New().String()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("cycle %s panicked: %v", id, rec)
		}
	}()

	start := time.Now()
	alive, err := r.sweeper.Sweep(ctx, selection.CIDR())
	if err != nil {
		return fmt.Errorf("sweep %s: %w", selection.CIDR(), err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	table, err := r.addresses.Resolve(ctx)
	if err != nil {
		gologger.Warning().Msgf("cycle %s: address resolution failed, reporting ping-only hosts: %v", id, err)
		table = arp.Table{}
	}

	records := inventory.Enrich(inventory.Merge(table, alive), r.vendors)
	if err := r.emit(records, true); err != nil {
		return fmt.Errorf("emit snapshot: %w", err)
	}

	gologger.Verbose().Msgf("cycle %s: %d hosts, %d records in %s", id, len(alive), len(records), time.Since(start).Round(time.Millisecond))
	return nil
}

func (r *Runner) emit(v interface{}, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = r.output.Write(data)
	return err
}

// sleep pauses for d and reports false when ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// IsSelectionFailure reports whether err is the fatal selection failure.
func IsSelectionFailure(err error) bool {
	return errors.Is(err, netselect.ErrNoActiveNetwork)
}

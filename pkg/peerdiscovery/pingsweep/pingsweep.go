package pingsweep

import (
	"context"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/common"
	mapsutil "github.com/projectdiscovery/utils/maps"
)

const (
	DefaultConcurrency = 200
	MinConcurrency     = 4
	MaxConcurrency     = 1000
	DefaultTimeout     = 500 * time.Millisecond
)

// Options configures a Sweeper. Zero values select the defaults.
type Options struct {
	// Concurrency is the number of probes in flight.
	Concurrency int
	// Timeout is the per-probe wait for a reply.
	Timeout time.Duration
	// Prober tests a single address, CommandProber when nil.
	Prober Prober
	// NewExecutor builds the bounded executor, NewAdaptiveExecutor when nil.
	NewExecutor ExecutorFactory
}

// Sweeper probes every usable address of a range.
type Sweeper struct {
	concurrency int
	timeout     time.Duration
	prober      Prober
	newExecutor ExecutorFactory
}

// New creates a Sweeper from options.
func New(options *Options) (*Sweeper, error) {
	if options == nil {
		options = &Options{}
	}
	s := &Sweeper{
		concurrency: ClampConcurrency(options.Concurrency),
		timeout:     options.Timeout,
		prober:      options.Prober,
		newExecutor: options.NewExecutor,
	}
	if s.timeout <= 0 {
		s.timeout = DefaultTimeout
	}
	if s.prober == nil {
		s.prober = &CommandProber{}
	}
	if s.newExecutor == nil {
		s.newExecutor = NewAdaptiveExecutor
	}
	return s, nil
}

// ClampConcurrency maps n into [MinConcurrency, MaxConcurrency].
// Non-positive values select DefaultConcurrency.
func ClampConcurrency(n int) int {
	switch {
	case n <= 0:
		return DefaultConcurrency
	case n < MinConcurrency:
		return MinConcurrency
	case n > MaxConcurrency:
		return MaxConcurrency
	}
	return n
}

// Concurrency returns the effective concurrency bound.
func (s *Sweeper) Concurrency() int { return s.concurrency }

// Timeout returns the per-probe timeout.
func (s *Sweeper) Timeout() time.Duration { return s.timeout }

// Sweep probes every usable host of cidr and returns the alive ones in
// ascending numeric order. Probe failures count as "not alive"; the only
// error is an invalid range. Sweep returns after every probe has finished.
func (s *Sweeper) Sweep(ctx context.Context, cidr string) ([]string, error) {
	targets, err := common.UsableHosts(cidr)
	if err != nil {
		return nil, err
	}
	return s.SweepAddresses(ctx, targets)
}

// SweepAddresses probes the given addresses.
func (s *Sweeper) SweepAddresses(ctx context.Context, targets []string) ([]string, error) {
	if len(targets) == 0 {
		return []string{}, nil
	}

	executor, err := s.newExecutor(s.concurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to create executor: %w", err)
	}

	alive := mapsutil.NewSyncLockMap[string, struct{}]()
	start := time.Now()

	for _, target := range targets {
		ip := target
		executor.Go(func() {
			if s.probe(ctx, ip) {
				_ = alive.Set(ip, struct{}{})
			}
		})
	}
	executor.Wait()

	result := make([]string, 0, len(targets))
	_ = alive.Iterate(func(ip string, _ struct{}) error {
		result = append(result, ip)
		return nil
	})
	common.SortIPs(result)

	gologger.Verbose().Msgf("swept %d addresses in %s, %d alive", len(targets), time.Since(start).Round(time.Millisecond), len(result))
	return result, nil
}

// probe shields the sweep from a misbehaving prober.
func (s *Sweeper) probe(ctx context.Context, ip string) (alive bool) {
	defer func() {
		if r := recover(); r != nil {
			gologger.Debug().Msgf("probe %s panicked: %v", ip, r)
			alive = false
		}
	}()
	return s.prober.Probe(ctx, ip, s.timeout)
}

package runner

import (
	"os"
	"strconv"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/formatter"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/common"
	"github.com/projectdiscovery/lanmap/pkg/peerdiscovery/pingsweep"
	"github.com/projectdiscovery/lanmap/pkg/version"
	envutil "github.com/projectdiscovery/utils/env"
)

var (
	ConcurrencyEnv = envutil.GetEnvOrDefault("LANMAP_CONCURRENCY", "")
	IntervalEnv    = envutil.GetEnvOrDefault("LANMAP_INTERVAL", "")
	OUIDatabaseEnv = envutil.GetEnvOrDefault("LANMAP_OUI_DB", "")
)

// DefaultInterval is the pause between two sweep cycles.
const DefaultInterval = 5 * time.Second

// Options contains the configuration options for the discovery loop.
type Options struct {
	ConfigFile string

	Concurrency  int
	Timeout      time.Duration
	Interval     time.Duration
	Cycles       int
	IgnoreRanges goflags.StringSlice

	ARPTable   bool
	ICMP       bool
	Privileged bool

	OUIDatabase  string
	VendorAPI    bool
	VendorAPIURL string

	Verbose bool
	Debug   bool
	Silent  bool
	NoColor bool
	Version bool
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() *Options {
	return &Options{
		Concurrency:  pingsweep.DefaultConcurrency,
		Timeout:      pingsweep.DefaultTimeout,
		Interval:     DefaultInterval,
		IgnoreRanges: append(goflags.StringSlice{}, common.DefaultIgnoreRanges...),
	}
}

// ParseOptions parses the command line flags provided by a user
func ParseOptions() *Options {
	options := &Options{}
	flagSet := goflags.NewFlagSet()

	flagSet.SetDescription(`lanmap continuously discovers hosts on the active local network and prints JSON snapshots`)

	defaultConcurrency := pingsweep.DefaultConcurrency
	if val, err := strconv.Atoi(ConcurrencyEnv); err == nil && val > 0 {
		defaultConcurrency = val
	}
	defaultInterval := DefaultInterval
	if val, err := time.ParseDuration(IntervalEnv); err == nil && val >= 0 {
		defaultInterval = val
	}

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&options.ConfigFile, "config", "", "flag configuration file (yaml)"),
	)

	flagSet.CreateGroup("discovery", "Discovery",
		flagSet.IntVarP(&options.Concurrency, "concurrency", "c", defaultConcurrency, "number of concurrent probes (4-1000)"),
		flagSet.DurationVarP(&options.Timeout, "timeout", "t", pingsweep.DefaultTimeout, "per-probe reply timeout"),
		flagSet.DurationVarP(&options.Interval, "interval", "i", defaultInterval, "pause between sweep cycles"),
		flagSet.IntVar(&options.Cycles, "cycles", 0, "number of cycles to run (0 = forever)"),
		flagSet.StringSliceVarP(&options.IgnoreRanges, "ignore-range", "ir", common.DefaultIgnoreRanges, "ranges never selected as the active network", goflags.CommaSeparatedStringSliceOptions),
		flagSet.BoolVar(&options.ICMP, "icmp", false, "probe with ICMP sockets instead of the ping binary"),
		flagSet.BoolVar(&options.Privileged, "privileged", false, "use raw ICMP sockets (requires root)"),
	)

	flagSet.CreateGroup("enrichment", "Enrichment",
		flagSet.BoolVar(&options.ARPTable, "arp-table", false, "resolve hardware addresses from the local ARP table"),
		flagSet.StringVar(&options.OUIDatabase, "oui-db", OUIDatabaseEnv, "vendor database file (nmap-mac-prefixes, oui.txt or manuf)"),
		flagSet.BoolVar(&options.VendorAPI, "vendor-api", false, "resolve vendors through an online API"),
		flagSet.StringVar(&options.VendorAPIURL, "vendor-api-url", "", "vendor api url format, %s receives the address"),
	)

	flagSet.CreateGroup("debug", "Debug",
		flagSet.BoolVar(&options.Version, "version", false, "show version of the project"),
		flagSet.BoolVarP(&options.Verbose, "verbose", "v", false, "show verbose output"),
		flagSet.BoolVar(&options.Debug, "debug", false, "show debug output"),
		flagSet.BoolVar(&options.Silent, "silent", false, "show only snapshots"),
		flagSet.BoolVarP(&options.NoColor, "no-color", "nc", false, "disable output content coloring (ANSI escape codes)"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("%s\n", err)
	}

	if options.ConfigFile != "" {
		if err := flagSet.MergeConfigFile(options.ConfigFile); err != nil {
			gologger.Fatal().Msgf("Could not read config: %s\n", err)
		}
	}

	options.configureOutput()

	if options.Version {
		gologger.Info().Msgf("Current Version: %s\n", version.GetVersion())
		os.Exit(0)
	}

	return options
}

// configureOutput configures the output on the screen
func (options *Options) configureOutput() {
	// If the user desires verbose output, show verbose output
	if options.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	if options.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	}
	if options.NoColor {
		gologger.DefaultLogger.SetFormatter(formatter.NewCLI(true))
	}
	if options.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	}
}

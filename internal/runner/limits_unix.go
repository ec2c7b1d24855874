//go:build !windows

package runner

import (
	"github.com/projectdiscovery/gologger"
	"golang.org/x/sys/unix"
)

// fdsPerProbe approximates the descriptors held by one ping process
// (pipes for stdio plus its socket).
const fdsPerProbe = 4

// checkDescriptorLimit warns when the probe bound may exhaust file descriptors.
func checkDescriptorLimit(concurrency int) {
	var limit unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &limit); err != nil {
		gologger.Debug().Msgf("could not read open file limit: %v", err)
		return
	}
	if need := uint64(concurrency * fdsPerProbe); need > uint64(limit.Cur) {
		gologger.Warning().Msgf("concurrency %d may need ~%d file descriptors, limit is %d (ulimit -n)", concurrency, need, limit.Cur)
	}
}

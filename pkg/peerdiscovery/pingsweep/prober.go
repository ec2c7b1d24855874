package pingsweep

import (
	"context"
	"math"
	"os/exec"
	"strconv"
	"time"

	osutils "github.com/projectdiscovery/utils/os"
)

// Prober tests whether a single address answers an echo request.
// Implementations never return errors: anything but a reply is "not alive".
type Prober interface {
	Probe(ctx context.Context, ip string, timeout time.Duration) bool
}

// ProberFunc adapts a function to the Prober interface.
type ProberFunc func(ctx context.Context, ip string, timeout time.Duration) bool

// Probe calls f.
func (f ProberFunc) Probe(ctx context.Context, ip string, timeout time.Duration) bool {
	return f(ctx, ip, timeout)
}

// killGrace is added to the ping wait before the process is killed.
const killGrace = time.Second

// CommandProber sends one echo request by running the system ping binary.
type CommandProber struct {
	// Binary overrides the ping executable, "ping" when empty.
	Binary string
}

// Probe runs ping and reports whether it exited successfully.
func (p *CommandProber) Probe(ctx context.Context, ip string, timeout time.Duration) bool {
	binary := p.Binary
	if binary == "" {
		binary = "ping"
	}

	wait := pingWait(timeout)
	ctx, cancel := context.WithTimeout(ctx, wait+killGrace)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, PingArgs(ip, timeout)...)
	return cmd.Run() == nil
}

// pingWait rounds the timeout to whole seconds, never below one second,
// matching the granularity ping accepts on every platform.
func pingWait(timeout time.Duration) time.Duration {
	secs := math.Max(1, math.Round(timeout.Seconds()))
	return time.Duration(secs) * time.Second
}

// PingArgs returns the arguments for a single echo request to ip on the
// current platform.
func PingArgs(ip string, timeout time.Duration) []string {
	wait := pingWait(timeout)
	switch {
	case osutils.IsWindows():
		return []string{"-n", "1", "-w", strconv.FormatInt(wait.Milliseconds(), 10), ip}
	case osutils.IsOSX():
		// -W is in milliseconds on macOS
		return []string{"-c", "1", "-W", strconv.FormatInt(wait.Milliseconds(), 10), ip}
	default:
		return []string{"-c", "1", "-W", strconv.FormatInt(int64(wait/time.Second), 10), ip}
	}
}

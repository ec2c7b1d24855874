//go:build !windows

package arp

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	osutils "github.com/projectdiscovery/utils/os"
)

// readLocalARPTable reads the local ARP table (Linux and macOS)
func readLocalARPTable(ctx context.Context) (Table, error) {
	if osutils.IsLinux() {
		data, err := os.ReadFile("/proc/net/arp")
		if err != nil {
			return nil, err
		}
		return ParseLinuxARPTable(string(data)), nil
	} else if osutils.IsOSX() {
		output, err := exec.CommandContext(ctx, "arp", "-an").Output()
		if err != nil {
			return nil, fmt.Errorf("failed to execute arp -an: %w", err)
		}
		return ParseDarwinARPTable(string(output)), nil
	}
	return nil, fmt.Errorf("unsupported OS")
}

/*
 * MIT License
 *
 * Copyright (c) 2026 Nguyen Thanh Phuong
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package collector

import (
	"fmt"
	"sort"
	"time"

	"github.com/phuonguno98/unonet/pkg/metrics"
	"github.com/shirou/gopsutil/v3/net"
)

// Dependency injection points for testing
var (
	netIOCounters = net.IOCounters
	netInterfaces = net.Interfaces
	timeNow       = time.Now
)

// NetworkCollector reads per-interface network counters from the OS and turns
// them into snapshots. It is the dashboard's only view of the host.
type NetworkCollector struct {
	prevStats         map[string]metrics.NetworkIOStats
	hardwareAddrs     map[string]string
	snapshots         []metrics.InterfaceSnapshot
	includeInterfaces []string // Interfaces to monitor (empty = all)
	excludeInterfaces []string // Interfaces to exclude
}

// NewNetworkCollector creates a new network collector instance.
// includeInterfaces: list of interface names to monitor (empty = all available)
// excludeInterfaces: list of interface names to exclude
func NewNetworkCollector(includeInterfaces, excludeInterfaces []string) *NetworkCollector {
	return &NetworkCollector{
		prevStats:         make(map[string]metrics.NetworkIOStats),
		hardwareAddrs:     make(map[string]string),
		includeInterfaces: includeInterfaces,
		excludeInterfaces: excludeInterfaces,
	}
}

// RefreshAll reloads interface metadata (hardware addresses) and counters.
func (n *NetworkCollector) RefreshAll() error {
	interfaces, err := netInterfaces()
	if err != nil {
		return fmt.Errorf("failed to get network interfaces: %w", err)
	}

	addrs := make(map[string]string, len(interfaces))
	for _, iface := range interfaces {
		addrs[iface.Name] = iface.HardwareAddr
	}
	n.hardwareAddrs = addrs

	return n.refresh(false)
}

// RefreshNetworks reloads the network counters only.
// Sent and received values of the resulting snapshots are relative to the previous refresh;
// an interface without a previous reading reports zero.
func (n *NetworkCollector) RefreshNetworks() error {
	return n.refresh(true)
}

// resolveHardwareAddrs asks the OS again when a monitored interface is unknown,
// or reappears without an address. Names the OS does not list are remembered as
// empty until they vanish and come back. A failed lookup is retried on the next
// refresh and never fails it.
func (n *NetworkCollector) resolveHardwareAddrs(ioCounters []net.IOCountersStat) {
	stale := false
	for _, counter := range ioCounters {
		if !n.shouldMonitor(counter.Name) {
			continue
		}
		addr, known := n.hardwareAddrs[counter.Name]
		_, seen := n.prevStats[counter.Name]
		if !known || (addr == "" && !seen) {
			stale = true
			break
		}
	}
	if !stale {
		return
	}

	interfaces, err := netInterfaces()
	if err != nil {
		return
	}

	for _, iface := range interfaces {
		n.hardwareAddrs[iface.Name] = iface.HardwareAddr
	}
	for _, counter := range ioCounters {
		if _, ok := n.hardwareAddrs[counter.Name]; !ok {
			n.hardwareAddrs[counter.Name] = ""
		}
	}
}

func (n *NetworkCollector) refresh(lookupAddrs bool) error {
	ioCounters, err := netIOCounters(true)
	if err != nil {
		return fmt.Errorf("failed to get network I/O counters: %w", err)
	}

	if lookupAddrs {
		n.resolveHardwareAddrs(ioCounters)
	}

	now := timeNow()
	current := make(map[string]metrics.NetworkIOStats, len(ioCounters))
	snapshots := make([]metrics.InterfaceSnapshot, 0, len(ioCounters))

	for _, counter := range ioCounters {
		interfaceName := counter.Name

		// Apply filters
		if !n.shouldMonitor(interfaceName) {
			continue
		}

		currentStats := metrics.NetworkIOStats{
			BytesSent: counter.BytesSent,
			BytesRecv: counter.BytesRecv,
			Timestamp: now,
		}
		current[interfaceName] = currentStats

		// Missing previous stats yield a zero timestamp, hence zero deltas
		prevStats := n.prevStats[interfaceName]
		sent, recv := metrics.CalculateNetworkDelta(prevStats, currentStats)
		sentRate, recvRate := metrics.CalculateNetworkRate(prevStats, currentStats)

		snapshots = append(snapshots, metrics.InterfaceSnapshot{
			Name:         interfaceName,
			Sent:         sent,
			Recv:         recv,
			TotalSent:    counter.BytesSent,
			TotalRecv:    counter.BytesRecv,
			HardwareAddr: n.hardwareAddrs[interfaceName],
			SentRate:     sentRate,
			RecvRate:     recvRate,
		})
	}

	// Sort by interface name
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})

	n.prevStats = current
	n.snapshots = snapshots

	return nil
}

// Interfaces returns the snapshots produced by the latest refresh.
func (n *NetworkCollector) Interfaces() []metrics.InterfaceSnapshot {
	out := make([]metrics.InterfaceSnapshot, len(n.snapshots))
	copy(out, n.snapshots)
	return out
}

// shouldMonitor checks if an interface should be monitored based on include/exclude filters.
func (n *NetworkCollector) shouldMonitor(interfaceName string) bool {
	// Check exclude list first
	if len(n.excludeInterfaces) > 0 {
		for _, excluded := range n.excludeInterfaces {
			if excluded == interfaceName {
				return false
			}
		}
	}

	// If include list is empty, monitor all (except excluded)
	if len(n.includeInterfaces) == 0 {
		return true
	}

	// Check include list
	for _, included := range n.includeInterfaces {
		if included == interfaceName {
			return true
		}
	}

	return false
}

// Name returns the collector name for logging purposes.
func (n *NetworkCollector) Name() string {
	return "Network"
}

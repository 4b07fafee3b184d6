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

package metrics

import "fmt"

// CalculateCounterDelta returns the increase of a monotonic OS counter.
// A counter that went backwards (interface reset or wrap) restarts from zero,
// so the delta is the current value.
func CalculateCounterDelta(prev, current uint64) uint64 {
	if current < prev {
		return current
	}
	return current - prev
}

// CalculateNetworkDelta returns the bytes sent and received between two counter readings.
// A zero previous timestamp means there is no baseline yet and both deltas are 0.
func CalculateNetworkDelta(prev, current NetworkIOStats) (sent, recv uint64) {
	if prev.Timestamp.IsZero() {
		return 0, 0
	}
	return CalculateCounterDelta(prev.BytesSent, current.BytesSent),
		CalculateCounterDelta(prev.BytesRecv, current.BytesRecv)
}

// CalculateNetworkRate calculates send and receive rates in bytes per second.
// Formula: ΔBytes / Δt
func CalculateNetworkRate(prev, current NetworkIOStats) (sentRate, recvRate float64) {
	if prev.Timestamp.IsZero() {
		return 0.0, 0.0
	}

	deltaTime := current.Timestamp.Sub(prev.Timestamp).Seconds()
	if deltaTime <= 0 {
		return 0.0, 0.0
	}

	sent, recv := CalculateNetworkDelta(prev, current)
	return float64(sent) / deltaTime, float64(recv) / deltaTime
}

// FormatBytes converts bytes to human-readable format.
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

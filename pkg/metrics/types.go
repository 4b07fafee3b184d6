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

import "time"

// InterfaceSnapshot represents the counters of a single network interface at one refresh.
// Snapshots are rebuilt on every refresh and never mutated afterwards.
type InterfaceSnapshot struct {
	Name         string
	Sent         uint64  // Bytes sent since the previous refresh
	Recv         uint64  // Bytes received since the previous refresh
	TotalSent    uint64  // Cumulative bytes sent reported by the OS
	TotalRecv    uint64  // Cumulative bytes received reported by the OS
	HardwareAddr string  // MAC address (empty if not available)
	SentRate     float64 // Bytes per second sent over the refresh interval
	RecvRate     float64 // Bytes per second received over the refresh interval
}

// NetworkIOStats represents network I/O counters for delta calculations.
type NetworkIOStats struct {
	BytesSent uint64
	BytesRecv uint64
	Timestamp time.Time
}

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

import "sort"

// Series is a fixed-capacity ring of samples. When full, appending a sample
// evicts the oldest one.
type Series struct {
	buf    []uint64
	start  int // Index of the oldest sample
	count  int
	missed int // Consecutive observations the interface was absent
}

// NewSeries creates an empty series holding at most capacity samples.
func NewSeries(capacity int) *Series {
	if capacity < 1 {
		capacity = 1
	}
	return &Series{buf: make([]uint64, capacity)}
}

// Append adds a sample, evicting the oldest one if the series is full.
func (s *Series) Append(v uint64) {
	if s.count < len(s.buf) {
		s.buf[(s.start+s.count)%len(s.buf)] = v
		s.count++
		return
	}
	s.buf[s.start] = v
	s.start = (s.start + 1) % len(s.buf)
}

// Len returns the number of stored samples.
func (s *Series) Len() int {
	return s.count
}

// Samples returns a copy of the stored samples ordered oldest to newest.
func (s *Series) Samples() []uint64 {
	out := make([]uint64, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.buf[(s.start+i)%len(s.buf)]
	}
	return out
}

// HistoryStore maps interface names to their sample series.
// It is not safe for concurrent use; the dashboard loop owns it exclusively.
type HistoryStore struct {
	capacity   int
	pruneAfter int // 0 disables pruning
	series     map[string]*Series
}

// NewHistoryStore creates a store whose series keep capacity samples each.
// pruneAfter is the number of consecutive observations an interface may be
// absent before its entry is removed; 0 keeps entries forever.
func NewHistoryStore(capacity, pruneAfter int) *HistoryStore {
	if pruneAfter < 0 {
		pruneAfter = 0
	}
	return &HistoryStore{
		capacity:   capacity,
		pruneAfter: pruneAfter,
		series:     make(map[string]*Series),
	}
}

// Seed creates an empty entry for name if none exists.
func (h *HistoryStore) Seed(name string) {
	if _, ok := h.series[name]; !ok {
		h.series[name] = NewSeries(h.capacity)
	}
}

// Observe appends the Sent value of every snapshot to its interface's series,
// creating entries on first sight. Entries for interfaces missing from
// snapshots are left untouched unless pruning is enabled.
func (h *HistoryStore) Observe(snapshots []InterfaceSnapshot) {
	present := make(map[string]struct{}, len(snapshots))
	for _, snap := range snapshots {
		present[snap.Name] = struct{}{}

		s, ok := h.series[snap.Name]
		if !ok {
			s = NewSeries(h.capacity)
			h.series[snap.Name] = s
		}
		s.Append(snap.Sent)
		s.missed = 0
	}

	if h.pruneAfter == 0 {
		return
	}

	for name, s := range h.series {
		if _, ok := present[name]; ok {
			continue
		}
		s.missed++
		if s.missed >= h.pruneAfter {
			delete(h.series, name)
		}
	}
}

// Samples returns the samples recorded for name, oldest first.
// It returns nil if the interface has no entry.
func (h *HistoryStore) Samples(name string) []uint64 {
	s, ok := h.series[name]
	if !ok {
		return nil
	}
	return s.Samples()
}

// Len returns the number of tracked interfaces.
func (h *HistoryStore) Len() int {
	return len(h.series)
}

// Names returns the tracked interface names in sorted order.
func (h *HistoryStore) Names() []string {
	names := make([]string, 0, len(h.series))
	for name := range h.series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

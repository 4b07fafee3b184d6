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

package dashboard

import (
	"fmt"

	"github.com/phuonguno98/unonet/pkg/metrics"
)

// Source is the OS metrics handle the dashboard polls.
type Source interface {
	Name() string
	// RefreshAll reloads interface metadata and counters.
	RefreshAll() error
	// RefreshNetworks reloads the network counters only.
	RefreshNetworks() error
	// Interfaces returns the snapshots of the latest refresh.
	Interfaces() []metrics.InterfaceSnapshot
}

// State is everything the dashboard knows. The run loop owns it; Update is
// the only writer.
type State struct {
	Quit       bool
	Source     Source
	Interfaces []metrics.InterfaceSnapshot
	History    *metrics.HistoryStore
}

// NewState performs the initial full refresh and seeds an empty history
// entry for every discovered interface.
func NewState(src Source, history *metrics.HistoryStore) (*State, error) {
	if err := src.RefreshAll(); err != nil {
		return nil, fmt.Errorf("initial refresh failed: %w", err)
	}

	interfaces := src.Interfaces()
	for _, iface := range interfaces {
		history.Seed(iface.Name)
	}

	return &State{
		Source:     src,
		Interfaces: interfaces,
		History:    history,
	}, nil
}

// Update applies an action to the state.
// On ActionTick the counters are refreshed first, then the snapshot list is
// replaced, then each snapshot's sent value is appended to its history.
// A failed refresh leaves the state untouched.
func Update(s *State, a Action) error {
	switch a {
	case ActionQuit:
		s.Quit = true
	case ActionTick:
		if err := s.Source.RefreshNetworks(); err != nil {
			return fmt.Errorf("network refresh failed: %w", err)
		}
		s.Interfaces = s.Source.Interfaces()
		s.History.Observe(s.Interfaces)
	}
	return nil
}

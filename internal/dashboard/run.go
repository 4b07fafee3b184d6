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
	"context"
	"fmt"
	"image"
	"log/slog"

	ui "github.com/gizak/termui/v3"

	"github.com/phuonguno98/unonet/internal/collector"
	"github.com/phuonguno98/unonet/internal/config"
	"github.com/phuonguno98/unonet/internal/view"
	"github.com/phuonguno98/unonet/pkg/metrics"
)

// Screen is where frames are drawn.
type Screen interface {
	Area() image.Rectangle
	Render(frame *view.Frame)
}

// Dashboard runs the resolve, update, render loop.
type Dashboard struct {
	state    *State
	resolver *Resolver
	screen   Screen
	logger   *slog.Logger
}

// New creates a dashboard around an initialised state.
func New(state *State, resolver *Resolver, screen Screen, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		state:    state,
		resolver: resolver,
		screen:   screen,
		logger:   logger,
	}
}

// State returns the dashboard state. It must not be modified by the caller.
func (d *Dashboard) State() *State {
	return d.state
}

// Run loops until the user quits, the context is cancelled or an iteration fails.
// Quitting returns nil.
func (d *Dashboard) Run(ctx context.Context) error {
	d.logger.Info("Dashboard started", "interfaces", len(d.state.Interfaces))

	for {
		action, err := d.resolver.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				d.logger.Info("Dashboard stopping", "reason", err)
				return nil
			}
			return fmt.Errorf("input polling failed: %w", err)
		}

		if err := Update(d.state, action); err != nil {
			return err
		}

		if action == ActionTick {
			d.logger.Debug("Tick",
				"interfaces", len(d.state.Interfaces),
				"history", d.state.History.Len(),
			)
		}

		frame, err := view.Compose(d.state.Interfaces, d.state.History, d.screen.Area())
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
		d.screen.Render(frame)

		if d.state.Quit {
			d.logger.Info("Quit requested")
			return nil
		}
	}
}

// Terminal is a screen that also owns its lifecycle and input events.
type Terminal interface {
	Screen
	Init() error
	Close()
	Events() <-chan ui.Event
}

// Injection points for tests.
var (
	newTerminal = func() Terminal { return view.Terminal{} }
	newSource   = func(cfg *config.Config) Source {
		return collector.NewNetworkCollector(cfg.IncludeNetworks, cfg.ExcludeNetworks)
	}
)

// Run sets up the terminal, polls the host's network interfaces and drives
// the dashboard until it ends. The terminal is always restored before returning.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	term := newTerminal()
	if err := term.Init(); err != nil {
		return err
	}
	defer term.Close()

	src := newSource(cfg)
	logger.Debug("Collector created", "collector", src.Name())

	state, err := NewState(src, metrics.NewHistoryStore(cfg.HistorySize, cfg.PruneAfter))
	if err != nil {
		return err
	}
	logger.Debug("History seeded", "interfaces", state.History.Names())

	d := New(state, NewResolver(term.Events(), config.PollInterval), term, logger)
	return d.Run(ctx)
}

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
	"errors"
	"time"

	ui "github.com/gizak/termui/v3"
)

// Action is what the dashboard does on one loop iteration.
type Action int

const (
	ActionNoOp Action = iota // Input that carries no meaning
	ActionTick               // No input within the poll interval, refresh data
	ActionQuit               // User asked to leave
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionTick:
		return "tick"
	case ActionQuit:
		return "quit"
	default:
		return "noop"
	}
}

// ErrInputClosed is returned when the terminal event stream ends.
var ErrInputClosed = errors.New("terminal input closed")

// Quit keys. Raw mode turns Ctrl+C into a key event instead of SIGINT.
var quitKeys = map[string]bool{
	"q":     true,
	"<C-c>": true,
}

// Resolver turns terminal events into actions. The poll interval doubles
// as the refresh timer.
type Resolver struct {
	events  <-chan ui.Event
	timeout time.Duration
}

// NewResolver creates a resolver reading from events.
func NewResolver(events <-chan ui.Event, timeout time.Duration) *Resolver {
	return &Resolver{
		events:  events,
		timeout: timeout,
	}
}

// Next waits at most the poll interval for an event. It returns ActionTick
// when nothing arrived in time.
func (r *Resolver) Next(ctx context.Context) (Action, error) {
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	select {
	case e, ok := <-r.events:
		if !ok {
			return ActionNoOp, ErrInputClosed
		}
		return ResolveEvent(e), nil
	case <-timer.C:
		return ActionTick, nil
	case <-ctx.Done():
		return ActionNoOp, ctx.Err()
	}
}

// ResolveEvent maps a single terminal event to an action.
func ResolveEvent(e ui.Event) Action {
	if e.Type == ui.KeyboardEvent && quitKeys[e.ID] {
		return ActionQuit
	}
	return ActionNoOp
}

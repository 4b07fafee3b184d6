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
	"image"
	"io"
	"log/slog"
	"reflect"
	"slices"
	"testing"
	"time"

	ui "github.com/gizak/termui/v3"

	"github.com/phuonguno98/unonet/internal/config"
	"github.com/phuonguno98/unonet/internal/view"
	"github.com/phuonguno98/unonet/pkg/metrics"
)

// fakeSource replays scripted snapshot lists, one per refresh.
type fakeSource struct {
	script     [][]metrics.InterfaceSnapshot
	refreshes  int
	current    []metrics.InterfaceSnapshot
	refreshErr error
	calls      []string
}

func (f *fakeSource) Name() string {
	return "fake"
}

func (f *fakeSource) RefreshAll() error {
	f.calls = append(f.calls, "all")
	return f.advance()
}

func (f *fakeSource) RefreshNetworks() error {
	f.calls = append(f.calls, "networks")
	return f.advance()
}

func (f *fakeSource) advance() error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	if f.refreshes < len(f.script) {
		f.current = f.script[f.refreshes]
	}
	f.refreshes++
	return nil
}

func (f *fakeSource) Interfaces() []metrics.InterfaceSnapshot {
	f.calls = append(f.calls, "interfaces")
	return f.current
}

// fakeScreen records frames and can inject events after a number of renders.
type fakeScreen struct {
	frames    []*view.Frame
	events    chan ui.Event
	quitAfter int
}

func (s *fakeScreen) Area() image.Rectangle {
	return image.Rect(0, 0, 80, 24)
}

func (s *fakeScreen) Render(frame *view.Frame) {
	s.frames = append(s.frames, frame)
	if s.quitAfter > 0 && len(s.frames) == s.quitAfter {
		s.events <- ui.Event{Type: ui.KeyboardEvent, ID: "q"}
	}
}

// fakeTerminal is a fakeScreen with a lifecycle.
type fakeTerminal struct {
	fakeScreen
	initErr error
	closed  int
}

func (t *fakeTerminal) Init() error {
	return t.initErr
}

func (t *fakeTerminal) Close() {
	t.closed++
}

func (t *fakeTerminal) Events() <-chan ui.Event {
	return t.events
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func key(id string) ui.Event {
	return ui.Event{Type: ui.KeyboardEvent, ID: id}
}

func TestResolveEvent(t *testing.T) {
	tests := []struct {
		name  string
		event ui.Event
		want  Action
	}{
		{"Quit key", key("q"), ActionQuit},
		{"Ctrl+C", key("<C-c>"), ActionQuit},
		{"Other key", key("x"), ActionNoOp},
		{"Upper case Q", key("Q"), ActionNoOp},
		{"Resize", ui.Event{Type: ui.ResizeEvent, ID: "<Resize>", Payload: ui.Resize{Width: 10, Height: 10}}, ActionNoOp},
		{"Mouse q", ui.Event{Type: ui.MouseEvent, ID: "q"}, ActionNoOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveEvent(tt.event); got != tt.want {
				t.Errorf("ResolveEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolver_Next(t *testing.T) {
	ctx := context.Background()

	events := make(chan ui.Event, 1)
	r := NewResolver(events, 20*time.Millisecond)

	events <- key("q")
	if a, err := r.Next(ctx); err != nil || a != ActionQuit {
		t.Errorf("Next() with q = %v, %v, want quit", a, err)
	}

	events <- key("a")
	if a, err := r.Next(ctx); err != nil || a != ActionNoOp {
		t.Errorf("Next() with a = %v, %v, want noop", a, err)
	}

	start := time.Now()
	if a, err := r.Next(ctx); err != nil || a != ActionTick {
		t.Errorf("Next() without input = %v, %v, want tick", a, err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("tick after %v, want at least the poll interval", elapsed)
	}

	close(events)
	if _, err := r.Next(ctx); !errors.Is(err, ErrInputClosed) {
		t.Errorf("Next() on closed input error = %v, want ErrInputClosed", err)
	}
}

func TestResolver_NextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewResolver(make(chan ui.Event), time.Hour)
	if _, err := r.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestAction_String(t *testing.T) {
	if ActionTick.String() != "tick" || ActionQuit.String() != "quit" || ActionNoOp.String() != "noop" {
		t.Error("unexpected action names")
	}
}

func TestNewState_SeedsHistory(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{
		{{Name: "eth0", Sent: 5}, {Name: "lo"}},
	}}

	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if !reflect.DeepEqual(src.calls, []string{"all", "interfaces"}) {
		t.Errorf("calls = %v, want full refresh then enumerate", src.calls)
	}
	if s.History.Len() != 2 {
		t.Errorf("history entries = %d, want 2", s.History.Len())
	}
	if got := s.History.Samples("eth0"); len(got) != 0 {
		t.Errorf("seeded history = %v, want empty", got)
	}
	if s.Quit {
		t.Error("new state should not be quitting")
	}
}

func TestNewState_RefreshError(t *testing.T) {
	src := &fakeSource{refreshErr: errors.New("boom")}
	if _, err := NewState(src, metrics.NewHistoryStore(16, 0)); err == nil {
		t.Error("NewState() expected error")
	}
}

func TestUpdate_TickAppendsSent(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{
		{{Name: "eth0", Sent: 100}},
		{{Name: "eth0", Sent: 100}},
		{{Name: "eth0", Sent: 150}},
	}}
	s := &State{Source: src, History: metrics.NewHistoryStore(16, 0)}

	// Skip the first script entry, which plays the role of the initial refresh
	src.refreshes = 1

	if err := Update(s, ActionTick); err != nil {
		t.Fatal(err)
	}
	if got := s.History.Samples("eth0"); !reflect.DeepEqual(got, []uint64{100}) {
		t.Fatalf("after first tick = %v, want [100]", got)
	}

	if err := Update(s, ActionTick); err != nil {
		t.Fatal(err)
	}
	if got := s.History.Samples("eth0"); !reflect.DeepEqual(got, []uint64{100, 150}) {
		t.Errorf("after second tick = %v, want [100 150]", got)
	}

	want := []string{"networks", "interfaces", "networks", "interfaces"}
	if !reflect.DeepEqual(src.calls, want) {
		t.Errorf("calls = %v, want refresh before enumerate", src.calls)
	}
}

func TestUpdate_VanishedInterfaceKeepsHistory(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{
		{{Name: "eth0", Sent: 1}, {Name: "tun0", Sent: 9}},
		{{Name: "eth0", Sent: 2}, {Name: "tun0", Sent: 8}},
		{{Name: "eth0", Sent: 3}},
		{{Name: "eth0", Sent: 4}},
	}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if err := Update(s, ActionTick); err != nil {
			t.Fatalf("tick %d error = %v", i, err)
		}
	}

	if got := s.History.Samples("tun0"); !reflect.DeepEqual(got, []uint64{8}) {
		t.Errorf("tun0 history = %v, want frozen [8]", got)
	}
	if got := s.History.Samples("eth0"); !reflect.DeepEqual(got, []uint64{2, 3, 4}) {
		t.Errorf("eth0 history = %v, want [2 3 4]", got)
	}
	if len(s.Interfaces) != 1 {
		t.Errorf("interfaces = %d, want snapshot fully replaced", len(s.Interfaces))
	}

	// Invariant: every current interface has a history entry
	for _, iface := range s.Interfaces {
		if !slices.Contains(s.History.Names(), iface.Name) {
			t.Errorf("%s has no history entry", iface.Name)
		}
	}
}

func TestUpdate_QuitIdempotent(t *testing.T) {
	src := &fakeSource{}
	s := &State{Source: src, History: metrics.NewHistoryStore(16, 0)}

	for i := 0; i < 2; i++ {
		if err := Update(s, ActionQuit); err != nil {
			t.Fatal(err)
		}
		if !s.Quit {
			t.Fatal("Quit flag not set")
		}
	}
	if len(src.calls) != 0 || s.History.Len() != 0 {
		t.Errorf("quit mutated more than the flag: calls=%v history=%d", src.calls, s.History.Len())
	}
}

func TestUpdate_NoOp(t *testing.T) {
	src := &fakeSource{}
	s := &State{Source: src, History: metrics.NewHistoryStore(16, 0)}

	if err := Update(s, ActionNoOp); err != nil {
		t.Fatal(err)
	}
	if s.Quit || len(src.calls) != 0 || s.History.Len() != 0 {
		t.Error("noop changed the state")
	}
}

func TestUpdate_RefreshError(t *testing.T) {
	src := &fakeSource{refreshErr: errors.New("counters unavailable")}
	before := []metrics.InterfaceSnapshot{{Name: "eth0"}}
	s := &State{Source: src, Interfaces: before, History: metrics.NewHistoryStore(16, 0)}

	if err := Update(s, ActionTick); err == nil {
		t.Fatal("Update() expected error")
	}
	if !reflect.DeepEqual(s.Interfaces, before) || s.History.Len() != 0 {
		t.Error("failed tick modified the state")
	}
}

func TestDashboard_RunUntilQuit(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{
		{{Name: "eth0"}, {Name: "wlan0"}},
	}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}

	events := make(chan ui.Event, 1)
	screen := &fakeScreen{events: events, quitAfter: 3}
	d := New(s, NewResolver(events, time.Millisecond), screen, discardLogger())

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Every frame but the last one comes from a tick
	ticks := len(screen.frames) - 1
	if ticks < 3 {
		t.Errorf("ticks = %d, want at least 3", ticks)
	}
	if !d.State().Quit {
		t.Error("state not marked quit")
	}
	if got := len(s.History.Samples("eth0")); got != ticks {
		t.Errorf("eth0 samples = %d, want %d", got, ticks)
	}
	if last := screen.frames[len(screen.frames)-1]; last.RowPercent != 50 {
		t.Errorf("RowPercent = %d, want 50", last.RowPercent)
	}
}

func TestDashboard_RunNoInterfaces(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{nil}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}

	d := New(s, NewResolver(make(chan ui.Event), time.Millisecond), &fakeScreen{}, discardLogger())

	err = d.Run(context.Background())
	if !errors.Is(err, view.ErrNoInterfaces) {
		t.Errorf("Run() error = %v, want ErrNoInterfaces", err)
	}
}

func TestDashboard_RunInputClosed(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{{{Name: "eth0"}}}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}

	events := make(chan ui.Event)
	close(events)
	d := New(s, NewResolver(events, time.Hour), &fakeScreen{}, discardLogger())

	if err := d.Run(context.Background()); !errors.Is(err, ErrInputClosed) {
		t.Errorf("Run() error = %v, want ErrInputClosed", err)
	}
}

func TestDashboard_RunRefreshFailure(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{{{Name: "eth0"}}}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}
	src.refreshErr = errors.New("counters unavailable")

	screen := &fakeScreen{}
	d := New(s, NewResolver(make(chan ui.Event), time.Millisecond), screen, discardLogger())

	if err := d.Run(context.Background()); err == nil {
		t.Error("Run() expected error")
	}
	if len(screen.frames) != 0 {
		t.Errorf("frames = %d, want 0", len(screen.frames))
	}
}

func TestDashboard_RunCancelled(t *testing.T) {
	src := &fakeSource{script: [][]metrics.InterfaceSnapshot{{{Name: "eth0"}}}}
	s, err := NewState(src, metrics.NewHistoryStore(16, 0))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(s, NewResolver(make(chan ui.Event), time.Hour), &fakeScreen{}, discardLogger())
	if err := d.Run(ctx); err != nil {
		t.Errorf("Run() on cancelled context = %v, want nil", err)
	}
}

func TestRun_RestoresTerminal(t *testing.T) {
	eth0 := []metrics.InterfaceSnapshot{{Name: "eth0", Sent: 1}}
	errInit := errors.New("no tty")
	errRefresh := errors.New("proc unreadable")

	closedEvents := func() chan ui.Event {
		ch := make(chan ui.Event)
		close(ch)
		return ch
	}
	pending := func(evs ...ui.Event) chan ui.Event {
		ch := make(chan ui.Event, len(evs))
		for _, ev := range evs {
			ch <- ev
		}
		return ch
	}

	tests := []struct {
		name       string
		initErr    error
		src        *fakeSource
		events     chan ui.Event
		wantErr    error
		wantClosed int
	}{
		{
			name:       "init fails",
			initErr:    errInit,
			src:        &fakeSource{script: [][]metrics.InterfaceSnapshot{eth0}},
			events:     pending(),
			wantErr:    errInit,
			wantClosed: 0,
		},
		{
			name:       "initial refresh fails",
			src:        &fakeSource{refreshErr: errRefresh},
			events:     pending(),
			wantErr:    errRefresh,
			wantClosed: 1,
		},
		{
			name:       "no interfaces",
			src:        &fakeSource{script: [][]metrics.InterfaceSnapshot{nil}},
			events:     pending(key("x")),
			wantErr:    view.ErrNoInterfaces,
			wantClosed: 1,
		},
		{
			name:       "input closed",
			src:        &fakeSource{script: [][]metrics.InterfaceSnapshot{eth0}},
			events:     closedEvents(),
			wantErr:    ErrInputClosed,
			wantClosed: 1,
		},
		{
			name:       "quit",
			src:        &fakeSource{script: [][]metrics.InterfaceSnapshot{eth0}},
			events:     pending(key("x"), key("q")),
			wantClosed: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := &fakeTerminal{fakeScreen: fakeScreen{events: tt.events}, initErr: tt.initErr}

			origTerminal, origSource := newTerminal, newSource
			defer func() { newTerminal, newSource = origTerminal, origSource }()
			newTerminal = func() Terminal { return term }
			newSource = func(*config.Config) Source { return tt.src }

			err := Run(context.Background(), config.Default(), discardLogger())
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Run() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
			}
			if term.closed != tt.wantClosed {
				t.Errorf("Close() called %d times, want %d", term.closed, tt.wantClosed)
			}
		})
	}
}

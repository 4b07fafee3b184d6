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

package view

import (
	"fmt"
	"image"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"

	"github.com/phuonguno98/unonet/pkg/metrics"
)

// Smallest regions that fit a bordered widget. A sparkline also needs one
// inner row for its title, or the title is drawn over the bottom border.
const (
	minSummaryHeight   = 2
	minSparklineHeight = 3
)

// Widgets converts a frame into termui drawables: a bordered paragraph and a
// bordered sparkline per row. Regions too small to hold a border are skipped.
func Widgets(frame *Frame) []ui.Drawable {
	items := make([]ui.Drawable, 0, 2*len(frame.Rows))

	for _, row := range frame.Rows {
		if row.SummaryRect.Dy() >= minSummaryHeight {
			items = append(items, newSummary(row))
		}
		if row.SparklineRect.Dy() >= minSparklineHeight {
			items = append(items, newSparkline(row))
		}
	}

	return items
}

func newSummary(row Row) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Text = strings.Join(row.Summary, "\n")
	p.WrapText = false
	p.BorderStyle.Fg = ui.ColorCyan
	p.SetRect(row.SummaryRect.Min.X, row.SummaryRect.Min.Y, row.SummaryRect.Max.X, row.SummaryRect.Max.Y)
	return p
}

func newSparkline(row Row) *widgets.SparklineGroup {
	sl := widgets.NewSparkline()
	sl.LineColor = ui.ColorYellow
	sl.TitleStyle.Fg = ui.ColorYellow
	sl.Title = fmt.Sprintf("▲ %s/s ▼ %s/s",
		metrics.FormatBytes(uint64(row.SentRate)), metrics.FormatBytes(uint64(row.RecvRate)))

	sg := widgets.NewSparklineGroup(sl)
	sg.Title = fmt.Sprintf(" %s ", row.Name)
	sg.BorderStyle.Fg = ui.ColorYellow
	sg.SetRect(row.SparklineRect.Min.X, row.SparklineRect.Min.Y, row.SparklineRect.Max.X, row.SparklineRect.Max.Y)

	// The widget draws from the first sample onwards, keep the newest that fit
	sl.Data, sl.MaxVal = visibleSamples(row.Samples, sg.Inner.Dx())

	return sg
}

// visibleSamples returns the newest width samples as float64 along with the
// scale maximum. The maximum is at least 1 so an idle interface draws a flat line.
func visibleSamples(samples []uint64, width int) ([]float64, float64) {
	if width < 0 {
		width = 0
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}

	data := make([]float64, len(samples))
	maxVal := 1.0
	for i, v := range samples {
		data[i] = float64(v)
		if data[i] > maxVal {
			maxVal = data[i]
		}
	}

	return data, maxVal
}

// Terminal draws frames on the real terminal through termui.
type Terminal struct{}

// Init puts the terminal into raw mode on the alternate screen.
func (Terminal) Init() error {
	if err := ui.Init(); err != nil {
		return fmt.Errorf("failed to init termui: %w", err)
	}
	return nil
}

// Close restores the terminal.
func (Terminal) Close() {
	ui.Close()
}

// Events starts the termui event pump. Call it once.
func (Terminal) Events() <-chan ui.Event {
	return ui.PollEvents()
}

// Area returns the current terminal size as a rectangle.
func (Terminal) Area() image.Rectangle {
	w, h := ui.TerminalDimensions()
	return image.Rect(0, 0, w, h)
}

// Render clears the screen and draws the frame.
func (Terminal) Render(frame *Frame) {
	ui.Clear()
	ui.Render(Widgets(frame)...)
}

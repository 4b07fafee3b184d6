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

// Package view turns dashboard state into a render tree of per-interface rows
// and draws that tree with termui widgets.
package view

import (
	"errors"
	"fmt"
	"image"

	"github.com/phuonguno98/unonet/pkg/metrics"
)

// ErrNoInterfaces is returned when there is nothing to lay out.
var ErrNoInterfaces = errors.New("no network interfaces to display")

// Row split between the summary text and the sparkline, in percent.
const (
	SummaryPercent   = 30
	SparklinePercent = 70
)

// Row is the render tree node for one interface.
type Row struct {
	Name          string
	Summary       []string // Interface, per-tick, cumulative and MAC lines
	Samples       []uint64 // Sent history, oldest first
	SentRate      float64  // Bytes per second, shown in the sparkline title
	RecvRate      float64
	SummaryRect   image.Rectangle
	SparklineRect image.Rectangle
}

// Frame is the complete render tree for one pass.
type Frame struct {
	Area       image.Rectangle // Drawable area after the outer margin
	RowPercent int
	Rows       []Row
}

// RowPercent returns the share of vertical space each of n rows receives.
// Integer division truncates, so rows may not cover the whole area.
func RowPercent(n int) (int, error) {
	if n <= 0 {
		return 0, ErrNoInterfaces
	}
	return 100 / n, nil
}

// Compose builds the frame for the given snapshots. Each row's sparkline is
// looked up in history by the snapshot's name, so row order follows snapshots.
// Compose does not modify its inputs.
func Compose(snapshots []metrics.InterfaceSnapshot, history *metrics.HistoryStore, area image.Rectangle) (*Frame, error) {
	pct, err := RowPercent(len(snapshots))
	if err != nil {
		return nil, err
	}

	inner := inset(area, 1)
	rowHeight := inner.Dy() * pct / 100

	frame := &Frame{
		Area:       inner,
		RowPercent: pct,
		Rows:       make([]Row, 0, len(snapshots)),
	}

	for i, snap := range snapshots {
		top := inner.Min.Y + i*rowHeight
		rowRect := image.Rect(inner.Min.X, top, inner.Max.X, top+rowHeight)
		summaryRect, sparkRect := splitRow(rowRect)

		var samples []uint64
		if history != nil {
			samples = history.Samples(snap.Name)
		}

		frame.Rows = append(frame.Rows, Row{
			Name:          snap.Name,
			Summary:       SummaryLines(snap),
			Samples:       samples,
			SentRate:      snap.SentRate,
			RecvRate:      snap.RecvRate,
			SummaryRect:   summaryRect,
			SparklineRect: sparkRect,
		})
	}

	return frame, nil
}

// SummaryLines returns the four text lines describing an interface.
func SummaryLines(snap metrics.InterfaceSnapshot) []string {
	mac := snap.HardwareAddr
	if mac == "" {
		mac = "N/A"
	}
	return []string{
		fmt.Sprintf("Interface: %s", snap.Name),
		fmt.Sprintf("Sent/Received: %s / %s", metrics.FormatBytes(snap.Sent), metrics.FormatBytes(snap.Recv)),
		fmt.Sprintf("Total Sent/Received: %s / %s", metrics.FormatBytes(snap.TotalSent), metrics.FormatBytes(snap.TotalRecv)),
		fmt.Sprintf("MAC Address: %s", mac),
	}
}

// splitRow divides a row vertically into summary and sparkline regions.
func splitRow(r image.Rectangle) (summary, spark image.Rectangle) {
	summaryHeight := r.Dy() * SummaryPercent / 100
	sparkHeight := r.Dy() * SparklinePercent / 100

	summary = image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+summaryHeight)
	spark = image.Rect(r.Min.X, summary.Max.Y, r.Max.X, summary.Max.Y+sparkHeight)
	return summary, spark
}

func inset(r image.Rectangle, margin int) image.Rectangle {
	out := image.Rectangle{
		Min: image.Pt(r.Min.X+margin, r.Min.Y+margin),
		Max: image.Pt(r.Max.X-margin, r.Max.Y-margin),
	}
	// image.Rect would swap inverted coordinates; collapse them instead
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}

// Package chartpng renders the yearly histogram as a static PNG image for
// embedding outside the browser dashboard.
package chartpng

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image size defaults.
const (
	DefaultWidth  = 1024
	DefaultHeight = 480
)

// ErrNoBuckets is returned when there is no year to draw.
var ErrNoBuckets = errors.New("histogram has no year buckets")

var barStyle = chart.Style{
	FillColor:   drawing.ColorFromHex("636efa"),
	StrokeColor: drawing.ColorFromHex("636efa"),
	StrokeWidth: 0,
}

// RenderHistogram writes counts as a PNG bar chart titled like the dashboard
// histogram. The y-axis always starts at zero so an all-zero selection still
// renders.
func RenderHistogram(w io.Writer, counts []domain.YearCount, width, height int) error {
	if len(counts) == 0 {
		return ErrNoBuckets
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	maxCount := 1
	bars := make([]chart.Value, len(counts))
	for i, c := range counts {
		bars[i] = chart.Value{
			Label: strconv.Itoa(c.Year),
			Value: float64(c.Count),
			Style: barStyle,
		}
		maxCount = max(maxCount, c.Count)
	}

	// go-chart rejects a range whose minimum is exactly zero, so the axis
	// starts just below it and carries explicit integer ticks.
	ticks, top := countTicks(maxCount)

	// Bars fill 95% of each slot, matching the 5% bar gap of the browser chart.
	slot := max((width-120)/len(counts), 4)
	barWidth := max(slot*95/100, 1)

	graph := chart.BarChart{
		Title:      domain.HistogramTitle,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: max(slot-barWidth, 1),
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite},
		YAxis: chart.YAxis{
			Name:  domain.HistogramYAxis,
			Range: &chart.ContinuousRange{Min: -float64(top) / 1000, Max: float64(top)},
			Ticks: ticks,
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render histogram png: %w", err)
	}
	return nil
}

// countTicks returns up to five evenly spaced integer ticks from zero and the
// top of the axis, which is at least maxCount.
func countTicks(maxCount int) ([]chart.Tick, int) {
	step := max((maxCount+3)/4, 1)
	top := step * ((maxCount + step - 1) / step)

	var ticks []chart.Tick
	for v := 0; v <= top; v += step {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: strconv.Itoa(v)})
	}
	return ticks, top
}

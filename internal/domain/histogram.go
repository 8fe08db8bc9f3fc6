package domain

const (
	HistogramTitle  = "Number of crimes per year"
	HistogramXAxis  = "Year"
	HistogramYAxis  = "count"
	HistogramBarGap = 0.05
)

// YearCount is one bucket of the yearly histogram.
type YearCount struct {
	Year  int
	Count int
}

// CountByYear buckets subset into one entry per year in years, keeping the
// order of years. Years with no incidents get a zero count; incidents from a
// year outside years are dropped.
func CountByYear(years []int, subset []Incident) []YearCount {
	idx := make(map[int]int, len(years))
	buckets := make([]YearCount, len(years))
	for i, y := range years {
		idx[y] = i
		buckets[i] = YearCount{Year: y}
	}
	for _, inc := range subset {
		if i, ok := idx[inc.Year]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// BuildYearHistogram builds the "crimes per year" bar chart. years should be
// the distinct years of the full table so the x-axis does not shift when the
// subset changes.
func BuildYearHistogram(years []int, subset []Incident) Figure {
	buckets := CountByYear(years, subset)

	x := make([]int, len(buckets))
	y := make([]int, len(buckets))
	for i, b := range buckets {
		x[i] = b.Year
		y[i] = b.Count
	}

	return Figure{
		Data: []Trace{{
			Type:          "bar",
			X:             x,
			Y:             y,
			Marker:        &Marker{Color: CategoryColor(0)},
			HoverTemplate: "YEAR=%{x}<br>count=%{y}<extra></extra>",
		}},
		Layout: Layout{
			Title: &Title{Text: HistogramTitle},
			XAxis: &Axis{
				Title:    &Title{Text: HistogramXAxis},
				TickMode: "linear",
				DTick:    1,
			},
			YAxis:       &Axis{Title: &Title{Text: HistogramYAxis}},
			BarGap:      HistogramBarGap,
			PlotBGColor: "white",
		},
	}
}

package domain

// Figure is a renderable chart description. Field names follow the plotly.js
// figure schema so the browser can hand a decoded Figure straight to
// Plotly.react.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one series of a figure. Only the fields relevant to the trace
// Type are populated.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	X             []int     `json:"x,omitempty"`
	Y             []int     `json:"y,omitempty"`
	Lat           []float64 `json:"lat,omitempty"`
	Lon           []float64 `json:"lon,omitempty"`
	Text          []string  `json:"text,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	ShowLegend    *bool     `json:"showlegend,omitempty"`
}

// Marker styles the points or bars of a trace.
type Marker struct {
	Color string  `json:"color,omitempty"`
	Size  float64 `json:"size,omitempty"`
}

// Layout holds the figure-wide options.
type Layout struct {
	Title       *Title  `json:"title,omitempty"`
	XAxis       *Axis   `json:"xaxis,omitempty"`
	YAxis       *Axis   `json:"yaxis,omitempty"`
	BarGap      float64 `json:"bargap,omitempty"`
	PlotBGColor string  `json:"plot_bgcolor,omitempty"`
	Mapbox      *Mapbox `json:"mapbox,omitempty"`
	Legend      *Legend `json:"legend,omitempty"`
	Margin      *Margin `json:"margin,omitempty"`
}

// Title is a plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Axis configures a cartesian axis.
type Axis struct {
	Title    *Title  `json:"title,omitempty"`
	TickMode string  `json:"tickmode,omitempty"`
	DTick    float64 `json:"dtick,omitempty"`
}

// Mapbox configures the tile map used by scattermapbox traces.
type Mapbox struct {
	Style       string  `json:"style"`
	Center      LatLon  `json:"center"`
	Zoom        float64 `json:"zoom"`
	AccessToken string  `json:"accesstoken,omitempty"`
}

// LatLon is a WGS-84 coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Legend configures the trace legend.
type Legend struct {
	Title *Title `json:"title,omitempty"`
}

// Margin sets the plot margins in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// palette is plotly's default qualitative colour sequence.
var palette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

// CategoryColor returns the palette colour for the category at index i of the
// table's category list. Colours repeat after the palette is exhausted.
func CategoryColor(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

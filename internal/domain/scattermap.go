package domain

// DefaultMapStyle is the tile style that needs no access token.
const DefaultMapStyle = "open-street-map"

// MapZoom is the fixed initial zoom of the incident map.
const MapZoom = 10

// MapCenter is the fixed initial center of the incident map (Vancouver).
var MapCenter = LatLon{Lat: 49.246292, Lon: -123.116226}

// MapOptions selects the base layer of the incident map. AccessToken is only
// needed for mapbox-hosted styles.
type MapOptions struct {
	Style       string
	AccessToken string
}

// BuildScatterMap builds the incident map: one trace per category present in
// subset (first-appearance order), one point per located incident. Colours
// follow the category's position in categories, the full table's list, so a
// category keeps its colour across selections. The view is always MapCenter
// at MapZoom; it is never fitted to the data.
func BuildScatterMap(categories []string, subset []Incident, opts MapOptions) Figure {
	colorIdx := make(map[string]int, len(categories))
	for i, c := range categories {
		colorIdx[c] = i
	}

	byType := make(map[string]int)
	var traces []Trace
	for _, inc := range subset {
		if !inc.Located {
			continue
		}
		ti, ok := byType[inc.Type]
		if !ok {
			ci, known := colorIdx[inc.Type]
			if !known {
				ci = len(categories) + len(traces)
			}
			ti = len(traces)
			byType[inc.Type] = ti
			traces = append(traces, Trace{
				Type:          "scattermapbox",
				Name:          inc.Type,
				Mode:          "markers",
				Marker:        &Marker{Color: CategoryColor(ci)},
				HoverTemplate: "TYPE=" + inc.Type + "<br>date=%{text}<br>Latitude=%{lat}<br>Longitude=%{lon}<extra></extra>",
			})
		}
		tr := &traces[ti]
		tr.Lat = append(tr.Lat, inc.Latitude)
		tr.Lon = append(tr.Lon, inc.Longitude)
		tr.Text = append(tr.Text, inc.DateLabel())
	}

	if len(traces) == 0 {
		// Without a scattermapbox trace plotly drops the map entirely.
		hidden := false
		traces = []Trace{{Type: "scattermapbox", Mode: "markers", ShowLegend: &hidden}}
	}

	style := opts.Style
	if style == "" {
		style = DefaultMapStyle
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Mapbox: &Mapbox{
				Style:       style,
				Center:      MapCenter,
				Zoom:        MapZoom,
				AccessToken: opts.AccessToken,
			},
			Legend: &Legend{Title: &Title{Text: "TYPE"}},
			Margin: &Margin{L: 0, R: 0, T: 30, B: 0},
		},
	}
}

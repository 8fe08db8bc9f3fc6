package dashboard

import (
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/twpayne/go-geom"
)

// Summary describes the loaded table for the /api/summary endpoint.
type Summary struct {
	Incidents  int             `json:"incidents"`
	Located    int             `json:"located"`
	Categories []CategoryCount `json:"categories"`
	FirstYear  int             `json:"first_year,omitempty"`
	LastYear   int             `json:"last_year,omitempty"`
	Extent     *Extent         `json:"extent,omitempty"`
}

// CategoryCount is the number of incidents of one crime type.
type CategoryCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Extent is the bounding box of all located incidents. It is informational
// only; the map view stays fixed regardless of it.
type Extent struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

func summarize(table *domain.Table) Summary {
	categories := table.Categories()
	counts := make(map[string]int, len(categories))
	bounds := geom.NewBounds(geom.XY)
	located := 0

	for _, inc := range table.Incidents() {
		counts[inc.Type]++
		if !inc.Located {
			continue
		}
		located++
		bounds.Extend(geom.NewPointFlat(geom.XY, []float64{inc.Longitude, inc.Latitude}))
	}

	sum := Summary{
		Incidents:  table.Len(),
		Located:    located,
		Categories: make([]CategoryCount, 0, len(categories)),
	}
	for _, c := range categories {
		sum.Categories = append(sum.Categories, CategoryCount{Type: c, Count: counts[c]})
	}
	if years := table.Years(); len(years) > 0 {
		sum.FirstYear = years[0]
		sum.LastYear = years[len(years)-1]
	}
	if !bounds.IsEmpty() {
		sum.Extent = &Extent{
			MinLon: bounds.Min(0),
			MinLat: bounds.Min(1),
			MaxLon: bounds.Max(0),
			MaxLat: bounds.Max(1),
		}
	}
	return sum
}

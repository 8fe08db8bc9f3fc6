package domain

import (
	"slices"
	"time"
)

// Incident is one recorded crime from the dataset.
type Incident struct {
	Type  string
	Year  int
	Month int
	Day   int
	Date  time.Time

	// Located is false when the dataset withholds the coordinates.
	Located   bool
	Latitude  float64
	Longitude float64

	// Passthrough columns, unused by the charts.
	Hour          int
	Minute        int
	HundredBlock  string
	Neighbourhood string
	X             float64
	Y             float64
}

// DateLabel formats the derived date the way it is shown on the map.
func (i Incident) DateLabel() string {
	return i.Date.Format(time.DateOnly)
}

// Table is the immutable, ordered set of incidents loaded at startup.
// It is safe for concurrent readers.
type Table struct {
	incidents  []Incident
	categories []string
	years      []int
}

// NewTable takes ownership of incidents and precomputes the distinct
// categories (first-appearance order) and years (ascending).
func NewTable(incidents []Incident) *Table {
	seenCat := make(map[string]struct{})
	seenYear := make(map[int]struct{})
	var categories []string
	var years []int

	for _, inc := range incidents {
		if _, ok := seenCat[inc.Type]; !ok {
			seenCat[inc.Type] = struct{}{}
			categories = append(categories, inc.Type)
		}
		if _, ok := seenYear[inc.Year]; !ok {
			seenYear[inc.Year] = struct{}{}
			years = append(years, inc.Year)
		}
	}
	slices.Sort(years)

	return &Table{incidents: incidents, categories: categories, years: years}
}

// Len returns the number of incidents.
func (t *Table) Len() int { return len(t.incidents) }

// Incidents returns a copy of all incidents in table order.
func (t *Table) Incidents() []Incident { return slices.Clone(t.incidents) }

// Categories returns the distinct category labels in first-appearance order.
func (t *Table) Categories() []string { return slices.Clone(t.categories) }

// Years returns the distinct years present in the table, ascending.
func (t *Table) Years() []int { return slices.Clone(t.years) }

// all returns the backing slice for read-only use inside the package.
func (t *Table) all() []Incident { return t.incidents }

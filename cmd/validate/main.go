// Command validate loads a crime incident CSV with the dashboard's loader and
// checks the figures built from it: histogram totals, per-category filter
// partitions, map point counts, and the fixed map view. It exits non-zero on
// a load failure or any failed phase.
//
// Usage:
//
//	go run ./cmd/validate -data crime.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	dataPath := flag.String("data", "crime.csv", "path to the incident CSV")
	flag.Parse()

	os.Exit(run(*dataPath))
}

func run(dataPath string) int {
	fmt.Println("=== Crime Data Validation ===")
	fmt.Println()

	table, err := csvfile.Load(context.Background(), dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHistogramTotals(table),
		validateFilterPartition(table),
		validateMapPoints(table),
		validateFixedView(table),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Incidents: %d, categories: %d, years: %v\n",
		table.Len(), len(table.Categories()), table.Years())

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// validateHistogramTotals checks that "Select all" buckets cover every
// incident and match the table's distinct years.
func validateHistogramTotals(table *domain.Table) *phase {
	p := &phase{name: "Histogram totals"}
	fig := domain.BuildYearHistogram(table.Years(), domain.Filter(table, domain.SelectAll()))
	if len(fig.Data) != 1 {
		p.errorf("expected 1 trace, got %d", len(fig.Data))
		return p
	}
	bar := fig.Data[0]
	if len(bar.X) != len(table.Years()) {
		p.errorf("bucket count %d != distinct years %d", len(bar.X), len(table.Years()))
	}
	total := 0
	for _, c := range bar.Y {
		total += c
	}
	if total != table.Len() {
		p.errorf("bucket total %d != incidents %d", total, table.Len())
	}
	return p
}

// validateFilterPartition checks that single-category selections partition
// the table and never change the histogram's bucket count.
func validateFilterPartition(table *domain.Table) *phase {
	p := &phase{name: "Filter partition by category"}
	years := table.Years()
	total := 0
	for _, c := range table.Categories() {
		subset := domain.Filter(table, domain.SelectLabels(c))
		if len(subset) == 0 {
			p.errorf("category %q matched no incidents", c)
		}
		for _, inc := range subset {
			if inc.Type != c {
				p.errorf("category %q returned incident of type %q", c, inc.Type)
				break
			}
		}
		if n := len(domain.BuildYearHistogram(years, subset).Data[0].X); n != len(years) {
			p.errorf("category %q: %d buckets, want %d", c, n, len(years))
		}
		total += len(subset)
	}
	if total != table.Len() {
		p.errorf("categories cover %d incidents, table has %d", total, table.Len())
	}
	if n := len(domain.Filter(table, domain.SelectLabels())); n != 0 {
		p.errorf("empty selection returned %d incidents", n)
	}
	return p
}

// validateMapPoints checks that every located incident is plotted once.
func validateMapPoints(table *domain.Table) *phase {
	p := &phase{name: "Map points"}
	located := 0
	for _, inc := range table.Incidents() {
		if inc.Located {
			located++
		}
	}
	fig := domain.BuildScatterMap(table.Categories(), domain.Filter(table, domain.SelectAll()), domain.MapOptions{})
	points := 0
	for _, tr := range fig.Data {
		if len(tr.Lat) != len(tr.Lon) || len(tr.Lat) != len(tr.Text) {
			p.errorf("trace %q has mismatched lat/lon/text lengths", tr.Name)
		}
		points += len(tr.Lat)
	}
	if points != located {
		p.errorf("plotted %d points, %d incidents are located", points, located)
	}
	return p
}

// validateFixedView checks that the map view ignores the selection.
func validateFixedView(table *domain.Table) *phase {
	p := &phase{name: "Fixed map view"}
	selections := []domain.Selection{domain.SelectAll(), domain.SelectLabels()}
	for _, c := range table.Categories() {
		selections = append(selections, domain.SelectLabels(c))
	}
	for _, sel := range selections {
		mb := domain.BuildScatterMap(table.Categories(), domain.Filter(table, sel), domain.MapOptions{}).Layout.Mapbox
		if mb == nil || mb.Center != domain.MapCenter || mb.Zoom != domain.MapZoom {
			p.errorf("selection %v moved the map view", sel.Labels())
		}
	}
	return p
}

// Command genmock writes a synthetic crime incident CSV in the VPD open data
// column layout, for running the dashboard without the Kaggle download. The
// output is deterministic for a given seed. It writes through the same csvfile
// package the dashboard loads with, then reads the file back to prove it loads.
//
// Usage:
//
//	go run ./cmd/genmock -out crime.csv -rows 5000 -seed 1
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/adapter/csvfile"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
)

// crimeTypes are the offence categories used in the VPD export.
var crimeTypes = []string{
	"Other Theft",
	"Theft from Vehicle",
	"Mischief",
	"Break and Enter Residential/Other",
	"Offence Against a Person",
	"Break and Enter Commercial",
	"Theft of Vehicle",
	"Theft of Bicycle",
	"Vehicle Collision or Pedestrian Struck (with Injury)",
	"Vehicle Collision or Pedestrian Struck (with Fatality)",
}

var neighbourhoods = []string{
	"Central Business District", "West End", "Strathcona", "Mount Pleasant",
	"Kitsilano", "Grandview-Woodland", "Fairview", "Kensington-Cedar Cottage",
	"Renfrew-Collingwood", "Hastings-Sunrise", "Sunset", "Marpole",
}

// withheldType is published without coordinates.
const withheldType = "Offence Against a Person"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "crime.csv", "output CSV path")
	rows := flag.Int("rows", 5000, "number of incidents to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	fromYear := flag.Int("from-year", 2003, "first year of incidents")
	toYear := flag.Int("to-year", 2017, "last year of incidents")
	flag.Parse()

	if *rows <= 0 {
		return fmt.Errorf("-rows must be positive")
	}
	if *toYear < *fromYear {
		return fmt.Errorf("-to-year must not be before -from-year")
	}

	incidents := generate(rand.New(rand.NewPCG(*seed, *seed)), *rows, *fromYear, *toYear)

	if err := writeCSV(*out, incidents); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	log.Printf("wrote %d incidents: %s", len(incidents), *out)

	table, err := csvfile.Load(context.Background(), *out)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", *out, err)
	}
	printStats(table)
	return nil
}

func generate(rng *rand.Rand, n, fromYear, toYear int) []domain.Incident {
	incidents := make([]domain.Incident, 0, n)
	for range n {
		year := fromYear + rng.IntN(toYear-fromYear+1)
		date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rng.IntN(365))
		typ := crimeTypes[rng.IntN(len(crimeTypes))]

		inc := domain.Incident{
			Type:   typ,
			Year:   date.Year(),
			Month:  int(date.Month()),
			Day:    date.Day(),
			Date:   date,
			Hour:   rng.IntN(24),
			Minute: rng.IntN(60),
		}
		if typ == withheldType {
			inc.HundredBlock = "OFFSET TO PROTECT PRIVACY"
		} else {
			inc.Located = true
			// Scatter around the city within roughly 8 km of the map center.
			inc.Latitude = domain.MapCenter.Lat + (rng.Float64()-0.5)*0.12
			inc.Longitude = domain.MapCenter.Lon + (rng.Float64()-0.5)*0.2
			inc.HundredBlock = fmt.Sprintf("%dXX BLOCK", 1+rng.IntN(99))
			inc.Neighbourhood = neighbourhoods[rng.IntN(len(neighbourhoods))]
		}
		incidents = append(incidents, inc)
	}
	return incidents
}

func writeCSV(path string, incidents []domain.Incident) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := csvfile.Write(f, incidents); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type typeCount struct {
	typ   string
	count int
}

func printStats(table *domain.Table) {
	counts := map[string]int{}
	for _, inc := range table.Incidents() {
		counts[inc.Type]++
	}
	tc := make([]typeCount, 0, len(counts))
	for t, c := range counts {
		tc = append(tc, typeCount{t, c})
	}
	sort.Slice(tc, func(i, j int) bool { return tc[i].count > tc[j].count })

	fmt.Println("\n=== Generated dataset ===")
	fmt.Printf("Total: %d\n", table.Len())
	fmt.Printf("Years: %v\n", table.Years())
	for _, t := range tc {
		fmt.Printf("  %-55s %d\n", t.typ, t.count)
	}
}

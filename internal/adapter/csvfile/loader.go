// Package csvfile loads the crime incident table from a CSV file in the VPD
// open data column layout and writes fixtures in the same layout.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
)

// ErrMalformed marks content errors: missing columns, bad numbers, or a
// YEAR/MONTH/DAY combination that is not a calendar date.
var ErrMalformed = errors.New("malformed incident data")

// Column names as published in the dataset header.
const (
	ColType          = "TYPE"
	ColYear          = "YEAR"
	ColMonth         = "MONTH"
	ColDay           = "DAY"
	ColHour          = "HOUR"
	ColMinute        = "MINUTE"
	ColHundredBlock  = "HUNDRED_BLOCK"
	ColNeighbourhood = "NEIGHBOURHOOD"
	ColX             = "X"
	ColY             = "Y"
	ColLatitude      = "Latitude"
	ColLongitude     = "Longitude"
)

// Header is the full column order written by Write.
var Header = []string{
	ColType, ColYear, ColMonth, ColDay, ColHour, ColMinute,
	ColHundredBlock, ColNeighbourhood, ColX, ColY, ColLatitude, ColLongitude,
}

var requiredColumns = []string{ColType, ColYear, ColMonth, ColDay, ColLatitude, ColLongitude}

// cancelCheckInterval is how many rows are read between context checks.
const cancelCheckInterval = 4096

// Load reads the incident table from the CSV file at path.
func Load(ctx context.Context, path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open incident file: %w", err)
	}
	defer f.Close()

	table, err := Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}

// Read parses an incident table from r. The first record must be the header.
// Any malformed row fails the whole read; there is no partial table.
func Read(ctx context.Context, r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var incidents []domain.Incident
	for {
		if len(incidents)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		inc, err := parseIncident(cols, rec)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, line, err)
		}
		incidents = append(incidents, inc)
	}

	return domain.NewTable(incidents), nil
}

// columns maps column names to their record index.
type columns map[string]int

func indexColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		// Excel exports prepend a BOM to the first header cell.
		h = strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		cols[h] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformed, strings.Join(missing, ", "))
	}
	return cols, nil
}

// get returns the trimmed field for name, or "" when the column is absent.
func (c columns) get(rec []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseIncident(cols columns, rec []string) (domain.Incident, error) {
	year, err := parseInt(cols, rec, ColYear)
	if err != nil {
		return domain.Incident{}, err
	}
	month, err := parseInt(cols, rec, ColMonth)
	if err != nil {
		return domain.Incident{}, err
	}
	day, err := parseInt(cols, rec, ColDay)
	if err != nil {
		return domain.Incident{}, err
	}
	date, err := calendarDate(year, month, day)
	if err != nil {
		return domain.Incident{}, err
	}

	lat, lon, located, err := parseCoordinates(cols.get(rec, ColLatitude), cols.get(rec, ColLongitude))
	if err != nil {
		return domain.Incident{}, err
	}

	return domain.Incident{
		Type:          cols.get(rec, ColType),
		Year:          year,
		Month:         month,
		Day:           day,
		Date:          date,
		Located:       located,
		Latitude:      lat,
		Longitude:     lon,
		Hour:          parseIntOrZero(cols.get(rec, ColHour)),
		Minute:        parseIntOrZero(cols.get(rec, ColMinute)),
		HundredBlock:  cols.get(rec, ColHundredBlock),
		Neighbourhood: cols.get(rec, ColNeighbourhood),
		X:             parseFloatOrZero(cols.get(rec, ColX)),
		Y:             parseFloatOrZero(cols.get(rec, ColY)),
	}, nil
}

func parseInt(cols columns, rec []string, name string) (int, error) {
	v, err := strconv.Atoi(cols.get(rec, name))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// calendarDate rejects combinations that time.Date would normalize,
// e.g. February 30th rolling over into March.
func calendarDate(year, month, day int) (time.Time, error) {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, fmt.Errorf("invalid date %04d-%02d-%02d", year, month, day)
	}
	return d, nil
}

// parseCoordinates returns located=false for an empty pair or the 0,0 pair
// the dataset uses for withheld locations.
func parseCoordinates(latStr, lonStr string) (lat, lon float64, located bool, err error) {
	if latStr == "" && lonStr == "" {
		return 0, 0, false, nil
	}
	if latStr == "" || lonStr == "" {
		return 0, 0, false, errors.New("latitude and longitude must both be set or both be empty")
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%s: %w", ColLatitude, err)
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%s: %w", ColLongitude, err)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false, fmt.Errorf("coordinate out of range: %g,%g", lat, lon)
	}
	if lat == 0 && lon == 0 {
		return 0, 0, false, nil
	}
	return lat, lon, true, nil
}

// parseIntOrZero parses passthrough columns, returning 0 on failure.
func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseFloatOrZero parses passthrough columns, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
)

// Write encodes incidents as CSV with Header as the first row. Unlocated
// incidents are written with empty coordinates.
func Write(w io.Writer, incidents []domain.Incident) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(Header))
	for _, inc := range incidents {
		rec[0] = inc.Type
		rec[1] = strconv.Itoa(inc.Year)
		rec[2] = strconv.Itoa(inc.Month)
		rec[3] = strconv.Itoa(inc.Day)
		rec[4] = strconv.Itoa(inc.Hour)
		rec[5] = strconv.Itoa(inc.Minute)
		rec[6] = inc.HundredBlock
		rec[7] = inc.Neighbourhood
		rec[8] = formatFloat(inc.X)
		rec[9] = formatFloat(inc.Y)
		rec[10], rec[11] = "", ""
		if inc.Located {
			rec[10] = formatFloat(inc.Latitude)
			rec[11] = formatFloat(inc.Longitude)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write incident: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

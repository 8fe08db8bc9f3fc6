package domain

import "time"

const (
	testTheft   = "Theft"
	testAssault = "Assault"
)

func incident(typ string, year, month, day int, lat, lon float64) Incident {
	return Incident{
		Type:      typ,
		Year:      year,
		Month:     month,
		Day:       day,
		Date:      time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Located:   true,
		Latitude:  lat,
		Longitude: lon,
	}
}

// scenarioTable has Theft and Assault spread across 2018 and 2019.
func scenarioTable() *Table {
	return NewTable([]Incident{
		incident(testTheft, 2018, 1, 5, 49.28, -123.12),
		incident(testAssault, 2018, 3, 14, 49.26, -123.10),
		incident(testTheft, 2019, 7, 1, 49.25, -123.14),
		incident(testTheft, 2019, 12, 31, 49.23, -123.08),
		incident(testAssault, 2019, 2, 28, 49.21, -123.11),
	})
}

package csvfile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "TYPE,YEAR,MONTH,DAY,Latitude,Longitude\n"

func TestLoad_Sample(t *testing.T) {
	table, err := Load(context.Background(), "testdata/crime_sample.csv")
	require.NoError(t, err)

	assert.Equal(t, 5, table.Len())
	assert.Equal(t, []string{
		"Other Theft",
		"Break and Enter Residential/Other",
		"Offence Against a Person",
		"Theft of Vehicle",
	}, table.Categories())
	assert.Equal(t, []int{2003, 2004, 2005}, table.Years())

	incs := table.Incidents()
	first := incs[0]
	assert.Equal(t, "Other Theft", first.Type)
	assert.Equal(t, time.Date(2003, 5, 12, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.Located)
	assert.InDelta(t, 49.2698989, first.Latitude, 1e-9)
	assert.InDelta(t, -123.0838663, first.Longitude, 1e-9)
	assert.Equal(t, 16, first.Hour)
	assert.Equal(t, 15, first.Minute)
	assert.Equal(t, "9XX TERMINAL AVE", first.HundredBlock)
	assert.Equal(t, "Strathcona", first.Neighbourhood)
	assert.InDelta(t, 493906.5, first.X, 1e-9)

	withheld := incs[2]
	assert.False(t, withheld.Located)
	assert.Zero(t, withheld.Hour)
	assert.Empty(t, withheld.Neighbourhood)

	leap := incs[3]
	assert.Equal(t, "2004-02-29", leap.DateLabel())
}

func TestLoad_InvalidCalendarDate(t *testing.T) {
	_, err := Load(context.Background(), "testdata/invalid_date.csv")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "2020-02-30")
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), "testdata/does_not_exist.csv")

	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrMalformed)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "", "missing header"},
		{"missing columns", "TYPE,YEAR\nTheft,2019\n", "Latitude"},
		{"non-numeric year", testHeader + "Theft,abc,1,1,49.2,-123.1\n", "YEAR"},
		{"month out of range", testHeader + "Theft,2019,13,1,49.2,-123.1\n", "invalid date"},
		{"day zero", testHeader + "Theft,2019,1,0,49.2,-123.1\n", "invalid date"},
		{"non-leap february", testHeader + "Theft,2019,2,29,49.2,-123.1\n", "2019-02-29"},
		{"non-numeric latitude", testHeader + "Theft,2019,1,1,north,-123.1\n", "Latitude"},
		{"half coordinate", testHeader + "Theft,2019,1,1,49.2,\n", "both"},
		{"latitude out of range", testHeader + "Theft,2019,1,1,149.2,-123.1\n", "out of range"},
		{"ragged row", testHeader + "Theft,2019,1\n", "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestRead_HeaderOnly(t *testing.T) {
	table, err := Read(context.Background(), strings.NewReader(testHeader))

	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestRead_ColumnOrderAndBOM(t *testing.T) {
	input := "\ufeffLongitude,Latitude,DAY,MONTH,YEAR,TYPE\n-123.1,49.2,1,1,2019,Theft\n"

	table, err := Read(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	inc := table.Incidents()[0]
	assert.Equal(t, "Theft", inc.Type)
	assert.Equal(t, 2019, inc.Year)
	assert.InDelta(t, 49.2, inc.Latitude, 1e-9)
	assert.InDelta(t, -123.1, inc.Longitude, 1e-9)
}

func TestRead_EmptyCoordinatesAreUnlocated(t *testing.T) {
	table, err := Read(context.Background(), strings.NewReader(testHeader+"Theft,2019,1,1,,\n"))

	require.NoError(t, err)
	assert.False(t, table.Incidents()[0].Located)
}

func TestRead_ZeroPairIsWithheld(t *testing.T) {
	input := testHeader +
		"Offence Against a Person,2019,1,1,0,0\n" +
		"Theft,2019,1,2,49.2,-123.1\n"

	table, err := Read(context.Background(), strings.NewReader(input))

	require.NoError(t, err)
	incs := table.Incidents()
	require.Len(t, incs, 2)
	assert.False(t, incs[0].Located)
	assert.Zero(t, incs[0].Latitude)
	assert.Zero(t, incs[0].Longitude)
	assert.True(t, incs[1].Located)
}

func TestRead_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Read(ctx, strings.NewReader(testHeader+"Theft,2019,1,1,49.2,-123.1\n"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWrite_ReadsBack(t *testing.T) {
	src, err := Load(context.Background(), "testdata/crime_sample.csv")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, src.Incidents()))

	assert.True(t, strings.HasPrefix(buf.String(), strings.Join(Header, ",")+"\n"))

	got, err := Read(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, src.Incidents(), got.Incidents())
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []domain.Incident{}))

	assert.Equal(t, strings.Join(Header, ",")+"\n", buf.String())
}

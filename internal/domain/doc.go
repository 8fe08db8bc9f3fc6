// Package domain models the Vancouver Police Department crime incident data
// and the two chart figures built from it.
//
// # Data Source
//
// Incidents come from the VPD open data export republished on Kaggle as
// "Crime in Vancouver" (https://www.kaggle.com/datasets/wosaku/crime-in-vancouver).
// The file is a single CSV loaded once at startup by the csvfile adapter.
//
// # Dataset Conventions
//
// Columns:
//
//	TYPE,YEAR,MONTH,DAY,HOUR,MINUTE,HUNDRED_BLOCK,NEIGHBOURHOOD,X,Y,Latitude,Longitude
//
// Dates:
//
//	YEAR, MONTH and DAY are separate integer columns. They are combined into a
//	single UTC date per incident; an impossible combination such as 2020-02-30
//	is a load error, not a silently normalized date.
//
// Coordinates:
//
//	Latitude/Longitude are WGS-84 decimal degrees. Some offence types (e.g.
//	"Offence Against a Person") are published with coordinates withheld; an
//	empty coordinate pair marks the incident as unlocated. Unlocated incidents
//	still count toward the yearly histogram but are never plotted.
//
// # Selections
//
// The dashboard's multi-select carries the sentinel "Select all" alongside the
// real category labels. [ParseSelection] turns the raw control values into a
// [Selection], which is either all categories or a specific (possibly empty)
// set of labels.
//
// # Figures
//
// [Figure] is a plotly.js-compatible description of a chart (traces plus
// layout). Figures are rebuilt on every update and never cached.
package domain

// Package dashboard binds the selection control to the two chart builders:
// each update filters the incident table and rebuilds both figures.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/vancouver-crime-dashboard/internal/domain"
	"github.com/couchcryptid/vancouver-crime-dashboard/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Figures is the output of one update.
type Figures struct {
	Histogram domain.Figure `json:"histogram"`
	Map       domain.Figure `json:"map"`
}

// Service holds the loaded table and serves figure updates. It keeps no
// per-user state and is safe for concurrent use.
type Service struct {
	table      *domain.Table
	years      []int
	categories []string
	mapOpts    domain.MapOptions
	summary    Summary

	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Service over table. A nil clock uses the real clock.
func New(table *domain.Table, mapOpts domain.MapOptions, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Service{
		table:      table,
		years:      table.Years(),
		categories: table.Categories(),
		mapOpts:    mapOpts,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
	}
	s.summary = summarize(table)

	metrics.IncidentsLoaded.Set(float64(table.Len()))
	metrics.CategoriesLoaded.Set(float64(len(s.categories)))
	return s
}

// Options returns the multi-select options: the "Select all" sentinel
// followed by every category in the table.
func (s *Service) Options() []string {
	out := make([]string, 0, len(s.categories)+1)
	out = append(out, domain.SelectAllLabel)
	return append(out, s.categories...)
}

// Update filters the table by sel and builds both figures. The same
// selection always yields identical figures.
func (s *Service) Update(sel domain.Selection) Figures {
	start := s.clock.Now()

	subset := domain.Filter(s.table, sel)
	figs := Figures{
		Histogram: domain.BuildYearHistogram(s.years, subset),
		Map:       domain.BuildScatterMap(s.categories, subset, s.mapOpts),
	}

	s.observe(sel, len(subset), start)
	return figs
}

// YearCounts returns the histogram buckets for sel without building figures.
// It does not count as a figure update.
func (s *Service) YearCounts(sel domain.Selection) []domain.YearCount {
	subset := domain.Filter(s.table, sel)
	counts := domain.CountByYear(s.years, subset)

	s.logger.Debug("year counts computed",
		"selection", selectionKind(sel),
		"matched", len(subset),
	)
	return counts
}

// Summary describes the loaded table.
func (s *Service) Summary() Summary {
	return s.summary
}

// CheckReadiness returns nil once the table holds at least one incident.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.table.Len() == 0 {
		return errors.New("incident table is empty")
	}
	return nil
}

func (s *Service) observe(sel domain.Selection, matched int, start time.Time) {
	elapsed := s.clock.Since(start)
	kind := selectionKind(sel)

	s.metrics.FigureUpdates.WithLabelValues(kind).Inc()
	s.metrics.UpdateDuration.Observe(elapsed.Seconds())
	s.metrics.FilteredIncidents.Observe(float64(matched))
	s.logger.Debug("figures updated",
		"selection", kind,
		"labels", sel.Labels(),
		"matched", matched,
		"duration", elapsed,
	)
}

func selectionKind(sel domain.Selection) string {
	switch {
	case sel.All():
		return "all"
	case len(sel.Labels()) == 0:
		return "empty"
	default:
		return "specific"
	}
}

// Package http serves the crime dashboard: the page with its multi-select
// control, the JSON figure API the page calls on every selection change, a
// PNG rendering of the histogram, and the health, readiness, and metrics
// endpoints.
package http

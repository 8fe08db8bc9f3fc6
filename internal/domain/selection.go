package domain

import "slices"

// SelectAllLabel is the multi-select option meaning "do not filter".
const SelectAllLabel = "Select all"

// Selection is either every category or a specific set of labels.
// The zero value is a specific, empty selection.
type Selection struct {
	all    bool
	labels map[string]struct{}
}

// SelectAll returns the wildcard selection.
func SelectAll() Selection {
	return Selection{all: true}
}

// SelectLabels returns a selection of exactly the given labels.
func SelectLabels(labels ...string) Selection {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return Selection{labels: set}
}

// ParseSelection converts raw multi-select values into a Selection. The
// sentinel anywhere in values wins over any other labels present.
func ParseSelection(values []string) Selection {
	if slices.Contains(values, SelectAllLabel) {
		return SelectAll()
	}
	return SelectLabels(values...)
}

// All reports whether the selection is the wildcard.
func (s Selection) All() bool { return s.all }

// Contains reports whether label passes the selection.
func (s Selection) Contains(label string) bool {
	if s.all {
		return true
	}
	_, ok := s.labels[label]
	return ok
}

// Labels returns the explicit labels in sorted order, or nil for the wildcard.
func (s Selection) Labels() []string {
	if s.all {
		return nil
	}
	out := make([]string, 0, len(s.labels))
	for l := range s.labels {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

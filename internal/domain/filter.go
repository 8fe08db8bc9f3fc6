package domain

// Filter returns the incidents passing sel, in table order. The wildcard
// returns every incident; an empty specific selection returns none.
//
// The result may share storage with the table and must not be modified.
func Filter(t *Table, sel Selection) []Incident {
	if sel.All() {
		return t.all()
	}

	out := make([]Incident, 0)
	for _, inc := range t.all() {
		if sel.Contains(inc.Type) {
			out = append(out, inc)
		}
	}
	return out
}

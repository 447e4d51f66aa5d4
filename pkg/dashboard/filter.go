package dashboard

import "time"

// Filter narrows dashboard rows. Zero-value bounds and nil subsets mean
// "no restriction". Rows with an unparseable (zero) submission date fail any
// date-range restriction.
type Filter struct {
	From    time.Time
	To      time.Time
	Heroes  []string
	Pillars []string
	Teams   []string
}

// Apply returns the rows matching the filter, preserving input order
func Apply(rows []Row, f Filter) []Row {
	heroes := toSet(f.Heroes)
	pillars := toSet(f.Pillars)
	teams := toSet(f.Teams)

	var out []Row
	for _, row := range rows {
		if !f.From.IsZero() || !f.To.IsZero() {
			if row.SubmittedAt.IsZero() {
				continue
			}
			if !f.From.IsZero() && row.SubmittedAt.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && row.SubmittedAt.After(f.To) {
				continue
			}
		}
		if heroes != nil && !heroes[row.Hero] {
			continue
		}
		if pillars != nil && !pillars[row.Pillar] {
			continue
		}
		if teams != nil && !teams[row.Team] {
			continue
		}
		out = append(out, row)
	}
	return out
}

func toSet(values []string) map[string]bool {
	if values == nil {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

package dashboard

import (
	"sort"
	"time"
)

// Metrics are the headline figures shown above the dashboard
type Metrics struct {
	Heroes      int // distinct recognized heroes
	TotalGems   int
	AverageGems int // integer average per hero, zero when no heroes
	Nominations int // approved nominations in view
}

// Summarize computes the headline metrics for a set of rows
func Summarize(rows []Row) Metrics {
	seen := make(map[string]bool)
	m := Metrics{Nominations: len(rows)}
	for _, row := range rows {
		m.TotalGems += row.Gems
		if !seen[row.Hero] {
			seen[row.Hero] = true
			m.Heroes++
		}
	}
	if m.Heroes > 0 {
		m.AverageGems = m.TotalGems / m.Heroes
	}
	return m
}

// PillarShare is one pillar's summed GEMS, for proportional reporting
type PillarShare struct {
	Pillar string
	Gems   int
}

// PillarDistribution groups rows by pillar and sums GEMS, descending
func PillarDistribution(rows []Row) []PillarShare {
	totals := make(map[string]int)
	var order []string
	for _, row := range rows {
		if _, ok := totals[row.Pillar]; !ok {
			order = append(order, row.Pillar)
		}
		totals[row.Pillar] += row.Gems
	}

	shares := make([]PillarShare, 0, len(order))
	for _, pillar := range order {
		shares = append(shares, PillarShare{Pillar: pillar, Gems: totals[pillar]})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Gems > shares[j].Gems
	})
	return shares
}

// DailyPoint is one day's distributed GEMS on the nomination journey chart
type DailyPoint struct {
	Day  time.Time
	Gems int
}

// DailyGems groups rows by submission day and sums GEMS, ascending by day.
// Rows with an unparseable (zero) date are skipped.
func DailyGems(rows []Row) []DailyPoint {
	totals := make(map[time.Time]int)
	for _, row := range rows {
		if row.SubmittedAt.IsZero() {
			continue
		}
		day := row.SubmittedAt.Truncate(24 * time.Hour)
		totals[day] += row.Gems
	}

	points := make([]DailyPoint, 0, len(totals))
	for day, gems := range totals {
		points = append(points, DailyPoint{Day: day, Gems: gems})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Day.Before(points[j].Day)
	})
	return points
}

// Feed returns the rows ordered most recent first for the recognition feed
func Feed(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out
}

package dashboard

import (
	"fmt"
	"math"
	"sort"
)

// Medals awarded to the top three ranking positions
var medals = map[int]string{1: "🥇", 2: "🥈", 3: "🥉"}

// RankingEntry is one hero's line in the ranking table
type RankingEntry struct {
	Position int
	Label    string // medal for the top three, "<n>º" otherwise
	Hero     string
	Team     string
	Gems     int
	Percent  float64 // share of the total, rounded to two decimals
	Pillars  map[string]int
}

// HeroRanking groups rows by nominee and team, sums GEMS and sorts
// descending. Ties keep their grouped input order. Every entry carries a
// per-pillar subtotal over the global pillar set; a pillar the hero never
// scored in shows zero, not an absent cell.
func HeroRanking(rows []Row) []RankingEntry {
	type key struct{ hero, team string }

	var order []key
	totals := make(map[key]int)
	pivots := make(map[key]map[string]int)
	var pillarOrder []string
	seenPillars := make(map[string]bool)
	totalGems := 0

	for _, row := range rows {
		k := key{row.Hero, row.Team}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
			pivots[k] = make(map[string]int)
		}
		totals[k] += row.Gems
		pivots[k][row.Pillar] += row.Gems
		totalGems += row.Gems

		if !seenPillars[row.Pillar] {
			seenPillars[row.Pillar] = true
			pillarOrder = append(pillarOrder, row.Pillar)
		}
	}

	entries := make([]RankingEntry, 0, len(order))
	for _, k := range order {
		if totals[k] <= 0 {
			continue
		}
		entries = append(entries, RankingEntry{
			Hero: k.hero,
			Team: k.team,
			Gems: totals[k],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Gems > entries[j].Gems
	})

	for i := range entries {
		entries[i].Position = i + 1
		entries[i].Label = positionLabel(i + 1)
		if totalGems > 0 {
			entries[i].Percent = round2(float64(entries[i].Gems) / float64(totalGems) * 100)
		}

		pivot := pivots[key{entries[i].Hero, entries[i].Team}]
		entries[i].Pillars = make(map[string]int, len(pillarOrder))
		for _, pillar := range pillarOrder {
			entries[i].Pillars[pillar] = pivot[pillar]
		}
	}

	return entries
}

// Pillars returns the distinct pillar names present in the rows, first-seen
// order; the ranking pivot columns use this set
func Pillars(rows []Row) []string {
	seen := make(map[string]bool)
	var pillars []string
	for _, row := range rows {
		if !seen[row.Pillar] {
			seen[row.Pillar] = true
			pillars = append(pillars, row.Pillar)
		}
	}
	return pillars
}

func positionLabel(position int) string {
	if medal, ok := medals[position]; ok {
		return medal
	}
	return fmt.Sprintf("%dº", position)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

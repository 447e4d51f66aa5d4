package dashboard

import (
	"github.com/latoulicious/GEMS/pkg/repository"
)

// unknownPlaceholder stands in for references that no longer resolve
const unknownPlaceholder = "?"

// EnrichedNomination is a nomination of any status with its references
// resolved to display names for the approval workflow. Dangling references
// resolve to a placeholder instead of being dropped.
type EnrichedNomination struct {
	repository.Nomination
	Nominator string
	Nominee   string
	Mission   string
	Pillar    string
}

// Enriched resolves every nomination's hero and mission references,
// substituting placeholders where an entity was deleted
func (s *Service) Enriched() ([]EnrichedNomination, error) {
	heroes, err := s.heroes.All()
	if err != nil {
		return nil, err
	}
	missions, err := s.missions.All()
	if err != nil {
		return nil, err
	}
	nominations, err := s.nominations.All()
	if err != nil {
		return nil, err
	}

	heroByID := make(map[int]repository.Hero, len(heroes))
	for _, hero := range heroes {
		heroByID[hero.ID] = hero
	}
	missionByID := make(map[int]repository.Mission, len(missions))
	for _, mission := range missions {
		missionByID[mission.ID] = mission
	}

	enriched := make([]EnrichedNomination, 0, len(nominations))
	for _, nomination := range nominations {
		entry := EnrichedNomination{
			Nomination: nomination,
			Nominator:  unknownPlaceholder,
			Nominee:    unknownPlaceholder,
			Mission:    unknownPlaceholder,
			Pillar:     unknownPlaceholder,
		}
		if hero, ok := heroByID[nomination.NominatorID]; ok {
			entry.Nominator = hero.Name
		}
		if hero, ok := heroByID[nomination.NomineeID]; ok {
			entry.Nominee = hero.Name
		}
		if mission, ok := missionByID[nomination.MissionID]; ok {
			entry.Mission = mission.Name
			entry.Pillar = mission.Pillar
		}
		enriched = append(enriched, entry)
	}
	return enriched, nil
}

// StatusCounts tallies enriched nominations per parsed status
func StatusCounts(nominations []EnrichedNomination) map[repository.Status]int {
	counts := make(map[repository.Status]int)
	for _, nomination := range nominations {
		if nomination.Status == "" {
			continue
		}
		counts[nomination.Status]++
	}
	return counts
}

package dashboard

import (
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/repository"
	"github.com/latoulicious/GEMS/pkg/store"
	"time"
)

// Row is one approved nomination denormalized for ranking and reporting
type Row struct {
	SubmittedAt   time.Time
	Hero          string // nominee display name
	Team          string // nominee's team
	Nominator     string
	Mission       string
	Pillar        string
	Gems          int
	Justification string
}

// Service produces the denormalized views consumed by the presentation layer
type Service struct {
	heroes      *repository.HeroRepository
	missions    *repository.MissionRepository
	nominations *repository.NominationRepository
	logger      logging.Logger
}

// NewService creates a dashboard service over the three repositories
func NewService(heroes *repository.HeroRepository, missions *repository.MissionRepository, nominations *repository.NominationRepository, factory logging.LoggerFactory) *Service {
	return &Service{
		heroes:      heroes,
		missions:    missions,
		nominations: nominations,
		logger:      factory.CreateDashboardLogger(),
	}
}

// NewServiceFromStore is a convenience constructor wiring repositories over
// one store. Attachments are never written by the dashboard, so the
// nomination repository gets no attachments directory.
func NewServiceFromStore(st store.Store, factory logging.LoggerFactory) *Service {
	return NewService(
		repository.NewHeroRepository(st, factory),
		repository.NewMissionRepository(st, factory),
		repository.NewNominationRepository(st, "", factory),
		factory,
	)
}

// Data builds the approved-nominations view: status filtered, self-joined
// against heroes for nominee and nominator, joined against missions for the
// pillar and reward. Any empty source table means insufficient data and
// yields an empty result, not an error. Rows whose hero or mission reference
// no longer resolves are dropped by the inner joins.
func (s *Service) Data() ([]Row, error) {
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

	if len(heroes) == 0 || len(missions) == 0 || len(nominations) == 0 {
		s.logger.Debug("Insufficient data for dashboard", map[string]interface{}{
			"heroes": len(heroes), "missions": len(missions), "nominations": len(nominations),
		})
		return nil, nil
	}

	heroByID := make(map[int]repository.Hero, len(heroes))
	for _, hero := range heroes {
		heroByID[hero.ID] = hero
	}
	missionByID := make(map[int]repository.Mission, len(missions))
	for _, mission := range missions {
		missionByID[mission.ID] = mission
	}

	var rows []Row
	for _, nomination := range nominations {
		if nomination.Status != repository.StatusApproved {
			continue
		}

		nominee, ok := heroByID[nomination.NomineeID]
		if !ok {
			continue
		}
		nominator, ok := heroByID[nomination.NominatorID]
		if !ok {
			continue
		}
		mission, ok := missionByID[nomination.MissionID]
		if !ok {
			continue
		}

		rows = append(rows, Row{
			SubmittedAt:   nomination.SubmittedAt,
			Hero:          nominee.Name,
			Team:          nominee.Team,
			Nominator:     nominator.Name,
			Mission:       mission.Name,
			Pillar:        mission.Pillar,
			Gems:          mission.Gems,
			Justification: nomination.Justification,
		})
	}

	s.logger.Debug("Dashboard data built", map[string]interface{}{"rows": len(rows)})
	return rows, nil
}

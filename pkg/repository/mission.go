package repository

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
)

// MissionRepository handles typed operations on the mission table
type MissionRepository struct {
	store  store.Store
	logger logging.Logger
}

// MissionStats summarizes the mission catalog for the crystal-map panorama
type MissionStats struct {
	Missions    int
	Pillars     int
	TotalGems   int
	AverageGems float64
}

// NewMissionRepository creates a mission repository over the given store
func NewMissionRepository(st store.Store, factory logging.LoggerFactory) *MissionRepository {
	return &MissionRepository{
		store:  st,
		logger: factory.CreateRepositoryLogger(string(store.EntityMission)),
	}
}

// All returns every mission in table order
func (r *MissionRepository) All() ([]Mission, error) {
	table, err := r.store.Load(store.EntityMission)
	if err != nil {
		return nil, err
	}

	missions := make([]Mission, 0, table.Len())
	for _, row := range table.Rows {
		missions = append(missions, missionFromRow(row))
	}
	return missions, nil
}

// ByID returns the mission with the given id, or ErrNotFound
func (r *MissionRepository) ByID(id int) (*Mission, error) {
	missions, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range missions {
		if missions[i].ID == id {
			return &missions[i], nil
		}
	}
	return nil, ErrNotFound
}

// Pillars returns the distinct pillar names in first-seen order
func (r *MissionRepository) Pillars() ([]string, error) {
	missions, err := r.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var pillars []string
	for _, mission := range missions {
		if mission.Pillar == "" || seen[mission.Pillar] {
			continue
		}
		seen[mission.Pillar] = true
		pillars = append(pillars, mission.Pillar)
	}
	return pillars, nil
}

// ByPillar returns the missions belonging to one pillar
func (r *MissionRepository) ByPillar(pillar string) ([]Mission, error) {
	missions, err := r.All()
	if err != nil {
		return nil, err
	}

	var out []Mission
	for _, mission := range missions {
		if mission.Pillar == pillar {
			out = append(out, mission)
		}
	}
	return out, nil
}

// Create registers a new mission. The reward must be positive; duplicate
// mission names within a pillar are allowed, missions are distinguished by id.
func (r *MissionRepository) Create(name, description string, gems int, pillar string) (*Mission, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	pillar = strings.TrimSpace(pillar)
	if name == "" || description == "" || pillar == "" {
		return nil, fmt.Errorf("%w: mission name, description and pillar are required", ErrMissingField)
	}
	if gems <= 0 {
		return nil, fmt.Errorf("mission reward must be positive, got %d", gems)
	}

	table, err := r.store.Load(store.EntityMission)
	if err != nil {
		return nil, err
	}

	id := nextID(table, store.ColMissionID, MissionIDFloor)
	today := time.Now().Format(DateLayout)
	table.Append(map[string]string{
		store.ColMissionID:       strconv.Itoa(id),
		store.ColMissionName:     name,
		store.ColMissionDescribe: description,
		store.ColGemsAwarded:     strconv.Itoa(gems),
		store.ColPillarID:        strconv.Itoa(PillarID(pillar)),
		store.ColPillar:          pillar,
		store.ColStartDate:       today,
		store.ColUpdateDate:      today,
	})

	if err := r.store.Save(store.EntityMission, table); err != nil {
		return nil, err
	}

	r.logger.Info("Mission created", map[string]interface{}{
		"id": id, "name": name, "pillar": pillar, "gems": gems,
	})
	mission := missionFromRow(table.Rows[table.Len()-1])
	return &mission, nil
}

// Update changes a mission's fields, stamping the update date
func (r *MissionRepository) Update(id int, name, description string, gems int, pillar string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	pillar = strings.TrimSpace(pillar)
	if name == "" || description == "" || pillar == "" {
		return fmt.Errorf("%w: mission name, description and pillar are required", ErrMissingField)
	}
	if gems <= 0 {
		return fmt.Errorf("mission reward must be positive, got %d", gems)
	}

	table, err := r.store.Load(store.EntityMission)
	if err != nil {
		return err
	}

	target := strconv.Itoa(id)
	updated := false
	for _, row := range table.Rows {
		if strings.TrimSpace(row[store.ColMissionID]) == target {
			row[store.ColMissionName] = name
			row[store.ColMissionDescribe] = description
			row[store.ColGemsAwarded] = strconv.Itoa(gems)
			row[store.ColPillarID] = strconv.Itoa(PillarID(pillar))
			row[store.ColPillar] = pillar
			row[store.ColUpdateDate] = time.Now().Format(DateLayout)
			updated = true
		}
	}
	if !updated {
		return ErrNotFound
	}

	if err := r.store.Save(store.EntityMission, table); err != nil {
		return err
	}

	r.logger.Info("Mission updated", map[string]interface{}{"id": id, "name": name})
	return nil
}

// Delete removes the mission row. Approved nominations referencing it drop
// out of the dashboard joins.
func (r *MissionRepository) Delete(id int) error {
	table, err := r.store.Load(store.EntityMission)
	if err != nil {
		return err
	}

	target := strconv.Itoa(id)
	index := -1
	for i, row := range table.Rows {
		if strings.TrimSpace(row[store.ColMissionID]) == target {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotFound
	}
	table.Delete(index)

	if err := r.store.Save(store.EntityMission, table); err != nil {
		return err
	}

	r.logger.Info("Mission deleted", map[string]interface{}{"id": id})
	return nil
}

// Stats summarizes the mission catalog
func (r *MissionRepository) Stats() (*MissionStats, error) {
	missions, err := r.All()
	if err != nil {
		return nil, err
	}

	stats := &MissionStats{Missions: len(missions)}
	seen := make(map[string]bool)
	for _, mission := range missions {
		stats.TotalGems += mission.Gems
		if mission.Pillar != "" && !seen[mission.Pillar] {
			seen[mission.Pillar] = true
			stats.Pillars++
		}
	}
	if stats.Missions > 0 {
		stats.AverageGems = float64(stats.TotalGems) / float64(stats.Missions)
	}
	return stats, nil
}

// PillarID derives the informational pillar id from the pillar name. It is a
// fixed FNV-1a hash modulo 1000 so existing files can be regenerated
// deterministically; it is never used as a join key.
func PillarID(pillar string) int {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(pillar))))
	return int(h.Sum32() % 1000)
}

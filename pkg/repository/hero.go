package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
)

var (
	// ErrNotFound is returned when a record's id does not resolve
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a hero name already exists
	ErrDuplicateName = errors.New("hero name already exists")
	// ErrMissingField is returned when a required field is blank
	ErrMissingField = errors.New("required field is empty")
)

// HeroRepository handles typed operations on the hero table
type HeroRepository struct {
	store  store.Store
	logger logging.Logger
}

// NewHeroRepository creates a hero repository over the given store
func NewHeroRepository(st store.Store, factory logging.LoggerFactory) *HeroRepository {
	return &HeroRepository{
		store:  st,
		logger: factory.CreateRepositoryLogger(string(store.EntityHero)),
	}
}

// All returns every hero in table order
func (r *HeroRepository) All() ([]Hero, error) {
	table, err := r.store.Load(store.EntityHero)
	if err != nil {
		return nil, err
	}

	heroes := make([]Hero, 0, table.Len())
	for _, row := range table.Rows {
		heroes = append(heroes, heroFromRow(row))
	}
	return heroes, nil
}

// ByID returns the hero with the given id, or ErrNotFound
func (r *HeroRepository) ByID(id int) (*Hero, error) {
	heroes, err := r.All()
	if err != nil {
		return nil, err
	}
	for i := range heroes {
		if heroes[i].ID == id {
			return &heroes[i], nil
		}
	}
	return nil, ErrNotFound
}

// Create registers a new hero. Names are unique case-insensitively after
// trimming; the minted id starts at 101 for the first record.
func (r *HeroRepository) Create(name, team string) (*Hero, error) {
	name = strings.TrimSpace(name)
	team = strings.TrimSpace(team)
	if name == "" || team == "" {
		return nil, fmt.Errorf("%w: hero name and team are required", ErrMissingField)
	}

	table, err := r.store.Load(store.EntityHero)
	if err != nil {
		return nil, err
	}

	for _, row := range table.Rows {
		if strings.EqualFold(strings.TrimSpace(row[store.ColHeroName]), name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	id := nextID(table, store.ColHeroID, HeroIDFloor)
	today := time.Now().Format(DateLayout)
	table.Append(map[string]string{
		store.ColHeroID:     strconv.Itoa(id),
		store.ColHeroName:   name,
		store.ColHeroTeam:   team,
		store.ColStartDate:  today,
		store.ColUpdateDate: today,
	})

	if err := r.store.Save(store.EntityHero, table); err != nil {
		return nil, err
	}

	r.logger.Info("Hero created", map[string]interface{}{"id": id, "name": name})
	hero := heroFromRow(table.Rows[table.Len()-1])
	return &hero, nil
}

// Update changes a hero's name and team, stamping the update date
func (r *HeroRepository) Update(id int, name, team string) error {
	name = strings.TrimSpace(name)
	team = strings.TrimSpace(team)
	if name == "" || team == "" {
		return fmt.Errorf("%w: hero name and team are required", ErrMissingField)
	}

	table, err := r.store.Load(store.EntityHero)
	if err != nil {
		return err
	}

	target := strconv.Itoa(id)
	updated := false
	for _, row := range table.Rows {
		if strings.TrimSpace(row[store.ColHeroID]) == target {
			row[store.ColHeroName] = name
			row[store.ColHeroTeam] = team
			row[store.ColUpdateDate] = time.Now().Format(DateLayout)
			updated = true
		}
	}
	if !updated {
		return ErrNotFound
	}

	if err := r.store.Save(store.EntityHero, table); err != nil {
		return err
	}

	r.logger.Info("Hero updated", map[string]interface{}{"id": id, "name": name})
	return nil
}

// Delete removes the hero row. Nominations referencing the hero are left in
// place; lookups resolve them to placeholders.
func (r *HeroRepository) Delete(id int) error {
	table, err := r.store.Load(store.EntityHero)
	if err != nil {
		return err
	}

	target := strconv.Itoa(id)
	index := -1
	for i, row := range table.Rows {
		if strings.TrimSpace(row[store.ColHeroID]) == target {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotFound
	}
	table.Delete(index)

	if err := r.store.Save(store.EntityHero, table); err != nil {
		return err
	}

	r.logger.Info("Hero deleted", map[string]interface{}{"id": id})
	return nil
}

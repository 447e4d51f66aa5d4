package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/latoulicious/GEMS/internal/config"
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/repository"
	"github.com/latoulicious/GEMS/pkg/store"
	"gopkg.in/yaml.v3"
)

// seedFile is the fixture format: heroes and missions by natural key,
// nominations referencing them by name.
type seedFile struct {
	Heroes []struct {
		Name string `yaml:"name"`
		Team string `yaml:"team"`
	} `yaml:"heroes"`
	Missions []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Gems        int    `yaml:"gems"`
		Pillar      string `yaml:"pillar"`
	} `yaml:"missions"`
	Nominations []struct {
		Nominator     string `yaml:"nominator"`
		Nominee       string `yaml:"nominee"`
		Mission       string `yaml:"mission"`
		Justification string `yaml:"justification"`
		Approve       bool   `yaml:"approve"`
	} `yaml:"nominations"`
}

func main() {
	path := flag.String("file", "config/seed.yaml", "Seed fixture file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}

	factory := logging.NewLoggerFactory(cfg.LogLevel)
	backing := store.NewFileStore(cfg.DataDir, factory)

	heroes := repository.NewHeroRepository(backing, factory)
	missions := repository.NewMissionRepository(backing, factory)
	nominations := repository.NewNominationRepository(backing, cfg.AttachmentsDir, factory)

	for _, h := range seed.Heroes {
		hero, err := heroes.Create(h.Name, h.Team)
		if errors.Is(err, repository.ErrDuplicateName) {
			log.Printf("Hero %q already exists, skipping", h.Name)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to create hero %q: %v", h.Name, err)
		}
		log.Printf("Created hero %q (id %d)", hero.Name, hero.ID)
	}

	for _, m := range seed.Missions {
		mission, err := missions.Create(m.Name, m.Description, m.Gems, m.Pillar)
		if err != nil {
			log.Fatalf("Failed to create mission %q: %v", m.Name, err)
		}
		log.Printf("Created mission %q (id %d, %d GEMS)", mission.Name, mission.ID, mission.Gems)
	}

	for _, n := range seed.Nominations {
		nominatorID, err := heroIDByName(heroes, n.Nominator)
		if err != nil {
			log.Fatalf("Nomination of %q: %v", n.Nominee, err)
		}
		nomineeID, err := heroIDByName(heroes, n.Nominee)
		if err != nil {
			log.Fatalf("Nomination of %q: %v", n.Nominee, err)
		}
		missionID, err := missionIDByName(missions, n.Mission)
		if err != nil {
			log.Fatalf("Nomination of %q: %v", n.Nominee, err)
		}

		nomination, err := nominations.Create(nominatorID, nomineeID, missionID, n.Justification, nil)
		if err != nil {
			log.Fatalf("Failed to create nomination of %q: %v", n.Nominee, err)
		}
		if n.Approve {
			if err := nominations.SetStatus(nomination.ID, repository.StatusApproved); err != nil {
				log.Fatalf("Failed to approve nomination %d: %v", nomination.ID, err)
			}
		}
		log.Printf("Created nomination %d (%s -> %s)", nomination.ID, n.Nominator, n.Nominee)
	}

	log.Println("Seeding completed successfully")
}

func heroIDByName(repo *repository.HeroRepository, name string) (int, error) {
	all, err := repo.All()
	if err != nil {
		return 0, err
	}
	for _, hero := range all {
		if strings.EqualFold(strings.TrimSpace(hero.Name), strings.TrimSpace(name)) {
			return hero.ID, nil
		}
	}
	return 0, fmt.Errorf("hero %q not found", name)
}

func missionIDByName(repo *repository.MissionRepository, name string) (int, error) {
	all, err := repo.All()
	if err != nil {
		return 0, err
	}
	for _, mission := range all {
		if strings.EqualFold(strings.TrimSpace(mission.Name), strings.TrimSpace(name)) {
			return mission.ID, nil
		}
	}
	return 0, fmt.Errorf("mission %q not found", name)
}

package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/latoulicious/GEMS/internal/config"
	"github.com/latoulicious/GEMS/pkg/dashboard"
	"github.com/latoulicious/GEMS/pkg/logging"
	"github.com/latoulicious/GEMS/pkg/store"
)

func main() {
	out := flag.String("export", "", "Write the hero ranking to this CSV file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	factory := logging.NewLoggerFactory(cfg.LogLevel)
	backing := store.NewFileStore(cfg.DataDir, factory)
	service := dashboard.NewServiceFromStore(backing, factory)

	rows, err := service.Data()
	if err != nil {
		log.Fatalf("Failed to build dashboard data: %v", err)
	}
	if len(rows) == 0 {
		fmt.Println("No approved nominations yet.")
		return
	}

	metrics := dashboard.Summarize(rows)
	fmt.Printf("Heroes recognized: %d\n", metrics.Heroes)
	fmt.Printf("GEMS distributed:  %d\n", metrics.TotalGems)
	fmt.Printf("Average per hero:  %d\n", metrics.AverageGems)
	fmt.Printf("Nominations:       %d\n\n", metrics.Nominations)

	pillars := dashboard.Pillars(rows)
	ranking := dashboard.HeroRanking(rows)

	fmt.Println("Hero ranking:")
	for _, entry := range ranking {
		fmt.Printf("  %s %s (%s) — %d GEMS (%.2f%%)\n",
			entry.Label, entry.Hero, entry.Team, entry.Gems, entry.Percent)
	}

	fmt.Println("\nGEMS by pillar:")
	for _, share := range dashboard.PillarDistribution(rows) {
		fmt.Printf("  %-20s %d\n", share.Pillar, share.Gems)
	}

	if *out != "" {
		if err := exportRanking(*out, ranking, pillars); err != nil {
			log.Fatalf("Failed to export ranking: %v", err)
		}
		fmt.Printf("\nRanking exported to %s\n", *out)
	}
}

// exportRanking writes the ranking table, pillar pivot included, using the
// same semicolon delimiter as the data files.
func exportRanking(path string, ranking []dashboard.RankingEntry, pillars []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	w.Comma = ';'

	header := []string{"position", "hero", "team", "gems", "percent"}
	header = append(header, pillars...)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}

	for _, entry := range ranking {
		record := []string{
			strconv.Itoa(entry.Position),
			entry.Hero,
			entry.Team,
			strconv.Itoa(entry.Gems),
			strconv.FormatFloat(entry.Percent, 'f', 2, 64),
		}
		for _, pillar := range pillars {
			record = append(record, strconv.Itoa(entry.Pillars[pillar]))
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

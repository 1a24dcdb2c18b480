package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/internal/content"
	"github.com/Harshitjoshi133/DeepShiva/internal/infra"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"
	"github.com/Harshitjoshi133/DeepShiva/internal/store"

	gormLogger "gorm.io/gorm/logger"
)

// seeder loads the reference catalog (yoga poses, emergency contacts) into
// the database and optionally records a dashboard metrics snapshot.
func main() {
	env := flag.String("env", "development", "config environment")
	configPath := flag.String("config", "", "explicit config file")
	catalogPath := flag.String("catalog", "", "catalog YAML; empty uses the embedded catalog")
	snapshot := flag.Bool("snapshot", true, "record dashboard metrics after seeding")
	dryRun := flag.Bool("dry-run", false, "print what would be seeded without writing")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	if *dryRun {
		fmt.Printf("[dry-run] %d yoga poses, %d emergency contacts\n", len(catalog.YogaPoses), len(catalog.EmergencyContacts))
		return
	}

	logs, err := logger.NewManager(logger.Config{Environment: cfg.Log.Environment, Dir: cfg.Log.Dir})
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logs.Close()
	dbLog := logs.GetLogger("seeder")

	db, err := infra.OpenDatabase(&cfg.Database, dbLog, gormLogger.Discard)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer infra.CloseDatabase(db)

	if err := infra.AutoMigrate(db, dbLog, models.All()...); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s := store.NewGormStore(db)
	res, err := s.SeedCatalog(ctx, catalog)
	if err != nil {
		log.Fatalf("seed catalog: %v", err)
	}
	fmt.Printf("seeded %d yoga poses, %d emergency contacts\n", res.YogaPoses, res.EmergencyContacts)

	if *snapshot {
		n, err := s.SnapshotDashboardMetrics(ctx, time.Now())
		if err != nil {
			log.Fatalf("snapshot metrics: %v", err)
		}
		fmt.Printf("recorded %d dashboard metrics\n", n)
	}
}

func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	return content.LoadFile(path)
}

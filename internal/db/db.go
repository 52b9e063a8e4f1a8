package db

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/config"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/user"
)

var DB *gorm.DB

func Init(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto-migrate owner account
	if err := db.AutoMigrate(&user.User{}); err != nil {
		return err
	}

	// Auto-migrate tracker models. Reference data first so the m2m join
	// tables pick up the right foreign keys.
	if err := db.AutoMigrate(
		&tracker.Domain{},
		&tracker.Tag{},
		&tracker.Goal{},
		&tracker.ScheduleEntry{},
		&tracker.TrackerEntry{},
		&tracker.GoalReview{},
		&tracker.DomainReview{},
	); err != nil {
		return err
	}

	DB = db
	log.Printf("Database connected and migrated")
	return nil
}

package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/buckneer/CheckMateV2/config"
	"github.com/buckneer/CheckMateV2/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var (
		db  *gorm.DB
		err error
	)
	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey so handlers can report them as conflicts.
	switch cfg.DBDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	default:
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
	}
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates the schema including the unique indexes that back the
// duplicate checks done inside each request transaction.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Professor{},
		&models.Student{},
		&models.Subject{},
		&models.Enrollment{},
		&models.ClassSession{},
		&models.Attendance{},
	)
}

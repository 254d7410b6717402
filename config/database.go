package config

import (
	"os"
	"servsphere-backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("Failed to connect database")
	}

	DB = db
}

// Migrate runs the schema migration. Shared with tests, which call it
// against an in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
		&models.ReminderLog{},
	); err != nil {
		return err
	}

	// Slot exclusivity backstop: at most one live booking per
	// (provider, date, time). Partial indexes work on both postgres
	// and sqlite.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_provider_slot
		ON bookings (provider_id, date, time)
		WHERE status IN ('pending', 'confirmed')`).Error
}

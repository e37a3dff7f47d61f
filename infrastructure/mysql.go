package infrastructure

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"candidate-screener/domain"
)

// NewMySQLConnection opens the database and migrates the screening schema.
// An unreachable database is a configuration error and fatal at startup.
func NewMySQLConnection(dsn string) *gorm.DB {
	if dsn == "" {
		logrus.Fatal("DB_DSN is not set in environment")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	logrus.Info("connected to MySQL and migrated schema")
	return db
}

// Migrate creates or updates the screening tables. Safe to call repeatedly.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Candidate{},
		&domain.Session{},
		&domain.RoundResult{},
		&domain.ScreeningJob{},
	)
}

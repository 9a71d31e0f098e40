package postgres

import (
	"log"

	"github.com/arplanets/livesight-order-service/internal/config"
	"github.com/arplanets/livesight-order-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.OrderConfig) *gorm.DB {
	dsn := cfg.OrderDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	if err := db.AutoMigrate(&models.OrderModel{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v\n", err.Error())
	}

	return db
}

package infra

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tripmate/internal/models/db_models"
)

// InitPostgresql opens the database and migrates the planner tables. An empty
// dsn disables persistence and returns a nil handle.
func InitPostgresql(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		log.Println("POSTGRES_URL not set, plan storage and retrieval are disabled")
		return nil, nil
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := connectionPool.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		log.Printf("Error enabling pgvector extension: %v", err)
		return nil, fmt.Errorf("enable pgvector: %w", err)
	}

	if err := connectionPool.AutoMigrate(&db_models.TravelDocument{}, &db_models.TravelPlan{}); err != nil {
		log.Printf("Error migrating database: %v", err)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
	}
	return tx
}

func ReleaseTransaction(tx *gorm.DB, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			log.Printf("Error rollback transaction: %v", rollbackErr)
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		log.Printf("Error committing transaction: %v", commitErr)
		return commitErr
	}
	return nil
}

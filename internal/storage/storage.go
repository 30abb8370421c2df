package storage

import (
	"sync"

	"agilcurn/internal/config"
	"agilcurn/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	once sync.Once
	db   *gorm.DB
)

func GetDb() *gorm.DB {
	once.Do(func() {
		log := logger.GetLogger()

		connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
			Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
		})
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			panic(err)
		}

		db = connection
	})

	return db
}

// Transaction runs fn against a transactional handle. Multi-row invariants
// (invitation confirm + role grant, project cascade delete) go through here.
func Transaction(fn func(tx *gorm.DB) error) error {
	return GetDb().Transaction(fn)
}

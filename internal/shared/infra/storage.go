package infra

import (
	"database/sql"
	"fmt"
	"log"

	"medshare/internal/shared/storage"
	"medshare/internal/shared/storage/dbutil"
	postgresdriver "medshare/internal/shared/storage/driver/postgres"
	sqlitedriver "medshare/internal/shared/storage/driver/sqlite"
	"medshare/internal/shared/storage/mongostore"
	"medshare/internal/shared/storage/repository"
)

// NewPersistentStore 按驱动类型创建持久化存储，SQL 驱动会自动建表
func NewPersistentStore(driver, databaseURL, dbName string) (storage.PersistentStore, error) {
	switch dbutil.DriverType(driver) {
	case dbutil.DriverMongoDB, "":
		store, err := mongostore.NewStore(databaseURL, dbName)
		if err != nil {
			return nil, fmt.Errorf("init mongodb store: %w", err)
		}
		log.Printf("[infra] Storage: mongodb (%s)", dbName)
		return store, nil

	case dbutil.DriverPostgres:
		db, err := postgresdriver.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		return newSQLStore(db, postgresdriver.NewDialect())

	case dbutil.DriverSQLite:
		db, err := sqlitedriver.Open(databaseURL)
		if err != nil {
			return nil, err
		}
		return newSQLStore(db, sqlitedriver.NewDialect())

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func newSQLStore(db *sql.DB, dialect dbutil.Dialect) (storage.PersistentStore, error) {
	if err := dialect.AutoMigrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s schema: %w", dialect.DriverType(), err)
	}
	log.Printf("[infra] Storage: %s", dialect.DriverType())
	return repository.NewStore(db, dialect), nil
}

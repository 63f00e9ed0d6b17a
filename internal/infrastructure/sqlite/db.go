// Package sqlite implementa los repositorios sobre SQLite con GORM (variante sin conexión).
package sqlite

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/tacom-api/pkg/logger"
)

// Open abre la base SQLite en path (":memory:" para tests) y aplica AutoMigrate.
// SQLite admite un solo escritor: el pool queda limitado a una conexión.
func Open(path string, log *logger.Logger) (*gorm.DB, error) {
	if log == nil {
		log = logger.Nop()
	}
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&companyModel{},
		&equipmentModel{},
		&movementModel{},
		&defectTypeModel{},
		&userModel{},
	); err != nil {
		return nil, fmt.Errorf("sqlite: automigrate: %w", err)
	}
	log.Info().Str("path", path).Msg("base SQLite lista")
	return db, nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dsn(path string) string {
	if path == ":memory:" {
		return path
	}
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

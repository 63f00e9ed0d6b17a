// Package bootstrap arma la persistencia, la caché y la política de movimientos a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tacom-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tacom-api/pkg/config"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

// Store repositorios del backend elegido.
type Store struct {
	Driver    string
	Companies repository.CompanyRepository
	Equipment repository.EquipmentRepository
	Movements repository.MovementRepository
	Defects   repository.DefectTypeRepository
	Users     repository.UserRepository
	TxRunner  appmovement.TxRunner
	// Classification: el esquema guarda defecto reclamado/encontrado.
	Classification bool
	close          func()
}

// Close libera las conexiones del backend.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore conecta el backend configurado en STORAGE_DRIVER y resuelve la capacidad de clasificación.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		return openSQLite(cfg, log)
	case config.StoragePostgres:
		return openPostgres(ctx, cfg, log)
	}
	return nil, fmt.Errorf("backend de almacenamiento desconocido %q", cfg.Storage.Driver)
}

func openSQLite(cfg *config.Config, log *logger.Logger) (*Store, error) {
	db, err := sqlite.Open(cfg.Storage.SQLitePath, log)
	if err != nil {
		return nil, err
	}
	// El esquema SQLite lo crea AutoMigrate y siempre trae las columnas de clasificación.
	classification := cfg.Movement.DefectClassification != "off"
	log.Info().Str("path", cfg.Storage.SQLitePath).Bool("classification", classification).Msg("almacenamiento SQLite")
	return &Store{
		Driver:         config.StorageSQLite,
		Companies:      sqlite.NewCompanyRepository(db),
		Equipment:      sqlite.NewEquipmentRepository(db),
		Movements:      sqlite.NewMovementRepository(db),
		Defects:        sqlite.NewDefectTypeRepository(db),
		Users:          sqlite.NewUserRepository(db),
		TxRunner:       sqlite.NewTxRunner(db),
		Classification: classification,
		close: func() {
			if err := sqlite.Close(db); err != nil {
				log.Error().Err(err).Msg("cerrar SQLite")
			}
		},
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Store, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	var classification bool
	switch cfg.Movement.DefectClassification {
	case "on":
		classification = true
	case "off":
		classification = false
	default:
		probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		classification, err = postgres.HasDefectClassification(probeCtx, pool)
		cancel()
		if err != nil {
			pool.Close()
			return nil, err
		}
	}
	log.Info().Bool("classification", classification).Msg("almacenamiento PostgreSQL")

	return &Store{
		Driver:         config.StoragePostgres,
		Companies:      postgres.NewCompanyRepository(pool),
		Equipment:      postgres.NewEquipmentRepository(pool),
		Movements:      postgres.NewMovementRepository(pool, classification),
		Defects:        postgres.NewDefectTypeRepository(pool),
		Users:          postgres.NewUserRepository(pool),
		TxRunner:       postgres.NewTxRunner(pool, classification),
		Classification: classification,
		close:          pool.Close,
	}, nil
}

package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/bootstrap"
	"github.com/jhoicas/tacom-api/internal/infrastructure/cache"
	"github.com/jhoicas/tacom-api/pkg/config"
)

func TestPolicy_FamiliaIncluyeCasa(t *testing.T) {
	p, err := bootstrap.Policy(config.MovementConfig{
		HomeCompanyID:        "home",
		MaintenancePartnerID: "partner",
		HomeFamilyIDs:        []string{"home-sp", "home"},
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "home-sp"}, p.HomeFamily)
	assert.True(t, p.SupportsDefectClassification)
	assert.True(t, p.IsHome("home-sp"))
}

func TestPolicy_FaltaConfiguracion(t *testing.T) {
	_, err := bootstrap.Policy(config.MovementConfig{MaintenancePartnerID: "partner"}, true)
	assert.Error(t, err)
	_, err = bootstrap.Policy(config.MovementConfig{HomeCompanyID: "home"}, true)
	assert.Error(t, err)
}

func TestPolicy_SocioNoPuedeSerDeLaCasa(t *testing.T) {
	_, err := bootstrap.Policy(config.MovementConfig{
		HomeCompanyID:        "home",
		MaintenancePartnerID: "partner",
		HomeFamilyIDs:        []string{"partner"},
	}, true)
	assert.Error(t, err)

	_, err = bootstrap.Policy(config.MovementConfig{
		HomeCompanyID:        "home",
		MaintenancePartnerID: "home",
	}, true)
	assert.Error(t, err)
}

func TestBatchMode(t *testing.T) {
	assert.Equal(t, appmovement.BatchSequential, bootstrap.BatchMode(config.MovementConfig{BatchMode: "sequential"}))
	assert.Equal(t, appmovement.BatchAtomic, bootstrap.BatchMode(config.MovementConfig{BatchMode: "atomic"}))
	assert.Equal(t, appmovement.BatchAtomic, bootstrap.BatchMode(config.MovementConfig{}))
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		Storage:  config.StorageConfig{Driver: config.StorageSQLite, SQLitePath: ":memory:"},
		Movement: config.MovementConfig{DefectClassification: "auto"},
	}
	store, err := bootstrap.OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer store.Close()

	assert.True(t, store.Classification, "SQLite siempre tiene las columnas de clasificación")
	assert.Equal(t, config.StorageSQLite, store.Driver)
	assert.NotNil(t, store.TxRunner)

	cfg.Movement.DefectClassification = "off"
	legacy, err := bootstrap.OpenStore(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer legacy.Close()
	assert.False(t, legacy.Classification)
}

func TestOpenCache_Memoria(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Driver: "memory", TTLSeconds: 30}}
	c, closeFn, err := bootstrap.OpenCache(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &cache.MemoryCache{}, c)
}

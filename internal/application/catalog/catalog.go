// Package catalog expone lecturas cacheadas del catálogo de defectos y del directorio de empresas.
package catalog

import (
	"context"
	"time"

	"github.com/jhoicas/tacom-api/internal/application/ports"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/repository"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

const (
	keyDefectList   = "defects:list"
	keyDefectActive = "defects:active"
	keyDefectPrefix = "defects:id:"
	keyCompany      = "companies:id:"
)

// Defects lectura del catálogo de defectos a través de la caché.
// Un fallo de la caché no corta la lectura: se registra y se va al repositorio.
type Defects struct {
	repo  repository.DefectTypeRepository
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewDefects construye el catálogo cacheado.
func NewDefects(repo repository.DefectTypeRepository, cache ports.Cache, ttl time.Duration, log *logger.Logger) *Defects {
	if log == nil {
		log = logger.Nop()
	}
	return &Defects{repo: repo, cache: cache, ttl: ttl, log: log.Component("catalog")}
}

// List devuelve el catálogo ordenado por código.
func (d *Defects) List(ctx context.Context, activeOnly bool) ([]*entity.DefectType, error) {
	key := keyDefectList
	if activeOnly {
		key = keyDefectActive
	}
	var cached []*entity.DefectType
	if d.get(ctx, key, &cached) {
		return cached, nil
	}
	list, err := d.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	d.set(ctx, key, list)
	return list, nil
}

// GetByID devuelve una clasificación o nil si no existe.
func (d *Defects) GetByID(ctx context.Context, id string) (*entity.DefectType, error) {
	var cached entity.DefectType
	if d.get(ctx, keyDefectPrefix+id, &cached) {
		return &cached, nil
	}
	item, err := d.repo.GetByID(ctx, id)
	if err != nil || item == nil {
		return item, err
	}
	d.set(ctx, keyDefectPrefix+id, item)
	return item, nil
}

// Create persiste una clasificación e invalida los listados.
func (d *Defects) Create(ctx context.Context, item *entity.DefectType) error {
	if err := d.repo.Create(ctx, item); err != nil {
		return err
	}
	d.invalidate(ctx, keyDefectList, keyDefectActive)
	return nil
}

func (d *Defects) get(ctx context.Context, key string, dst any) bool {
	return getCached(ctx, d.cache, d.log, key, dst)
}

func (d *Defects) set(ctx context.Context, key string, value any) {
	setCached(ctx, d.cache, d.log, key, value, d.ttl)
}

func (d *Defects) invalidate(ctx context.Context, keys ...string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Delete(ctx, keys...); err != nil {
		d.log.Warn().Err(err).Strs("keys", keys).Msg("no se pudo invalidar la caché")
	}
}

// Companies lectura cacheada del directorio de empresas por ID.
type Companies struct {
	repo  repository.CompanyRepository
	cache ports.Cache
	ttl   time.Duration
	log   *logger.Logger
}

// NewCompanies construye el directorio cacheado.
func NewCompanies(repo repository.CompanyRepository, cache ports.Cache, ttl time.Duration, log *logger.Logger) *Companies {
	if log == nil {
		log = logger.Nop()
	}
	return &Companies{repo: repo, cache: cache, ttl: ttl, log: log.Component("catalog")}
}

// GetByID devuelve la empresa o nil si no existe.
func (c *Companies) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var cached entity.Company
	if getCached(ctx, c.cache, c.log, keyCompany+id, &cached) {
		return &cached, nil
	}
	company, err := c.repo.GetByID(ctx, id)
	if err != nil || company == nil {
		return company, err
	}
	setCached(ctx, c.cache, c.log, keyCompany+id, company, c.ttl)
	return company, nil
}

// Forget descarta la entrada de una empresa modificada.
func (c *Companies) Forget(ctx context.Context, id string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, keyCompany+id); err != nil {
		c.log.Warn().Err(err).Str("company_id", id).Msg("no se pudo invalidar la caché")
	}
}

func getCached(ctx context.Context, cache ports.Cache, log *logger.Logger, key string, dst any) bool {
	if cache == nil {
		return false
	}
	ok, err := cache.Get(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		return false
	}
	return ok
}

func setCached(ctx context.Context, cache ports.Cache, log *logger.Logger, key string, value any, ttl time.Duration) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
	}
}

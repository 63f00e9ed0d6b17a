package bootstrap

import (
	"fmt"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
	"github.com/jhoicas/tacom-api/pkg/config"
)

// Policy arma la política de empresas. La familia "casa" siempre incluye la empresa casa.
func Policy(cfg config.MovementConfig, classification bool) (engine.Policy, error) {
	if cfg.HomeCompanyID == "" {
		return engine.Policy{}, fmt.Errorf("HOME_COMPANY_ID no configurado")
	}
	if cfg.MaintenancePartnerID == "" {
		return engine.Policy{}, fmt.Errorf("MAINTENANCE_PARTNER_ID no configurado")
	}
	if cfg.MaintenancePartnerID == cfg.HomeCompanyID {
		return engine.Policy{}, fmt.Errorf("MAINTENANCE_PARTNER_ID no puede ser la empresa casa")
	}
	family := []string{cfg.HomeCompanyID}
	for _, id := range cfg.HomeFamilyIDs {
		if id == cfg.MaintenancePartnerID {
			return engine.Policy{}, fmt.Errorf("HOME_FAMILY_IDS no puede incluir el socio de mantenimiento %q", id)
		}
		if id != cfg.HomeCompanyID {
			family = append(family, id)
		}
	}
	return engine.Policy{
		HomeCompanyID:                cfg.HomeCompanyID,
		MaintenancePartnerID:         cfg.MaintenancePartnerID,
		HomeFamily:                   family,
		SupportsDefectClassification: classification,
	}, nil
}

// BatchMode traduce MOVEMENT_BATCH_MODE.
func BatchMode(cfg config.MovementConfig) appmovement.BatchMode {
	if cfg.BatchMode == string(appmovement.BatchSequential) {
		return appmovement.BatchSequential
	}
	return appmovement.BatchAtomic
}

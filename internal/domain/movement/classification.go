package movement

import (
	"strings"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// ClassifyDefect deriva la categoría del código: DR reclamado, DE/ER encontrado, resto outro.
func ClassifyDefect(code string) entity.DefectCategory {
	c := strings.ToUpper(strings.TrimSpace(code))
	switch {
	case strings.HasPrefix(c, "DR"):
		return entity.DefectReported
	case strings.HasPrefix(c, "DE"), strings.HasPrefix(c, "ER"):
		return entity.DefectFound
	default:
		return entity.DefectOther
	}
}

// Rules describe qué campos pide un formulario para un tipo de movimiento.
type Rules struct {
	Type                   Type     `json:"type"`
	RequiresDestination    bool     `json:"requires_destination"`
	DestinationLocked      bool     `json:"destination_locked"`
	DestinationCompanyID   string   `json:"destination_company_id,omitempty"`
	OriginLocked           bool     `json:"origin_locked"`
	OriginCompanyID        string   `json:"origin_company_id,omitempty"`
	OriginChoices          []string `json:"origin_choices,omitempty"`
	RequiresClassification bool     `json:"requires_classification"`
	ClassificationFields   []string `json:"classification_fields,omitempty"`
}

// FieldRules devuelve las reglas de formulario de un tipo bajo la política dada.
func FieldRules(t Type, p Policy) Rules {
	r := Rules{
		Type:                   t,
		RequiresDestination:    t.RequiresDestination(),
		OriginLocked:           true,
		RequiresClassification: t.RequiresClassification(),
	}
	switch t {
	case TypeInternalTransfer:
		r.DestinationLocked = true
		r.DestinationCompanyID = p.HomeCompanyID
		r.OriginCompanyID = p.HomeCompanyID
	case TypeSendToMaintenance:
		r.DestinationLocked = true
		r.DestinationCompanyID = p.MaintenancePartnerID
		r.OriginLocked = false
		r.OriginChoices = p.OriginChoices()
	}
	if r.RequiresClassification {
		if p.SupportsDefectClassification {
			r.ClassificationFields = []string{"defect_reported_id", "other_defect_id", "defect_found_id"}
		} else {
			r.ClassificationFields = []string{"maintenance_type_id"}
		}
	}
	return r
}

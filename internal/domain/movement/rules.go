package movement

import (
	"strings"
	"time"

	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// Resolve aplica las reglas de empresa fijas por tipo:
//   - transferencia interna: origen y destino son la empresa casa.
//   - envío a mantenimiento: destino es el socio de mantenimiento; el origen lo elige el usuario.
//
// Los demás tipos quedan como vienen.
func Resolve(req Request, p Policy) Request {
	switch req.Type {
	case TypeInternalTransfer:
		req.OriginCompanyID = p.HomeCompanyID
		req.DestinationCompanyID = p.HomeCompanyID
	case TypeSendToMaintenance:
		req.DestinationCompanyID = p.MaintenancePartnerID
	}
	req.MovementDate = DateOnly(req.MovementDate)
	return req
}

// Validate revisa una solicitud ya resuelta. Devuelve *domain.ValidationError con el campo culpable.
func Validate(req Request, p Policy) error {
	if len(req.EquipmentIDs) == 0 {
		return domain.NewValidationError("equipment_ids", "seleccione al menos un equipo")
	}
	seen := make(map[string]struct{}, len(req.EquipmentIDs))
	for _, id := range req.EquipmentIDs {
		if strings.TrimSpace(id) == "" {
			return domain.NewValidationError("equipment_ids", "identificador de equipo vacío")
		}
		if _, dup := seen[id]; dup {
			return domain.NewValidationError("equipment_ids", "equipo repetido: "+id)
		}
		seen[id] = struct{}{}
	}
	if req.Type == "" {
		return domain.NewValidationError("movement_type", "tipo de movimiento requerido")
	}
	if !req.Type.Valid() {
		return domain.NewValidationError("movement_type", "tipo de movimiento desconocido: "+string(req.Type))
	}
	if req.MovementDate.IsZero() {
		return domain.NewValidationError("movement_date", "fecha del movimiento requerida")
	}

	switch {
	case req.Type.RequiresDestination():
		if req.DestinationCompanyID == "" {
			return domain.NewValidationError("destination_company_id", "empresa destino requerida")
		}
	case req.Type == TypeInternalTransfer:
		if p.HomeCompanyID == "" {
			return domain.NewValidationError("destination_company_id", "empresa casa no configurada")
		}
	case req.Type == TypeSendToMaintenance:
		if p.MaintenancePartnerID == "" {
			return domain.NewValidationError("destination_company_id", "socio de mantenimiento no configurado")
		}
		if req.OriginCompanyID == "" {
			return domain.NewValidationError("origin_company_id", "empresa origen requerida")
		}
		if !p.IsHome(req.OriginCompanyID) {
			return domain.NewValidationError("origin_company_id", "el origen debe ser una empresa de la casa")
		}
	}

	if req.Type.RequiresClassification() {
		if p.SupportsDefectClassification {
			if req.DefectReportedID == "" && req.OtherDefectID == "" {
				return domain.NewValidationError("defect_reported_id", "informe el defecto reclamado u otro defecto")
			}
		} else if req.MaintenanceTypeID == "" {
			return domain.NewValidationError("maintenance_type_id", "tipo de mantenimiento requerido")
		}
	}
	if !p.SupportsDefectClassification {
		// Sin las columnas DR/DE en el esquema sólo existe el tipo de mantenimiento legado.
		for _, f := range []struct{ field, id string }{
			{"defect_reported_id", req.DefectReportedID},
			{"other_defect_id", req.OtherDefectID},
			{"defect_found_id", req.DefectFoundID},
		} {
			if f.id != "" {
				return domain.NewValidationError(f.field, "clasificación de defectos no disponible; use maintenance_type_id")
			}
		}
	}

	if req.StatusOverride != "" && !req.StatusOverride.Valid() {
		return domain.NewValidationError("status", "estado desconocido: "+string(req.StatusOverride))
	}
	return nil
}

// Patch actualización parcial de un equipo; nil = sin cambio.
type Patch struct {
	Status        *entity.EquipmentStatus
	CompanyID     *string
	ExitDate      *time.Time
	InMaintenance *bool
	Type          *string
	Model         *string
}

// IsEmpty informa si el patch no modifica nada.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.CompanyID == nil && p.ExitDate == nil &&
		p.InMaintenance == nil && p.Type == nil && p.Model == nil
}

// Apply aplica el patch sobre el equipo.
func (p Patch) Apply(e *entity.Equipment) {
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.CompanyID != nil {
		e.CompanyID = *p.CompanyID
	}
	if p.ExitDate != nil {
		d := *p.ExitDate
		e.ExitDate = &d
	}
	if p.InMaintenance != nil {
		e.InMaintenance = *p.InMaintenance
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Model != nil {
		e.Model = *p.Model
	}
}

// DerivePatch calcula los cambios de un equipo para una solicitud resuelta y validada.
// Es determinista: aplicar dos veces el mismo patch deja el equipo igual.
func DerivePatch(req Request, current *entity.Equipment, p Policy) Patch {
	var patch Patch
	override := req.StatusOverride

	switch req.Type {
	case TypeExit:
		patch.CompanyID = ptr(req.DestinationCompanyID)
		patch.ExitDate = ptr(req.MovementDate)
		if override != "" {
			patch.Status = ptr(override)
		}

	case TypeReturn, TypeReturnFromMaintenance:
		patch.Status = ptr(orDefault(override, entity.StatusAvailable))
		patch.InMaintenance = ptr(false)

	case TypeMaintenance:
		patch.Status = ptr(orDefault(override, entity.StatusAwaitingMaintenance))
		patch.InMaintenance = ptr(true)

	default:
		def := entity.StatusInUse
		if req.Type == TypeSendToMaintenance {
			def = entity.StatusAwaitingMaintenance
			patch.InMaintenance = ptr(true)
		}
		status := orDefault(override, def)

		holder := current.CompanyID
		if req.DestinationCompanyID != "" {
			holder = req.DestinationCompanyID
			patch.CompanyID = ptr(req.DestinationCompanyID)
		}
		// Una empresa fuera de la casa no puede tener equipos "em_manutencao".
		if status == entity.StatusInMaintenance && !p.IsHome(holder) {
			status = entity.StatusInUse
		}
		patch.Status = ptr(status)
	}

	if t := strings.TrimSpace(req.EquipmentType); t != "" {
		patch.Type = ptr(t)
	}
	if m := strings.TrimSpace(req.EquipmentModel); m != "" {
		patch.Model = ptr(m)
	}
	return patch
}

// BuildMovement arma el registro de auditoría para un equipo.
// Si la solicitud no trae origen, se toma la empresa que tenía el equipo.
func BuildMovement(req Request, current *entity.Equipment, now time.Time) entity.Movement {
	origin := req.OriginCompanyID
	if origin == "" {
		origin = current.CompanyID
	}
	return entity.Movement{
		EquipmentID:          current.ID,
		Type:                 string(req.Type),
		MovementDate:         req.MovementDate,
		OriginCompanyID:      origin,
		DestinationCompanyID: req.DestinationCompanyID,
		ResponsibleUser:      req.ResponsibleUser,
		Notes:                req.Notes,
		DefectReportedID:     req.ReportedOrOther(),
		DefectFoundID:        req.DefectFoundID,
		MaintenanceTypeID:    req.MaintenanceTypeID,
		CreatedAt:            now,
	}
}

func orDefault(s, def entity.EquipmentStatus) entity.EquipmentStatus {
	if s != "" {
		return s
	}
	return def
}

func ptr[T any](v T) *T { return &v }

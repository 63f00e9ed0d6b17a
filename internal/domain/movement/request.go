package movement

import (
	"strings"
	"time"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
)

// Request solicitud de movimiento aplicada a uno o más equipos con los mismos parámetros.
type Request struct {
	Type                 Type
	EquipmentIDs         []string
	MovementDate         time.Time
	OriginCompanyID      string
	DestinationCompanyID string
	MaintenanceTypeID    string // legado
	DefectReportedID     string
	DefectFoundID        string
	OtherDefectID        string
	StatusOverride       entity.EquipmentStatus
	Notes                string
	EquipmentType        string
	EquipmentModel       string
	ResponsibleUser      string
}

// SetDefectReported fija el defecto reclamado y limpia "outro defeito".
func (r *Request) SetDefectReported(id string) {
	r.DefectReportedID = id
	if id != "" {
		r.OtherDefectID = ""
	}
}

// SetOtherDefect fija "outro defeito" y limpia el defecto reclamado.
func (r *Request) SetOtherDefect(id string) {
	r.OtherDefectID = id
	if id != "" {
		r.DefectReportedID = ""
	}
}

// ReportedOrOther devuelve la referencia que ocupa la columna de defecto reclamado.
func (r Request) ReportedOrOther() string {
	if r.DefectReportedID != "" {
		return r.DefectReportedID
	}
	return r.OtherDefectID
}

// RequestBuilder construye una Request paso a paso; el último defecto elegido gana.
type RequestBuilder struct {
	req Request
}

// NewRequest inicia un builder para el tipo dado.
func NewRequest(t Type) *RequestBuilder {
	return &RequestBuilder{req: Request{Type: t}}
}

func (b *RequestBuilder) Equipment(ids ...string) *RequestBuilder {
	b.req.EquipmentIDs = append(b.req.EquipmentIDs, ids...)
	return b
}

// On fija la fecha del movimiento, truncada al día.
func (b *RequestBuilder) On(date time.Time) *RequestBuilder {
	b.req.MovementDate = DateOnly(date)
	return b
}

func (b *RequestBuilder) From(companyID string) *RequestBuilder {
	b.req.OriginCompanyID = companyID
	return b
}

func (b *RequestBuilder) To(companyID string) *RequestBuilder {
	b.req.DestinationCompanyID = companyID
	return b
}

func (b *RequestBuilder) MaintenanceType(id string) *RequestBuilder {
	b.req.MaintenanceTypeID = id
	return b
}

func (b *RequestBuilder) DefectReported(id string) *RequestBuilder {
	b.req.SetDefectReported(id)
	return b
}

func (b *RequestBuilder) OtherDefect(id string) *RequestBuilder {
	b.req.SetOtherDefect(id)
	return b
}

func (b *RequestBuilder) DefectFound(id string) *RequestBuilder {
	b.req.DefectFoundID = id
	return b
}

func (b *RequestBuilder) Status(s entity.EquipmentStatus) *RequestBuilder {
	b.req.StatusOverride = s
	return b
}

func (b *RequestBuilder) Notes(notes string) *RequestBuilder {
	b.req.Notes = notes
	return b
}

// Correct fija tipo y modelo de equipo a normalizar durante el movimiento.
func (b *RequestBuilder) Correct(equipmentType, model string) *RequestBuilder {
	b.req.EquipmentType = equipmentType
	b.req.EquipmentModel = model
	return b
}

func (b *RequestBuilder) By(displayName string) *RequestBuilder {
	b.req.ResponsibleUser = displayName
	return b
}

// Build devuelve una copia de la solicitud.
func (b *RequestBuilder) Build() Request {
	r := b.req
	r.EquipmentIDs = append([]string(nil), b.req.EquipmentIDs...)
	return r
}

// DateOnly descarta la hora conservando la fecha de calendario (UTC).
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta "2006-01-02".
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, strings.TrimSpace(s))
}

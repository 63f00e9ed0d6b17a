// Package movement contiene el motor de reglas de movimientos de equipos:
// dada una solicitud decide qué campos son obligatorios y cómo cambia cada equipo.
// No depende de infraestructura; los casos de uso lo invocan con datos ya cargados.
package movement

import (
	"fmt"
	"strings"
)

// Type tipo de movimiento (conjunto cerrado).
type Type string

const (
	TypeAllocation            Type = "movimentacao"
	TypeMaintenance           Type = "manutencao"
	TypeReturn                Type = "devolucao"
	TypeReturnFromMaintenance Type = "retorno_manutencao"
	TypeInternalTransfer      Type = "transferencia_interna"
	TypeSendToMaintenance     Type = "envio_manutencao"
	TypeEntry                 Type = "entrada"
	TypeExit                  Type = "saida"
	TypeTransfer              Type = "transferencia"
)

type typeRules struct {
	requiresDestination    bool
	requiresClassification bool
}

var types = map[Type]typeRules{
	TypeAllocation:            {requiresDestination: true},
	TypeMaintenance:           {requiresClassification: true},
	TypeReturn:                {requiresClassification: true},
	TypeReturnFromMaintenance: {requiresClassification: true},
	TypeInternalTransfer:      {requiresClassification: true},
	TypeSendToMaintenance:     {requiresClassification: true},
	TypeEntry:                 {},
	TypeExit:                  {requiresDestination: true},
	TypeTransfer:              {requiresDestination: true},
}

// Types devuelve todos los tipos en orden estable.
func Types() []Type {
	return []Type{
		TypeAllocation, TypeMaintenance, TypeReturn, TypeReturnFromMaintenance,
		TypeInternalTransfer, TypeSendToMaintenance, TypeEntry, TypeExit, TypeTransfer,
	}
}

// Valid informa si el tipo pertenece al conjunto.
func (t Type) Valid() bool {
	_, ok := types[t]
	return ok
}

// RequiresDestination: el usuario debe elegir la empresa destino.
func (t Type) RequiresDestination() bool { return types[t].requiresDestination }

// RequiresClassification: el movimiento exige clasificación de defecto.
func (t Type) RequiresClassification() bool { return types[t].requiresClassification }

// ParseType normaliza y valida un tipo recibido como texto.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("tipo de movimiento desconocido: %q", s)
	}
	return t, nil
}

// Policy configuración de resolución de empresas, resuelta una sola vez al arrancar.
type Policy struct {
	HomeCompanyID        string
	MaintenancePartnerID string
	// HomeFamily empresas propias permitidas como origen de envío a mantenimiento.
	HomeFamily []string
	// SupportsDefectClassification: el esquema tiene los campos DR/DE; si no, se usa el campo legado.
	SupportsDefectClassification bool
}

// IsHome informa si la empresa pertenece a la familia "casa".
func (p Policy) IsHome(companyID string) bool {
	if companyID == "" {
		return false
	}
	if companyID == p.HomeCompanyID {
		return true
	}
	for _, id := range p.HomeFamily {
		if id == companyID {
			return true
		}
	}
	return false
}

// OriginChoices lista de orígenes permitidos para envío a mantenimiento (casa primero, sin repetidos).
func (p Policy) OriginChoices() []string {
	out := make([]string, 0, len(p.HomeFamily)+1)
	seen := make(map[string]struct{}, len(p.HomeFamily)+1)
	for _, id := range append([]string{p.HomeCompanyID}, p.HomeFamily...) {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/infrastructure/pdf"
)

func TestRenderSlip_GeneraPDF(t *testing.T) {
	data := appmovement.SlipData{
		Movement: &entity.Movement{
			ID: "mov-1", EquipmentID: "eq1", Type: "envio_manutencao",
			MovementDate:    time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			OriginCompanyID: "home", DestinationCompanyID: "partner",
			ResponsibleUser: "Ana", Notes: "Equipamento não liga após queda",
			DefectReportedID: "DR01", DefectFoundID: "DE99",
		},
		Equipment:      &entity.Equipment{ID: "eq1", SerialNumber: "SN-001", Type: "rastreador", Status: entity.StatusAwaitingMaintenance},
		Origin:         &entity.Company{ID: "home", Name: "TACOM", TaxID: "11222333000181", Region: "SP"},
		DefectReported: &entity.DefectType{Code: "DR01", Description: "Não liga"},
	}

	doc, err := pdf.NewMarotoSlipGenerator("TACOM").RenderSlip(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestRenderSlip_SinMovimiento(t *testing.T) {
	_, err := pdf.NewMarotoSlipGenerator("TACOM").RenderSlip(context.Background(), appmovement.SlipData{})
	assert.Error(t, err)
}

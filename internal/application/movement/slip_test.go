package movement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
)

type captureRenderer struct {
	got appmovement.SlipData
}

func (r *captureRenderer) RenderSlip(_ context.Context, data appmovement.SlipData) ([]byte, error) {
	r.got = data
	return []byte("%PDF-fake"), nil
}

func TestSlip_ResuelveReferencias(t *testing.T) {
	s := newStore(item("E1", entity.StatusAvailable, "home"))
	uc, _ := newUseCase(s, appmovement.BatchAtomic)
	res, err := uc.Register(context.Background(), engine.NewRequest(engine.TypeSendToMaintenance).
		Equipment("E1").On(testDate).From("home").DefectReported("DR01").By("Ana").Build())
	require.NoError(t, err)

	r := &captureRenderer{}
	slip := appmovement.NewSlipUseCase(memMovementRepo{s}, memEquipmentRepo{s}, companies, defects, r)

	doc, name, err := slip.Generate(context.Background(), res.Movements[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(doc))
	assert.Equal(t, "guia-envio_manutencao-20240301.pdf", name)

	require.NotNil(t, r.got.Equipment)
	assert.Equal(t, "SN-E1", r.got.Equipment.SerialNumber)
	assert.Equal(t, "Tacom", r.got.Origin.Name)
	assert.Equal(t, "Oficina", r.got.Destination.Name)
	require.NotNil(t, r.got.DefectReported)
	assert.Equal(t, "DR01", r.got.DefectReported.Code)
	assert.Nil(t, r.got.DefectFound)
	assert.Nil(t, r.got.MaintenanceType)
}

func TestSlip_MovimientoInexistente(t *testing.T) {
	s := newStore()
	slip := appmovement.NewSlipUseCase(memMovementRepo{s}, memEquipmentRepo{s}, companies, defects, &captureRenderer{})

	_, _, err := slip.Generate(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

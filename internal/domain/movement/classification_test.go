package movement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tacom-api/internal/domain/entity"
	"github.com/jhoicas/tacom-api/internal/domain/movement"
)

func TestClassifyDefect(t *testing.T) {
	cases := map[string]entity.DefectCategory{
		"DR01":   entity.DefectReported,
		" dr-02": entity.DefectReported,
		"DE10":   entity.DefectFound,
		"ER3":    entity.DefectFound,
		"OUT":    entity.DefectOther,
		"":       entity.DefectOther,
	}
	for code, want := range cases {
		assert.Equal(t, want, movement.ClassifyDefect(code), code)
	}
}

func TestParseType(t *testing.T) {
	typ, err := movement.ParseType(" Envio_Manutencao ")
	assert.NoError(t, err)
	assert.Equal(t, movement.TypeSendToMaintenance, typ)

	_, err = movement.ParseType("venda")
	assert.Error(t, err)
}

func TestFieldRules(t *testing.T) {
	r := movement.FieldRules(movement.TypeInternalTransfer, policy)
	assert.True(t, r.DestinationLocked)
	assert.Equal(t, "home", r.DestinationCompanyID)
	assert.Equal(t, "home", r.OriginCompanyID)
	assert.True(t, r.RequiresClassification)

	r = movement.FieldRules(movement.TypeSendToMaintenance, policy)
	assert.True(t, r.DestinationLocked)
	assert.False(t, r.OriginLocked)
	assert.Equal(t, "partner", r.DestinationCompanyID)
	assert.Equal(t, []string{"home", "home-sp"}, r.OriginChoices)

	r = movement.FieldRules(movement.TypeExit, policy)
	assert.True(t, r.RequiresDestination)
	assert.False(t, r.DestinationLocked)
	assert.False(t, r.RequiresClassification)
	assert.Empty(t, r.ClassificationFields)

	legacy := policy
	legacy.SupportsDefectClassification = false
	r = movement.FieldRules(movement.TypeMaintenance, legacy)
	assert.Equal(t, []string{"maintenance_type_id"}, r.ClassificationFields)
}

func TestPolicy_IsHome(t *testing.T) {
	assert.True(t, policy.IsHome("home"))
	assert.True(t, policy.IsHome("home-sp"))
	assert.False(t, policy.IsHome("partner"))
	assert.False(t, policy.IsHome(""))
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/tacom-api/internal/application/dto"
	"github.com/jhoicas/tacom-api/internal/domain"
	"github.com/jhoicas/tacom-api/pkg/logger"
)

func TestParseCSV_Latin1(t *testing.T) {
	src := "codigo;descricao;categoria\nDR01;Não liga;\nDE02;Placa danificada;encontrado\n\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(src)
	require.NoError(t, err)

	rows, err := parseCSV(bytes.NewBufferString(encoded), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Não liga", rows[0][1])
	assert.Equal(t, "encontrado", col(rows[1], 2))
	assert.Equal(t, "", col(rows[0], 5))
}

func TestParseCSV_CharsetDesconocido(t *testing.T) {
	_, err := parseCSV(bytes.NewBufferString("a;b\n"), "ebcdic")
	assert.Error(t, err)
}

type fakeDefects struct {
	seen map[string]bool
}

func (f *fakeDefects) Create(_ context.Context, in dto.CreateDefectTypeRequest) (*dto.DefectTypeResponse, error) {
	if f.seen[in.Code] {
		return nil, domain.ErrDuplicate
	}
	f.seen[in.Code] = true
	return &dto.DefectTypeResponse{Code: in.Code}, nil
}

func TestSeedDefects_SaltaDuplicados(t *testing.T) {
	uc := &fakeDefects{seen: map[string]bool{}}
	rows := [][]string{{"DR01", "Não liga"}, {"DR01", "repetido"}, {"OUT1", "Outro", "OUTRO"}}

	created, skipped := seedDefects(context.Background(), uc, rows, logger.Nop())
	assert.Equal(t, 2, created)
	assert.Equal(t, 1, skipped)
	assert.True(t, uc.seen["OUT1"])
}

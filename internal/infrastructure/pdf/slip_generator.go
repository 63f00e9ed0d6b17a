// Package pdf genera la guía de movimentação que acompaña a un equipo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: tipo de movimiento  │  fecha + responsable          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EQUIPO: serie / tipo / modelo / estado                      │
//	│  ORIGEN  │  DESTINO                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLASIFICACIÓN: reclamado / encontrado / mantenimiento       │
//	│  OBSERVACIONES                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el ID del movimiento + firmas                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appmovement "github.com/jhoicas/tacom-api/internal/application/movement"
	"github.com/jhoicas/tacom-api/internal/domain/entity"
	engine "github.com/jhoicas/tacom-api/internal/domain/movement"
)

var _ appmovement.SlipRenderer = (*MarotoSlipGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Títulos impresos por tipo de movimiento.
var slipTitles = map[engine.Type]string{
	engine.TypeEntry:                 "ENTRADA DE EQUIPAMENTO",
	engine.TypeExit:                  "SAÍDA DE EQUIPAMENTO",
	engine.TypeAllocation:            "MOVIMENTAÇÃO",
	engine.TypeReturn:                "DEVOLUÇÃO",
	engine.TypeMaintenance:           "MANUTENÇÃO",
	engine.TypeTransfer:              "TRANSFERÊNCIA",
	engine.TypeInternalTransfer:      "TRANSFERÊNCIA INTERNA",
	engine.TypeSendToMaintenance:     "ENVIO PARA MANUTENÇÃO",
	engine.TypeReturnFromMaintenance: "RETORNO DE MANUTENÇÃO",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSlipGenerator implementa movement.SlipRenderer usando Maroto v2.
type MarotoSlipGenerator struct {
	issuer string
}

// NewMarotoSlipGenerator construye el generador. issuer aparece como autor del documento.
func NewMarotoSlipGenerator(issuer string) *MarotoSlipGenerator {
	return &MarotoSlipGenerator{issuer: issuer}
}

// RenderSlip genera el PDF y devuelve sus bytes.
func (g *MarotoSlipGenerator) RenderSlip(_ context.Context, data appmovement.SlipData) ([]byte, error) {
	if data.Movement == nil {
		return nil, fmt.Errorf("pdf: guía sin movimiento")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guia de movimentação", true).
		WithAuthor(g.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data.Movement))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(equipmentRow(data.Movement, data.Equipment))
	m.AddRows(companiesRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if r := classificationRow(data); r != nil {
		m.AddRows(r)
	}
	if strings.TrimSpace(data.Movement.Notes) != "" {
		m.AddRows(notesRows(data.Movement.Notes)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data.Movement))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(mv *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("GUIA DE MOVIMENTAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(nonEmpty(slipTitles[engine.Type(mv.Type)], strings.ToUpper(mv.Type)), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New("Data: "+mv.MovementDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2,
			}),
			text.New("Responsável: "+nonEmpty(mv.ResponsibleUser, "-"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func equipmentRow(mv *entity.Movement, e *entity.Equipment) core.Row {
	detail := "Equipamento " + mv.EquipmentID + " não encontrado"
	serial := mv.EquipmentID
	if e != nil {
		serial = e.SerialNumber
		detail = fmt.Sprintf("Tipo: %s   |   Modelo: %s   |   Status: %s   |   Região: %s",
			nonEmpty(e.Type, "-"), nonEmpty(e.Model, "-"), string(e.Status), nonEmpty(e.Region, "-"))
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("EQUIPAMENTO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Nº de série: "+serial, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func companiesRow(data appmovement.SlipData) core.Row {
	block := func(label, id string, c *entity.Company) core.Col {
		name, extra := nonEmpty(id, "-"), ""
		if c != nil {
			name = c.Name
			extra = strings.TrimSpace(fmt.Sprintf("%s %s", formatCNPJ(c.TaxID), c.Region))
		}
		return col.New(6).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(extra, props.Text{Size: 8, Top: 12, Color: colorGray}),
		)
	}
	return row.New(18).Add(
		block("ORIGEM", data.Movement.OriginCompanyID, data.Origin),
		block("DESTINO", data.Movement.DestinationCompanyID, data.Destination),
	)
}

func classificationRow(data appmovement.SlipData) core.Row {
	var lines []string
	add := func(label, id string, d *entity.DefectType) {
		switch {
		case d != nil:
			lines = append(lines, fmt.Sprintf("%s: %s - %s", label, d.Code, d.Description))
		case id != "":
			lines = append(lines, fmt.Sprintf("%s: %s", label, id))
		}
	}
	add("Defeito reclamado", data.Movement.DefectReportedID, data.DefectReported)
	add("Defeito encontrado", data.Movement.DefectFoundID, data.DefectFound)
	add("Tipo de manutenção", data.Movement.MaintenanceTypeID, data.MaintenanceType)
	if len(lines) == 0 {
		return nil
	}

	c := col.New(12).Add(text.New("CLASSIFICAÇÃO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}))
	for i, l := range lines {
		c.Add(text.New(l, props.Text{Size: 9, Top: float64(6 + 5*i)}))
	}
	return row.New(float64(8 + 5*len(lines))).Add(c)
}

// notesRows: observaciones partidas en líneas de 110 caracteres.
func notesRows(notes string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("OBSERVAÇÕES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, chunk := range splitEvery(strings.Join(strings.Fields(notes), " "), 110) {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// footerRow: QR con el ID del movimiento + espacio para firmas.
func footerRow(mv *entity.Movement) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(mv.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Movimento "+mv.ID, props.Text{Size: 7, Top: 2, Left: 3, Color: colorGray}),
			text.New("Entregue por: ______________________________", props.Text{Size: 9, Top: 16, Left: 3}),
			text.New("Recebido por: ______________________________", props.Text{Size: 9, Top: 28, Left: 3}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatCNPJ formatea 14 dígitos como 00.000.000/0000-00; otro valor se devuelve igual.
func formatCNPJ(s string) string {
	if len(s) != 14 {
		return s
	}
	return s[:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:]
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	var parts []string
	r := []rune(s)
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}

// Package pdf genera el reporte PDF del historial de auditoría de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa            │  Reporte de auditoría + fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Ítem | Depto | Acción | Usuario | Motivo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/stock-api/internal/application/stock"
	"github.com/jhoicas/stock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

var _ stock.ReportRenderer = (*AuditReportRenderer)(nil)

// AuditReportRenderer implementa stock.ReportRenderer usando Maroto v2.
type AuditReportRenderer struct{}

// NewAuditReportRenderer construye el generador.
func NewAuditReportRenderer() *AuditReportRenderer { return &AuditReportRenderer{} }

// RenderAuditReport genera el PDF y devuelve sus bytes.
func (g *AuditReportRenderer) RenderAuditReport(
	_ context.Context,
	company *entity.Company,
	logs []*entity.StockHistory,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de auditoría de stock", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(logs)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(logs)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company *entity.Company, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE AUDITORÍA DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.UTC().Format("02/01/2006 15:04 UTC"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2),
		h("Ítem", 3),
		h("Departamento", 2),
		h("Acción", 1),
		h("Usuario", 2),
		h("Motivo", 2),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableRows(logs []*entity.StockHistory) []core.Row {
	rows := make([]core.Row, 0, len(logs))
	for i, h := range logs {
		c := func(value string, size int) core.Col {
			return col.New(size).Add(text.New(value, props.Text{Size: 7, Top: 1.5, Left: 1}))
		}
		r := row.New(6).Add(
			c(h.Timestamp.UTC().Format("2006-01-02 15:04"), 2),
			c(h.StockItemName, 3),
			c(h.DepartmentName, 2),
			c(h.Action, 1),
			c(nonEmpty(h.Username, h.UserID), 2),
			c(reasonText(h.Reason), 2),
		)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		rows = append(rows, r)
	}
	return rows
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(fmt.Sprintf("Total de registros: %d", total), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func reasonText(r *string) string {
	if r == nil {
		return "-"
	}
	return *r
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

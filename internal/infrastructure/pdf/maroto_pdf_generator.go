// Package pdf implementa el reporte de reclamación en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la app        │  N° Reclamación + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ASEGURADO: Nombre + email + teléfono                       │
//	│  PRODUCTO / PÓLIZA: ramo, cobertura, número y vigencia      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECLAMACIÓN: monto, estado, radicación, procesamiento      │
//	│  DESCRIPCIÓN + NOTAS                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BITÁCORA: Fecha | De | A | Usuario | Notas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el número + leyenda                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Seguros-api/internal/application/report"
	"github.com/jhoicas/Seguros-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ClaimPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se formatean en es-CO.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{
		appName: nonEmpty(appName, "Seguros"),
		printer: message.NewPrinter(language.MustParse("es-CO")),
	}
}

// GenerateClaimPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateClaimPDF(_ context.Context, r *report.ClaimReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reclamación "+r.Claim.ClaimNumber, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(&r.Client))
	m.AddRows(g.productRow(&r.Product, r.Policy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.claimRows(&r.Claim)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(historyHeaderRow())
	m.AddRows(historyRows(r.History)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(r *report.ClaimReport) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Reporte de reclamación", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECLAMACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.Claim.ClaimNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+r.GeneratedAt.Format(dateLayout+" 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clientRow(c *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ASEGURADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Estado: %s",
				nonEmpty(c.Email, "—"),
				nonEmpty(c.Phone, "—"),
				c.Status,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func (g *MarotoPDFGenerator) productRow(p *entity.Product, policy *entity.Policy) core.Row {
	policyLine := "Póliza: no vigente o eliminada"
	if policy != nil {
		end := "sin fecha fin"
		if policy.EndDate != nil {
			end = policy.EndDate.Format(dateLayout)
		}
		policyLine = fmt.Sprintf("Póliza: %s   |   Vigencia: %s – %s   |   Estado almacenado: %s",
			policy.PolicyNumber, policy.StartDate.Format(dateLayout), end, policy.Status)
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s (%s)   |   Cobertura máxima: %s",
				p.Name, p.Type, g.money(p.Coverage),
			), props.Text{Size: 9, Top: 6}),
			text.New(policyLine, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func (g *MarotoPDFGenerator) claimRows(c *entity.Claim) []core.Row {
	processed := "—"
	if c.ProcessedDate != nil {
		processed = c.ProcessedDate.Format(dateLayout)
	}
	processor := "—"
	if c.ProcessedBy != nil {
		processor = *c.ProcessedBy
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Top: 5})
	}

	rows := []core.Row{
		row.New(12).Add(
			col.New(3).Add(label("Monto reclamado"), value(g.money(c.Amount))),
			col.New(3).Add(label("Estado"), value(string(c.Status))),
			col.New(3).Add(label("Radicada"), value(c.SubmittedDate.Format(dateLayout))),
			col.New(3).Add(label("Procesada"), value(processed+" / "+processor)),
		),
		row.New(5).Add(col.New(12).Add(label("Descripción"))),
	}
	for _, chunk := range splitEvery(c.Description, 110) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 8, Left: 2}),
		)))
	}
	if c.Notes != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(label("Notas"))))
		for _, chunk := range splitEvery(c.Notes, 110) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 8, Left: 2, Color: colorGray}),
			)))
		}
	}
	return rows
}

func historyHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("De", 2, align.Center),
		h("A", 2, align.Center),
		h("Usuario", 2, align.Left),
		h("Notas", 4, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func historyRows(history []*entity.StatusChange) []core.Row {
	if len(history) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin cambios de estado registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(history))
	for _, h := range history {
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(h.ChangedAt.Format(dateLayout+" 15:04"), props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(h.OldStatus, "—"), props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(h.NewStatus, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(shortID(h.ChangedBy), "—"), props.Text{Size: 7, Top: 1})),
			col.New(4).Add(text.New(h.Notes, props.Text{Size: 7, Top: 1})),
		))
	}
	return result
}

func footerRow(r *report.ClaimReport) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(r.Claim.ClaimNumber, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Escanee el código para ubicar la reclamación en el back-office.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Documento informativo. Las decisiones sobre la reclamación constan en la bitácora.", props.Text{
				Size: 7, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea con separadores locales y dos decimales. Ej: 1234567.5 → "$1.234.567,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%v", number.Decimal(d.InexactFloat64(), number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	runes := []rune(s)
	var parts []string
	for len(runes) > n {
		parts = append(parts, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

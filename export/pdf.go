// Package export renders grouped supervision data into downloadable
// PDF and Excel documents.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/stats"

	"github.com/go-pdf/fpdf"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"ID", 25},
	{"Evento", 65},
	{"Fecha", 30},
	{"Estado", 25},
	{"Monto", 35},
}

// PDF renders the supervision report: a summary block followed by one table
// per user with a trailing approved-total row. Empty input yields a document
// with only the summary.
func PDF(groups []*stats.UserGroup) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.Cell(0, 10, tr("Reporte de Supervisión"))
	doc.Ln(12)

	var totalApproved, totalPending float64
	for _, g := range groups {
		for _, r := range g.Reports {
			if r.Status == models.StatusApproved {
				totalApproved += r.CalculatedAmount
			} else {
				totalPending += r.CalculatedAmount
			}
		}
	}

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, tr(fmt.Sprintf("Generado el: %s", time.Now().Format("02/01/2006"))))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Total General Aprobado: $%.2f", totalApproved)))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Total General Pendiente: $%.2f", totalPending)))
	doc.Ln(6)
	doc.Cell(0, 6, tr(fmt.Sprintf("Usuarios: %d", len(groups))))
	doc.Ln(10)

	for _, g := range groups {
		if len(g.Reports) == 0 {
			continue
		}

		doc.SetFont("Helvetica", "B", 12)
		doc.Cell(0, 7, tr(fmt.Sprintf("%s (%s)", g.User.Name, g.User.Email)))
		doc.Ln(8)

		doc.SetFont("Helvetica", "B", 10)
		doc.SetFillColor(22, 160, 133)
		doc.SetTextColor(255, 255, 255)
		for _, col := range pdfColumns {
			doc.CellFormat(col.width, 7, tr(col.title), "1", 0, "L", true, 0, "")
		}
		doc.Ln(-1)

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(0, 0, 0)
		var userTotal float64
		for _, r := range g.Reports {
			if r.Status == models.StatusApproved {
				userTotal += r.CalculatedAmount
			}
			cells := []string{
				shortID(r.ID),
				r.EventName,
				r.EventDate.Format("02/01/2006"),
				string(r.Status),
				fmt.Sprintf("$%.2f", r.CalculatedAmount),
			}
			for i, col := range pdfColumns {
				doc.CellFormat(col.width, 6, tr(cells[i]), "1", 0, "L", false, 0, "")
			}
			doc.Ln(-1)
		}

		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(pdfColumns[0].width, 6, "", "1", 0, "L", false, 0, "")
		doc.CellFormat(pdfColumns[1].width, 6, tr("Total Aprobado"), "1", 0, "L", false, 0, "")
		doc.CellFormat(pdfColumns[2].width, 6, "", "1", 0, "L", false, 0, "")
		doc.CellFormat(pdfColumns[3].width, 6, "", "1", 0, "L", false, 0, "")
		doc.CellFormat(pdfColumns[4].width, 6, tr(fmt.Sprintf("$%.2f", userTotal)), "1", 0, "L", false, 0, "")
		doc.Ln(12)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

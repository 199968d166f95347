package export

import (
	"fmt"

	"github.com/JoelBarbosa07/nomina-variable/models"
	"github.com/JoelBarbosa07/nomina-variable/stats"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Reportes"

var excelHeaders = []string{"ID", "Usuario", "Evento", "Fecha", "Estado", "Monto"}

// Excel renders the supervision report as a single-sheet workbook: one row
// per report plus a per-user approved-total row.
func Excel(groups []*stats.UserGroup) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	widths := []float64{10, 25, 30, 15, 15, 15}
	for i, header := range excelHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, col+"1", header); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, g := range groups {
		var userTotal float64
		for _, r := range g.Reports {
			if r.Status == models.StatusApproved {
				userTotal += r.CalculatedAmount
			}
			values := []interface{}{
				r.ID,
				g.User.Name,
				r.EventName,
				r.EventDate.Format("02/01/2006"),
				string(r.Status),
				fmt.Sprintf("$%.2f", r.CalculatedAmount),
			}
			if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
				return nil, err
			}
			row++
		}

		if userTotal > 0 {
			values := []interface{}{"", "", "Total a Pagar", "", "", fmt.Sprintf("$%.2f", userTotal)}
			if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

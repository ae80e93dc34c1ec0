// Package report renders analytics reports as PDF documents.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"coverapi/internal/model"
)

// Report is the content of one generated report.
type Report struct {
	Type        string
	Period      string
	From        time.Time
	GeneratedAt time.Time
	Stats       model.Stats
}

// Filename is the attachment name of the rendered report.
func (r Report) Filename() string {
	return fmt.Sprintf("report-%s-%s.pdf", r.Type, r.GeneratedAt.Format("20060102"))
}

// Render lays the report out on a single A4 page.
func Render(r Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Rapport "+r.Type, true)
	pdf.SetCreator("coverapi", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Rapport "+r.Type), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Période : %s (depuis le %s)", r.Period, r.From.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Généré le "+r.GeneratedAt.Format("02/01/2006 15:04 MST")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	rows := []struct {
		label string
		value int
	}{
		{"Utilisateurs inscrits", r.Stats.TotalUsers},
		{"Utilisateurs actifs (15 min)", r.Stats.ActiveUsers},
		{"Lettres de motivation aujourd'hui", r.Stats.CoverLettersToday},
		{"Fichiers envoyés aujourd'hui", r.Stats.UploadsToday},
		{"Lettres de motivation sur la période", r.Stats.CoverLettersInRange},
		{"Fichiers envoyés sur la période", r.Stats.UploadsInRange},
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(120, 8, tr("Indicateur"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 8, tr("Valeur"), "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(120, 8, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, strconv.Itoa(row.value), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

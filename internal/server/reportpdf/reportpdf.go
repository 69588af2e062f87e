// Package reportpdf renders a patient's diagnostic reports as a PDF document.
package reportpdf

import (
	"bytes"
	"fmt"

	"github.com/dmitrijs2005/carebook/internal/server/models"
	"github.com/phpdave11/gofpdf"
)

const dateLayout = "2006-01-02 15:04"

// Build lays out one section per report, oldest first as given.
func Build(patient models.PublicIdentity, reports []*models.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Informe de "+patient.Name+" "+patient.LastName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Carebook - Informes")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("Paciente: %s %s", patient.Name, patient.LastName)))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr("Email: "+patient.Email))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Informes: %d", len(reports)))
	pdf.Ln(10)

	if len(reports) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.Cell(0, 7, "Sin informes registrados.")
		pdf.Ln(7)
	}

	for i, r := range reports {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, fmt.Sprintf("Informe %d - %s", i+1, r.CreatedAt.Format(dateLayout)))
		pdf.Ln(8)

		pdf.SetFont("Helvetica", "", 11)
		field(pdf, tr, "Diagnostico", r.Diagnostic)
		field(pdf, tr, "Progreso", r.Progress)
		field(pdf, tr, "Finalizado", r.Finished)
		field(pdf, tr, "Bitacora", r.Bitacora)
		if r.ExerciseID != nil {
			field(pdf, tr, "Ejercicio", *r.ExerciseID)
		}
		field(pdf, tr, "Profesional", r.ProfesionalID)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func field(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	if value == "" {
		return
	}
	pdf.MultiCell(0, 6, tr(label+": "+value), "", "L", false)
}

package reservations

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

const voucherDateLayout = "02/01/2006"

// voucherLines is the labelled content of a voucher, in print order
func voucherLines(r *Reservation) [][2]string {
	guide := unknownGuideName
	if r.Guide != nil && r.Guide.FullName != "" {
		guide = r.Guide.FullName
	}

	dates := r.StartDate.Format(voucherDateLayout)
	if !r.EndDate.IsZero() && !r.EndDate.Equal(r.StartDate) {
		dates = fmt.Sprintf("du %s au %s", r.StartDate.Format(voucherDateLayout), r.EndDate.Format(voucherDateLayout))
	}

	visitTime := r.VisitTime
	if visitTime == "" {
		visitTime = "-"
	}

	return [][2]string{
		{"Référence", r.ID.String()},
		{"Service", r.ServiceName},
		{"Guide", guide},
		{"Dates", dates},
		{"Heure", visitTime},
		{"Rendez-vous", r.Location},
		{"Pèlerins", strings.Join(r.PilgrimNames, ", ")},
		{"Total", fmt.Sprintf("%d %s", r.TotalPrice, r.Currency)},
		{"Statut", r.Status.Label()},
	}
}

// RenderVoucher prints the reservation as a one-page A4 PDF and returns it
// with a download file name
func RenderVoucher(r *Reservation, issuedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252; translate the French accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Bon de réservation"), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("BON DE RÉSERVATION"))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range voucherLines(r) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(40, 7, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 7, tr(line[1]), "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf(
		"Émis le %s. Présentez ce bon à votre guide au point de rendez-vous.",
		issuedAt.Format(voucherDateLayout),
	)), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render voucher: %w", err)
	}

	filename := fmt.Sprintf("RESERVATION_%s.pdf", strings.ToUpper(r.ID.String()[:8]))
	return buf.Bytes(), filename, nil
}

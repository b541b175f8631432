// Package printer renders printable artifacts for the dashboard: QR labels
// for machines and one-page PDF summaries for requests.
package printer

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/veltmach/procboard/internal/stages"
	"github.com/veltmach/procboard/internal/upstream"
)

// GenerateMachineLabel creates a single A6 label PDF for a machine: a QR
// code of the serial number plus the identifying text lines.
func GenerateMachineLabel(machine *upstream.Machine) ([]byte, error) {
	// A6 label stock (105x148mm); not a named gofpdf size.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: 105, Ht: 148},
	})
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	qrPng, err := qrcode.Encode(machine.SerialNumber, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR: %w", err)
	}

	imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	reader := bytes.NewReader(qrPng)
	pdf.RegisterImageOptionsReader("qr_serial", imgOptions, reader)

	// A6 is 105mm wide; center a 60mm QR.
	pdf.ImageOptions("qr_serial", (105-60)/2, 12, 60, 60, false, imgOptions, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.SetXY(8, 78)
	pdf.CellFormat(89, 8, machine.SerialNumber, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(89, 6, fmt.Sprintf("%s %s", machine.Brand, machine.Model), "", 1, "C", false, 0, "")
	location := machine.Location
	if location == "" {
		location = "N/A"
	}
	pdf.CellFormat(89, 6, "Location: "+location, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render label PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateRequestSummary creates a one-page PDF summary of a request:
// header, stage progress, quotes and documents.
func GenerateRequestSummary(req *upstream.Request) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Request #%d - %s", req.ID, req.ClientID), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, req.Description, "", "L", false)
	pdf.Ln(4)

	// Stage progress line
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Progress", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, step := range stages.Stepper(req.Status) {
		marker := "[ ]"
		switch step.State {
		case stages.StepCompleted:
			marker = "[x]"
		case stages.StepActive:
			marker = "[>]"
		}
		pdf.CellFormat(0, 5, fmt.Sprintf("%s %d. %s", marker, step.Index, step.Label), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Quotes", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if len(req.Quotes) == 0 {
		pdf.CellFormat(0, 5, "No quotes received.", "", 1, "L", false, 0, "")
	}
	for _, q := range req.Quotes {
		line := fmt.Sprintf("Partner #%d: $%.2f - %s", q.PartnerID, q.Price, q.Details)
		if req.SelectedQuoteID != nil && *req.SelectedQuoteID == q.ID {
			line += " (selected)"
		}
		pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Documents", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if len(req.Documents) == 0 {
		pdf.CellFormat(0, 5, "No documents uploaded.", "", 1, "L", false, 0, "")
	}
	for _, doc := range req.Documents {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s (%s)", doc.DocType, doc.Filename), "", 1, "L", false, 0, "")
	}

	if req.ContractExpiration != nil {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 5, "Contract expires: "+*req.ContractExpiration, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render summary PDF: %w", err)
	}
	return buf.Bytes(), nil
}

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
)

func pdfBand(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 10, tr(title), "1", 1, "C", true, 0, "")
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

// buildWorkPackagePDF renders the PDF summary of a work package.
func buildWorkPackagePDF(r workReport, baseURL string) ([]byte, error) {
	wp := r.WP
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Work Package "+wp.ReferenceCode), false)
	pdf.AddPage()

	// Title band
	pdf.SetFillColor(0, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(190, 12, "Work Package Summary", "1", 1, "C", true, 0, "")
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	qr, err := qrCodeJPEG(newWorkQRPayload(wp, baseURL), 200)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	imageName := "qr_" + wp.ReferenceCode
	opts := gofpdf.ImageOptions{ImageType: "JPEG"}
	pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(qr))
	pdf.ImageOptions(imageName, 165, 28, 35, 35, false, opts, 0, "")

	details := [][2]string{
		{"Reference", wp.ReferenceCode},
		{"Work Name", wp.WorkName},
		{"Scheme", wp.SchemeName},
		{"District / Division", fmt.Sprintf("%s / %s", wp.District, wp.Division)},
		{"WUA", wp.WUAName},
		{"Estimated Cost", wp.EstimatedCost.StringFixed(2)},
		{"Period", fmt.Sprintf("%d months (%d milestones)", wp.PeriodMonths, wp.MilestoneCount)},
		{"Start Date", formatDate(wp.StartDate)},
		{"Created By", wp.CreatedBy},
		{"Generated On", time.Now().Format("2006-01-02 15:04:05")},
	}
	for _, d := range details {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 6, tr(d[0]+":"), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(100, 6, tr(d[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdfBand(pdf, tr, "Components")

	widths := []float64{8, 44, 16, 22, 20, 20, 20, 22, 18}
	headers := []string{"#", "Component", "Unit", "Total", "M1", "M2", "M3", "Sum", "OK"}
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFillColor(255, 255, 255)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 9)
	for i, cr := range r.Components {
		cells := []string{fmt.Sprintf("%d", i+1), tr(cr.Name), tr(cr.Unit), cr.Component.Total.StringFixed(2)}
		for j := 0; j < 3; j++ {
			if j < len(cr.Milestones) && cr.Milestones[j].Set {
				cells = append(cells, cr.Milestones[j].Quantity.StringFixed(2))
			} else {
				cells = append(cells, "-")
			}
		}
		cells = append(cells, cr.Sum.StringFixed(2), yesNo(cr.Reconciled))

		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(245, 245, 245)
		}
		for k, v := range cells {
			align := "R"
			if k == 1 || k == 2 {
				align = "L"
			} else if k == 0 || k == len(cells)-1 {
				align = "C"
			}
			pdf.CellFormat(widths[k], 7, v, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFillColor(255, 255, 255)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 7, r.TotalQty.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdfBand(pdf, tr, "Milestone Schedule")
	pdf.SetFont("Arial", "B", 9)
	schedWidths := []float64{70, 25, 35, 30, 30}
	for i, h := range []string{"Component", "Milestone", "Quantity", "Share (%)", "Due Date"} {
		pdf.CellFormat(schedWidths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, cr := range r.Components {
		for _, m := range cr.Milestones {
			pdf.CellFormat(schedWidths[0], 7, tr(cr.Name), "1", 0, "L", false, 0, "")
			pdf.CellFormat(schedWidths[1], 7, fmt.Sprintf("M%d", m.Index), "1", 0, "C", false, 0, "")
			pdf.CellFormat(schedWidths[2], 7, m.Quantity.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(schedWidths[3], 7, m.Share.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(schedWidths[4], 7, formatDate(m.DueDate), "1", 1, "C", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateWorkPackagePDF godoc
// @Summary      Generate a PDF summary of a work package
// @Tags         export
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path      int  true  "Work package ID"
// @Success      200  {file}    file  "PDF file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id}/pdf [get]
func GenerateWorkPackagePDF(store WorkPackageStore, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		wp, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work package not found"})
			return
		}
		if err != nil {
			utils.Log.Error("Load work package failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load work package"})
			return
		}

		body, err := buildWorkPackagePDF(buildWorkReport(*wp), baseURL)
		if err != nil {
			utils.Log.Error("PDF generation failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s.pdf", wp.ReferenceCode))
		c.Data(http.StatusOK, "application/pdf", body)
	}
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"worksmis/repository"
	"worksmis/utils"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	summarySheet    = "Summary"
	componentsSheet = "Components"
	milestonesSheet = "Milestones"
)

// buildWorkPackageWorkbook renders the composite Excel report of a work package.
func buildWorkPackageWorkbook(r workReport) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	for _, name := range []string{componentsSheet, milestonesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("creating %s sheet: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "#1F4E78"},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "left", Color: "#9BC2E6", Style: 1},
			{Type: "right", Color: "#9BC2E6", Style: 1},
			{Type: "top", Color: "#9BC2E6", Style: 1},
			{Type: "bottom", Color: "#9BC2E6", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	qtyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	// Summary sheet
	wp := r.WP
	summary := [][]interface{}{
		{"Work Package Report"},
		{"Reference Code", wp.ReferenceCode},
		{"Work Name", wp.WorkName},
		{"Scheme", wp.SchemeName},
		{"District", wp.District},
		{"Division", wp.Division},
		{"WUA", wp.WUAName},
		{"Estimated Cost", wp.EstimatedCost.InexactFloat64()},
		{"Period (months)", wp.PeriodMonths},
		{"Milestones", wp.MilestoneCount},
		{"Start Date", formatDate(wp.StartDate)},
		{"Components", len(r.Components)},
		{"Milestones Reconciled", yesNo(r.Reconciled())},
		{"Created By", wp.CreatedBy},
		{"Generated On", time.Now().Format("2006-01-02 15:04:05")},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetCellStyle(summarySheet, "A1", "B1", titleStyle)
	f.SetCellStyle(summarySheet, "B8", "B8", qtyStyle)
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "B", 40)

	// Components sheet
	header := []interface{}{"#", "Component", "Unit", "Total Qty", "No. of Milestones",
		"Milestone 1", "Milestone 2", "Milestone 3", "Sum", "Reconciled", "Milestone Details"}
	if err := f.SetSheetRow(componentsSheet, "A1", &header); err != nil {
		return nil, err
	}
	f.SetCellStyle(componentsSheet, "A1", "K1", headerStyle)

	for i, cr := range r.Components {
		row := []interface{}{i + 1, cr.Name, cr.Unit, cr.Component.Total.InexactFloat64(), cr.Component.MilestoneCount}
		for j := 0; j < 3; j++ {
			if j < len(cr.Milestones) && cr.Milestones[j].Set {
				row = append(row, cr.Milestones[j].Quantity.InexactFloat64())
			} else {
				row = append(row, "")
			}
		}
		row = append(row, cr.Sum.InexactFloat64(), yesNo(cr.Reconciled), cr.Details)

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(componentsSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	if n := len(r.Components); n > 0 {
		last := n + 1
		f.SetCellStyle(componentsSheet, "D2", fmt.Sprintf("I%d", last), qtyStyle)

		totalRow := last + 1
		f.SetCellValue(componentsSheet, fmt.Sprintf("C%d", totalRow), "Total")
		f.SetCellFormula(componentsSheet, fmt.Sprintf("D%d", totalRow), fmt.Sprintf("SUM(D2:D%d)", last))
		f.SetCellStyle(componentsSheet, fmt.Sprintf("C%d", totalRow), fmt.Sprintf("D%d", totalRow), headerStyle)
	}
	f.SetColWidth(componentsSheet, "B", "B", 32)
	f.SetColWidth(componentsSheet, "C", "J", 14)
	f.SetColWidth(componentsSheet, "K", "K", 32)

	// Milestones sheet
	msHeader := []interface{}{"Component", "Unit", "Milestone", "Quantity", "Share of Total (%)", "Due Date"}
	if err := f.SetSheetRow(milestonesSheet, "A1", &msHeader); err != nil {
		return nil, err
	}
	f.SetCellStyle(milestonesSheet, "A1", "F1", headerStyle)

	rowNum := 2
	for _, cr := range r.Components {
		for _, m := range cr.Milestones {
			row := []interface{}{cr.Name, cr.Unit, fmt.Sprintf("M%d", m.Index),
				m.Quantity.InexactFloat64(), m.Share.InexactFloat64(), formatDate(m.DueDate)}
			cell, _ := excelize.CoordinatesToCellName(1, rowNum)
			if err := f.SetSheetRow(milestonesSheet, cell, &row); err != nil {
				return nil, err
			}
			rowNum++
		}
	}
	f.SetColWidth(milestonesSheet, "A", "A", 32)
	f.SetColWidth(milestonesSheet, "B", "F", 16)

	return f, nil
}

// ExportWorkPackageExcel godoc
// @Summary      Export a work package as an Excel report
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        id   path  int  true  "Work package ID"
// @Success      200  {file}  file  "Excel file"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/works/{id}/export_excel [get]
func ExportWorkPackageExcel(store WorkPackageStore) gin.HandlerFunc {
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

		f, err := buildWorkPackageWorkbook(buildWorkReport(*wp))
		if err != nil {
			utils.Log.Error("Build workbook failed", zap.Uint("id", id), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating Excel file"})
			return
		}
		defer f.Close()

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=%s.xlsx", wp.ReferenceCode))
		if err := f.Write(c.Writer); err != nil {
			utils.Log.Error("Write workbook failed", zap.Uint("id", id), zap.Error(err))
		}
	}
}

package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	catalog "windasset-cloud/internal/catalog/domain"
)

// BuildFleetPDF renders the placed-asset register as a PDF.
func BuildFleetPDF(counts catalog.FleetCounts, rows []catalog.FleetRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Asset Register")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Clients: %d", counts.Clients))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Projects: %d", counts.Projects))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Assets: %d (met towers %d, lidars %d, sodars %d)",
		counts.Assets, counts.MetTowers, counts.Lidars, counts.Sodars))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 6, "Client", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Project", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Asset", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Paired With", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Latitude", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Longitude", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Elevation", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.CellFormat(40, 6, row.ClientName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row.ProjectName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, row.AssetName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, row.AssetType, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, row.PairedWithName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, row.Latitude, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, row.Longitude, "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, row.Elevation, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFleetXLSX renders the placed-asset register as an XLSX workbook.
func BuildFleetXLSX(counts catalog.FleetCounts, rows []catalog.FleetRow) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	assetsSheet := "assets"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(assetsSheet)

	_ = f.SetCellValue(summarySheet, "A1", "Asset Register")
	_ = f.SetCellValue(summarySheet, "A3", "Clients")
	_ = f.SetCellValue(summarySheet, "B3", counts.Clients)
	_ = f.SetCellValue(summarySheet, "A4", "Projects")
	_ = f.SetCellValue(summarySheet, "B4", counts.Projects)
	_ = f.SetCellValue(summarySheet, "A5", "Assets")
	_ = f.SetCellValue(summarySheet, "B5", counts.Assets)
	_ = f.SetCellValue(summarySheet, "A6", "Met Towers")
	_ = f.SetCellValue(summarySheet, "B6", counts.MetTowers)
	_ = f.SetCellValue(summarySheet, "A7", "Lidars")
	_ = f.SetCellValue(summarySheet, "B7", counts.Lidars)
	_ = f.SetCellValue(summarySheet, "A8", "Sodars")
	_ = f.SetCellValue(summarySheet, "B8", counts.Sodars)

	headers := []string{"Client", "Project", "Asset", "Type", "Paired With", "Latitude", "Longitude", "Elevation"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(assetsSheet, cell, header)
	}
	for i, row := range rows {
		values := []any{
			row.ClientName, row.ProjectName, row.AssetName, row.AssetType,
			row.PairedWithName, row.Latitude, row.Longitude, row.Elevation,
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(assetsSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

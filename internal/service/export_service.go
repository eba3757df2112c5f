package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/xuri/excelize/v2"
)

// exportPageSize bounds one export run. Dumps beyond this are truncated
// rather than streamed.
const exportPageSize = 10000

// ExportService renders catalog and order dumps as xlsx and PDF
type ExportService struct {
	store repository.Store
}

// NewExportService creates an export service
func NewExportService(store repository.Store) *ExportService {
	return &ExportService{store: store}
}

// ProductsWorkbook dumps the active catalog to a single-sheet workbook
func (s *ExportService) ProductsWorkbook(ctx context.Context) (*excelize.File, error) {
	products, _, err := s.store.Products().List(ctx, repository.CatalogFilter{
		Page: 1, PageSize: exportPageSize, SortDir: "asc", SortBy: "name",
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Products"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "Category", "Brand", "Price", "Original Price",
		"Stock", "Audience", "Country", "Views", "Rating"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, p := range products {
		row := []interface{}{
			p.ID, p.Name, p.Category.Name, p.Brand.Name,
			p.Price.String(), p.OriginalPrice.String(),
			p.StockQuantity, p.TargetAudience, p.CountryOfOrigin,
			p.Views, p.Rating,
		}
		if err := writeValues(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// OrdersWorkbook dumps orders, newest first, to a single-sheet workbook
func (s *ExportService) OrdersWorkbook(ctx context.Context) (*excelize.File, error) {
	orders, _, err := s.store.Orders().List(ctx, repository.OrderFilter{Page: 1, PageSize: exportPageSize})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Order Number", "Date", "Customer", "Status", "Lines", "Total", "Shipping Address"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}

	for i, o := range orders {
		row := []interface{}{
			o.OrderNumber, o.OrderDate.Format("2006-01-02 15:04"),
			o.User.Email, string(o.Status), len(o.Items),
			o.TotalAmount.String(), o.ShippingAddress,
		}
		if err := writeValues(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// OrdersPDF renders the order list as a printable table
func (s *ExportService) OrdersPDF(ctx context.Context) ([]byte, error) {
	orders, _, err := s.store.Orders().List(ctx, repository.OrderFilter{Page: 1, PageSize: exportPageSize})
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Orders", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	type column struct {
		title string
		width float64
	}
	columns := []column{
		{"Order Number", 50},
		{"Date", 40},
		{"Customer", 70},
		{"Status", 30},
		{"Total", 35},
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 220, 220)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, o := range orders {
		pdf.CellFormat(columns[0].width, 7, o.OrderNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[1].width, 7, o.OrderDate.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[2].width, 7, o.User.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[3].width, 7, string(o.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columns[4].width, 7, o.TotalAmount.String(), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AnalyticsCSV renders the dashboard as a two-section CSV: headline metrics
// with growth, then revenue broken down by category.
func (s *ExportService) AnalyticsCSV(dashboard *Dashboard) string {
	var b strings.Builder
	b.WriteString("Metric,Value,Growth(%)\n")
	fmt.Fprintf(&b, "Users,%d,%.1f\n", dashboard.TotalUsers, dashboard.UserGrowthRate)
	fmt.Fprintf(&b, "Orders,%d,%.1f\n", dashboard.TotalOrders, dashboard.OrderGrowthRate)
	fmt.Fprintf(&b, "Revenue,%s,%.1f\n", dashboard.TotalRevenue.StringFixed(2), dashboard.RevenueGrowthRate)
	fmt.Fprintf(&b, "Average Order Value,%s,-\n", dashboard.AverageOrderValue.StringFixed(2))
	fmt.Fprintf(&b, "Conversion,%.1f%%,-\n", dashboard.ConversionRate)

	b.WriteString("\nRevenue by category:\n")
	for _, row := range dashboard.RevenueByCategory {
		fmt.Fprintf(&b, "%s,%s\n", csvEscape(row.Category), row.Revenue.StringFixed(2))
	}
	return b.String()
}

func csvEscape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return writeValues(f, sheet, rowNum, row)
}

func writeValues(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

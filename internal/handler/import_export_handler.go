package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iamsashka/Kursach/internal/middleware"
	"github.com/iamsashka/Kursach/internal/service"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxImportSize bounds the uploaded workbook at 10 MB
const maxImportSize = 10 << 20

// ImportExportHandler exposes the Excel import flow and the data exports
type ImportExportHandler struct {
	imports *service.ImportService
	exports *service.ExportService
}

// NewImportExportHandler creates an import/export handler
func NewImportExportHandler(imports *service.ImportService, exports *service.ExportService) *ImportExportHandler {
	return &ImportExportHandler{imports: imports, exports: exports}
}

// Import applies an uploaded xlsx workbook row by row
func (h *ImportExportHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file upload is required"})
	}
	if fileHeader.Size > maxImportSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file too large"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.FromEcho(c).Error("Failed to open upload", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	defer file.Close()

	result, err := h.imports.Import(c.Request().Context(), middleware.EmailFromContext(c), file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not read workbook"})
	}
	return c.JSON(http.StatusOK, result)
}

// Template downloads an empty workbook with the expected headers
func (h *ImportExportHandler) Template(c echo.Context) error {
	f, err := h.imports.Template()
	if err != nil {
		return respondError(c, err)
	}
	return writeWorkbook(c, f, "import_template.xlsx")
}

// ExportProducts downloads the catalog as xlsx
func (h *ImportExportHandler) ExportProducts(c echo.Context) error {
	f, err := h.exports.ProductsWorkbook(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return writeWorkbook(c, f, fmt.Sprintf("products_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportOrders downloads the order list as xlsx
func (h *ImportExportHandler) ExportOrders(c echo.Context) error {
	f, err := h.exports.OrdersWorkbook(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return writeWorkbook(c, f, fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportOrdersPDF downloads the order list as a printable PDF
func (h *ImportExportHandler) ExportOrdersPDF(c echo.Context) error {
	pdf, err := h.exports.OrdersPDF(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("orders_%s.pdf", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func writeWorkbook(c echo.Context, f *excelize.File, filename string) error {
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

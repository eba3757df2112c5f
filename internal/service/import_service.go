package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamsashka/Kursach/internal/model"
	"github.com/iamsashka/Kursach/internal/repository"
	"github.com/iamsashka/Kursach/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sheet names the import workbook is expected to carry. Sheets may appear in
// any order; missing sheets are skipped.
const (
	SheetCategories = "Categories"
	SheetBrands     = "Brands"
	SheetProducts   = "Products"
	SheetUsers      = "Users"
)

// SheetResult reports one sheet of an import run: how many rows were applied
// and a human-readable error per rejected row.
type SheetResult struct {
	Sheet    string   `json:"sheet"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

func (r *SheetResult) addError(rowNum int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	r.Errors = append(r.Errors, fmt.Sprintf("row %d: %s", rowNum, msg))
}

// ImportResult aggregates all processed sheets
type ImportResult struct {
	Sheets        []SheetResult `json:"sheets"`
	TotalImported int           `json:"total_imported"`
	TotalErrors   int           `json:"total_errors"`
}

// ImportService loads reference data from an Excel workbook. Rows are applied
// independently: a rejected row never blocks the valid rows around it.
type ImportService struct {
	store repository.Store
	audit *AuditService
}

// NewImportService creates an import service
func NewImportService(store repository.Store, audit *AuditService) *ImportService {
	return &ImportService{store: store, audit: audit}
}

// Import reads an xlsx workbook and applies its Categories, Brands, Products
// and Users sheets in that order, so products can reference categories and
// brands created earlier in the same file.
func (s *ImportService) Import(ctx context.Context, actor string, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	result := &ImportResult{}
	for _, sheet := range []string{SheetCategories, SheetBrands, SheetProducts, SheetUsers} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil || idx < 0 {
			continue
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		var sheetResult SheetResult
		switch sheet {
		case SheetCategories:
			sheetResult = s.importCategories(ctx, rows)
		case SheetBrands:
			sheetResult = s.importBrands(ctx, rows)
		case SheetProducts:
			sheetResult = s.importProducts(ctx, rows)
		case SheetUsers:
			sheetResult = s.importUsers(ctx, rows)
		}
		result.Sheets = append(result.Sheets, sheetResult)
		result.TotalImported += sheetResult.Imported
		result.TotalErrors += len(sheetResult.Errors)
	}

	s.audit.Record(ctx, actor, model.AuditActionCreate, "import", 0, nil, result)
	logger.FromContext(ctx).Info("Import finished",
		zap.Int("imported", result.TotalImported),
		zap.Int("errors", result.TotalErrors))
	return result, nil
}

// Template builds an empty workbook with the header rows the importer expects
func (s *ImportService) Template() (*excelize.File, error) {
	f := excelize.NewFile()

	headers := map[string][]string{
		SheetCategories: {"Name", "Description"},
		SheetBrands:     {"Name", "Description", "Country"},
		SheetProducts: {"Name", "Description", "Price", "Stock", "Category", "Brand",
			"Sizes", "Audience", "Country", "Original Price", "Tags"},
		SheetUsers: {"Email", "Username", "Password", "First Name", "Last Name", "Phone", "Role"},
	}

	for _, sheet := range []string{SheetCategories, SheetBrands, SheetProducts, SheetUsers} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		for col, header := range headers[sheet] {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, header); err != nil {
				return nil, err
			}
		}
	}

	// Drop the default sheet excelize creates
	f.DeleteSheet("Sheet1")
	return f, nil
}

func (s *ImportService) importCategories(ctx context.Context, rows [][]string) SheetResult {
	result := SheetResult{Sheet: SheetCategories}

	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNum := i + 1

		name := strings.TrimSpace(cell(row, 0))
		if name == "" {
			result.addError(rowNum, "missing category name")
			continue
		}

		if _, err := s.store.Categories().FindByName(ctx, name); err == nil {
			result.addError(rowNum, "category %q already exists", name)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.addError(rowNum, "%v", err)
			continue
		}

		category := &model.Category{Name: name, Description: strings.TrimSpace(cell(row, 1))}
		if err := s.store.Categories().Create(ctx, category); err != nil {
			result.addError(rowNum, "%v", err)
			continue
		}
		result.Imported++
	}
	return result
}

func (s *ImportService) importBrands(ctx context.Context, rows [][]string) SheetResult {
	result := SheetResult{Sheet: SheetBrands}

	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNum := i + 1

		name := strings.TrimSpace(cell(row, 0))
		if name == "" {
			result.addError(rowNum, "missing brand name")
			continue
		}

		if _, err := s.store.Brands().FindByName(ctx, name); err == nil {
			result.addError(rowNum, "brand %q already exists", name)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.addError(rowNum, "%v", err)
			continue
		}

		brand := &model.Brand{
			Name:        name,
			Description: strings.TrimSpace(cell(row, 1)),
			Country:     strings.TrimSpace(cell(row, 2)),
		}
		if err := s.store.Brands().Create(ctx, brand); err != nil {
			result.addError(rowNum, "%v", err)
			continue
		}
		result.Imported++
	}
	return result
}

func (s *ImportService) importProducts(ctx context.Context, rows [][]string) SheetResult {
	result := SheetResult{Sheet: SheetProducts}

	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNum := i + 1

		product, ok := s.parseProductRow(ctx, row, rowNum, &result)
		if !ok {
			continue
		}
		if err := s.store.Products().Create(ctx, product); err != nil {
			result.addError(rowNum, "%v", err)
			continue
		}
		result.Imported++
	}
	return result
}

func (s *ImportService) parseProductRow(ctx context.Context, row []string, rowNum int, result *SheetResult) (*model.Product, bool) {
	name := strings.TrimSpace(cell(row, 0))
	if name == "" {
		result.addError(rowNum, "missing product name")
		return nil, false
	}

	price, err := decimal.NewFromString(strings.TrimSpace(cell(row, 2)))
	if err != nil || !price.IsPositive() {
		result.addError(rowNum, "invalid price %q", cell(row, 2))
		return nil, false
	}

	stock, err := strconv.Atoi(strings.TrimSpace(cell(row, 3)))
	if err != nil || stock < 0 {
		result.addError(rowNum, "invalid stock quantity %q", cell(row, 3))
		return nil, false
	}

	categoryName := strings.TrimSpace(cell(row, 4))
	if categoryName == "" {
		result.addError(rowNum, "missing category")
		return nil, false
	}
	category, err := s.findOrCreateCategory(ctx, categoryName)
	if err != nil {
		result.addError(rowNum, "%v", err)
		return nil, false
	}

	brandName := strings.TrimSpace(cell(row, 5))
	if brandName == "" {
		result.addError(rowNum, "missing brand")
		return nil, false
	}
	brand, err := s.findOrCreateBrand(ctx, brandName)
	if err != nil {
		result.addError(rowNum, "%v", err)
		return nil, false
	}

	product := &model.Product{
		Name:            name,
		Description:     strings.TrimSpace(cell(row, 1)),
		Price:           price,
		StockQuantity:   stock,
		CategoryID:      category.ID,
		BrandID:         brand.ID,
		Sizes:           strings.TrimSpace(cell(row, 6)),
		CountryOfOrigin: strings.TrimSpace(cell(row, 8)),
	}

	if audience := strings.ToLower(strings.TrimSpace(cell(row, 7))); audience != "" {
		switch audience {
		case model.AudienceMen, model.AudienceWomen, model.AudienceKids, model.AudienceUnisex:
			product.TargetAudience = audience
		default:
			result.addError(rowNum, "unknown audience %q", cell(row, 7))
		}
	}

	if raw := strings.TrimSpace(cell(row, 9)); raw != "" {
		original, err := decimal.NewFromString(raw)
		if err != nil {
			result.addError(rowNum, "invalid original price %q", raw)
		} else {
			product.OriginalPrice = original
		}
	}

	for _, raw := range strings.Split(cell(row, 10), ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag == "" {
			continue
		}
		switch tag {
		case model.TagNew, model.TagSale, model.TagBestseller:
			product.Tags = append(product.Tags, model.ProductTag{Tag: tag})
		default:
			result.addError(rowNum, "unknown tag %q", raw)
		}
	}

	return product, true
}

func (s *ImportService) findOrCreateCategory(ctx context.Context, name string) (*model.Category, error) {
	category, err := s.store.Categories().FindByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category = &model.Category{Name: name}
	if err := s.store.Categories().Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ImportService) findOrCreateBrand(ctx context.Context, name string) (*model.Brand, error) {
	brand, err := s.store.Brands().FindByName(ctx, name)
	if err == nil {
		return brand, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	brand = &model.Brand{Name: name}
	if err := s.store.Brands().Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *ImportService) importUsers(ctx context.Context, rows [][]string) SheetResult {
	result := SheetResult{Sheet: SheetUsers}

	for i, row := range rows {
		if i == 0 || emptyRow(row) {
			continue
		}
		rowNum := i + 1

		email := strings.ToLower(strings.TrimSpace(cell(row, 0)))
		if email == "" {
			result.addError(rowNum, "missing email")
			continue
		}
		username := strings.TrimSpace(cell(row, 1))
		if username == "" {
			result.addError(rowNum, "missing username")
			continue
		}
		password := cell(row, 2)
		if password == "" {
			result.addError(rowNum, "missing password")
			continue
		}

		if _, err := s.store.Users().FindByEmail(ctx, email); err == nil {
			result.addError(rowNum, "user with email %q already exists", email)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.addError(rowNum, "%v", err)
			continue
		}
		if _, err := s.store.Users().FindByUsername(ctx, username); err == nil {
			result.addError(rowNum, "username %q already taken", username)
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			result.addError(rowNum, "%v", err)
			continue
		}

		role := strings.ToLower(strings.TrimSpace(cell(row, 6)))
		if role == "" {
			role = model.RoleCustomer
		}
		if role != model.RoleCustomer && role != model.RoleManager && role != model.RoleAdmin {
			result.addError(rowNum, "unknown role %q", cell(row, 6))
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			result.addError(rowNum, "%v", err)
			continue
		}

		user := &model.User{
			Email:     email,
			Username:  username,
			Password:  string(hashed),
			Role:      role,
			Enabled:   true,
			FirstName: strings.TrimSpace(cell(row, 3)),
			LastName:  strings.TrimSpace(cell(row, 4)),
			Phone:     strings.TrimSpace(cell(row, 5)),
		}
		if err := s.store.Users().Create(ctx, user); err != nil {
			result.addError(rowNum, "%v", err)
			continue
		}
		result.Imported++
	}
	return result
}

// cell returns the column value or "" when the row is short. excelize trims
// trailing empty cells from GetRows output.
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}

func emptyRow(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

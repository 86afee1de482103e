package services

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"supply-portal/models"
)

const categoryColumn = "categoria"

// CatalogService holds the spreadsheet-sourced product list. The file is
// read once at startup and the rows are immutable afterwards; a
// re-uploaded catalog takes effect on the next restart.
type CatalogService struct {
	headers []string
	rows    [][]string
}

func NewCatalogService(path string) (*CatalogService, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.ConfigurationError{Message: "catalog workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	svc, err := NewCatalogFromRows(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("Catalog loaded: %d products from %s", len(svc.rows), path)
	return svc, nil
}

// NewCatalogFromRows builds a catalog from raw rows, row 0 being the
// header.
func NewCatalogFromRows(rows [][]string) (*CatalogService, error) {
	if len(rows) == 0 {
		return nil, &models.ConfigurationError{Message: "catalog is empty, header row expected"}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	return &CatalogService{headers: headers, rows: rows[1:]}, nil
}

func (s *CatalogService) columnIndex(name string) int {
	for i, h := range s.headers {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

func (s *CatalogService) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ListCategories returns the distinct values of the category column in
// first-seen order, skipping empty cells.
func (s *CatalogService) ListCategories() ([]string, error) {
	idx := s.columnIndex(categoryColumn)
	if idx < 0 {
		return nil, &models.ConfigurationError{
			Message: fmt.Sprintf("catalog header is missing the %q column", categoryColumn),
		}
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, row := range s.rows {
		value := s.cell(row, idx)
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		categories = append(categories, value)
	}

	return categories, nil
}

// ListProducts returns one page of catalog rows. Pages are 1-based and an
// out-of-range page yields an empty item list, not an error.
func (s *CatalogService) ListProducts(page, pageSize int) (*models.ProductPage, error) {
	return s.FilterProducts(page, pageSize, "", "")
}

// FilterProducts narrows the row set by category and free-text search
// before paginating, so the returned totals stay consistent with what the
// client can actually page through.
func (s *CatalogService) FilterProducts(page, pageSize int, category, search string) (*models.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	catIdx := -1
	if category != "" {
		catIdx = s.columnIndex(categoryColumn)
		if catIdx < 0 {
			return nil, &models.ConfigurationError{
				Message: fmt.Sprintf("catalog header is missing the %q column", categoryColumn),
			}
		}
	}
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := s.rows
	if category != "" || search != "" {
		filtered = [][]string{}
		for _, row := range s.rows {
			if category != "" && s.cell(row, catIdx) != category {
				continue
			}
			if search != "" && !rowMatches(row, search) {
				continue
			}
			filtered = append(filtered, row)
		}
	}

	totalRows := len(filtered)
	totalPages := int(math.Ceil(float64(totalRows) / float64(pageSize)))

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > totalRows {
		start = totalRows
	}
	if end > totalRows {
		end = totalRows
	}

	items := make([]models.CatalogRow, 0, end-start)
	for _, row := range filtered[start:end] {
		items = append(items, s.mapRow(row))
	}

	return &models.ProductPage{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  totalRows,
		TotalPages: totalPages,
		Items:      items,
	}, nil
}

func (s *CatalogService) mapRow(row []string) models.CatalogRow {
	mapped := models.CatalogRow{}
	for i, header := range s.headers {
		if header == "" {
			continue
		}
		mapped[header] = s.cell(row, i)
	}
	return mapped
}

func rowMatches(row []string, loweredSearch string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), loweredSearch) {
			return true
		}
	}
	return false
}

package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"pricescout/models"
)

// ConfigError reports a problem with the criteria workbook.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("criteria workbook %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// requiredColumns are the headers the criteria sheet must carry. Order in
// the sheet does not matter.
var requiredColumns = []string{"product", "min_price", "max_price", "banned_terms"}

// resultHeader matches the sheets consumed downstream.
var resultHeader = []interface{}{"product_name", "product_price", "product_link"}

// SpreadsheetService reads the criteria workbook and writes result
// workbooks.
type SpreadsheetService struct {
	log *logrus.Logger
}

func NewSpreadsheetService(log *logrus.Logger) *SpreadsheetService {
	return &SpreadsheetService{log: log}
}

// LoadCriteria reads the first sheet of the workbook at path. Columns are
// matched by header name. Rows without a product are skipped; cells beyond
// the row's width read as empty.
func (s *SpreadsheetService) LoadCriteria(path string) ([]models.SearchCriterion, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warnf("Failed to close workbook %s: %v", path, err)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("sheet %q is empty", sheet)}
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &ConfigError{Path: path, Err: fmt.Errorf("missing column %q", name)}
		}
	}

	cell := func(row []string, name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var criteria []models.SearchCriterion
	for i, row := range rows[1:] {
		criterion := models.SearchCriterion{
			Product:     cell(row, "product"),
			MinPrice:    cell(row, "min_price"),
			MaxPrice:    cell(row, "max_price"),
			BannedTerms: cell(row, "banned_terms"),
		}
		if strings.TrimSpace(criterion.Product) == "" {
			s.log.Warnf("Skipping row %d of %s: no product", i+2, path)
			continue
		}
		criteria = append(criteria, criterion)
	}
	if len(criteria) == 0 {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("no usable criteria rows")}
	}

	s.log.Infof("Loaded %d search criteria from %s", len(criteria), path)
	return criteria, nil
}

// WriteResults writes one site's rows to <dir>/<name>.xlsx, creating dir as
// needed. Zero rows still produce a header-only file.
func (s *SpreadsheetService) WriteResults(dir, name string, rows []models.ResultRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory %s: %w", dir, err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.log.Warnf("Failed to close workbook: %v", err)
		}
	}()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &resultHeader); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := []interface{}{row.Name, row.Price, row.Link}
		if err := f.SetSheetRow(sheet, ref, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}

	s.log.Infof("Wrote %d result rows to %s", len(rows), path)
	return path, nil
}

package datamap

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// LoadError reports a dataset that could not be opened or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadDataset reads a tabular file (.xlsx, .xls or .csv) into a Dataset.
// sheet selects a worksheet by name; empty means the first sheet. CSV
// files ignore the sheet argument. The first row becomes the header.
func LoadDataset(path, sheet string) (*Dataset, error) {
	// 1. Check the file exists before dispatching on extension
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path, sheet)
	case ".xls":
		rows, err = readXLS(path, sheet)
	case ".csv":
		rows, err = readCSV(path)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	// 2. Split header from data rows. A dataset with no rows at all has
	// no schema to map against, which is a load failure; a header-only
	// file is fine and just yields zero data rows.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("dataset has no columns")}
	}
	return &Dataset{
		Columns: normalizeHeader(rows[0]),
		Rows:    rows[1:],
	}, nil
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]
	if sheet != "" {
		found := false
		for _, s := range sheets {
			if s == sheet {
				name = s
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	return rows, nil
}

func readXLS(path, sheet string) ([][]string, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLS file: %w", err)
	}

	count := workbook.GetNumberSheets()
	if count == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	index := 0
	if sheet != "" {
		index = -1
		for i := 0; i < count; i++ {
			s, err := workbook.GetSheet(i)
			if err != nil {
				continue
			}
			if s.GetName() == sheet {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, fmt.Errorf("sheet %q not found", sheet)
		}
	}

	s, err := workbook.GetSheet(index)
	if err != nil {
		return nil, fmt.Errorf("failed to open sheet: %w", err)
	}

	var rows [][]string
	for r := 0; r <= s.GetNumberRows(); r++ {
		row, err := s.GetRow(r)
		if err != nil {
			continue
		}
		var cells []string
		for _, col := range row.GetCols() {
			cells = append(cells, toUTF8(col.GetString()))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// toUTF8 re-decodes legacy XLS strings that are not valid UTF-8,
// assuming Windows-1252.
func toUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil {
		return strings.ToValidUTF8(s, "�")
	}
	return decoded
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// normalizeHeader trims header cells and names blank ones "Column N".
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = h
	}
	return out
}

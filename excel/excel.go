package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is the tabular content of the first worksheet of a workbook.
type Sheet struct {
	Name string
	Rows [][]string
}

// Load reads the first worksheet of the workbook at path into memory.
func Load(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("workbook %s has no worksheets", path)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read worksheet %q: %w", name, err)
	}
	return &Sheet{Name: name, Rows: rows}, nil
}

// RowCount is the number of populated rows, header included.
func (s *Sheet) RowCount() int { return len(s.Rows) }

// ColumnCount is the width of the widest populated row.
func (s *Sheet) ColumnCount() int {
	max := 0
	for _, row := range s.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

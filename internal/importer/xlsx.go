package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook loads the first sheet of an .xlsx file into header-keyed
// rows. Raw cell values are requested so date cells surface as their
// spreadsheet serial rather than a locale-formatted string; ParseRowDate
// handles both encodings regardless.
func ReadWorkbook(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) < 2 {
		return nil, nil
	}

	headers := raw[0]
	rows := make([]Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(cells) {
				break
			}
			if cells[i] != "" {
				empty = false
			}
			row[h] = cells[i]
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

package bulkimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

var errEmptyFile = errors.New("file has no header row")

type (
	// RowError reports a parse failure on a single data row.
	// Row numbers are 1-based and include the header row.
	RowError struct {
		Row int    `json:"row"`
		Err string `json:"error"`
	}

	// ParseError aggregates all row failures of one import; an import with
	// any row error is rejected as a whole.
	ParseError struct {
		Rows []RowError
	}

	// Table is tabular input decoded from a delimited-text or spreadsheet
	// file: a header row plus zero or more data rows.
	Table struct {
		header []string
		Rows   [][]string
	}
)

func (e *ParseError) Error() string {
	msgs := make([]string, 0, len(e.Rows))
	for _, re := range e.Rows {
		msgs = append(msgs, fmt.Sprintf("row %d: %s", re.Row, re.Err))
	}
	return "import failed: " + strings.Join(msgs, "; ")
}

func (e *ParseError) Add(row int, err string) {
	e.Rows = append(e.Rows, RowError{Row: row, Err: err})
}

func (e *ParseError) Addf(row int, format string, args ...interface{}) {
	e.Add(row, fmt.Sprintf(format, args...))
}

func (e *ParseError) HasErrors() bool { return len(e.Rows) > 0 }

// OrNil returns the error itself when any row failed, nil otherwise;
// returning e directly would yield a non-nil error interface.
func (e *ParseError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

// ParseCSV decodes comma-delimited text with a header row.
// A header-only file yields a Table with no rows: valid, not an error.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // ragged rows reported per-row later

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	if len(records) == 0 {
		return nil, errEmptyFile
	}
	return newTable(records), nil
}

// ParseXLSX decodes the first worksheet of a spreadsheet, header row first.
func ParseXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening spreadsheet")
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrap(err, "reading sheet "+sheets[0])
	}
	if len(rows) == 0 {
		return nil, errEmptyFile
	}
	return newTable(rows), nil
}

func newTable(records [][]string) *Table {
	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}
	return &Table{header: header, Rows: records[1:]}
}

// Require checks that all named columns are present in the header.
// Misses are reported as a ParseError against row 1, the header row.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, col := range cols {
		if t.index(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		var perr ParseError
		perr.Addf(1, "missing required column(s): %s", strings.Join(missing, ", "))
		return &perr
	}
	return nil
}

func (t *Table) index(col string) int {
	col = strings.ToLower(col)
	for i, h := range t.header {
		if h == col {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value of the named column on the given data row,
// "" when the column is absent or the row is short.
func (t *Table) Cell(row []string, col string) string {
	if i := t.index(col); i >= 0 && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// FloatCell coerces a numeric-looking cell; blank cells yield 0.
func (t *Table) FloatCell(row []string, col string) (float64, error) {
	val := t.Cell(row, col)
	if val == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(val, ",", ""), 64)
	if err != nil {
		return 0, errors.Errorf("column %q: %q is not a number", col, val)
	}
	return f, nil
}

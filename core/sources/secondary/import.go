package secondary

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"stock-reconciler/core/reconcile"
	"stock-reconciler/core/storage"
	"stock-reconciler/core/utils"

	"github.com/minio/minio-go/v7"
	"github.com/xuri/excelize/v2"
)

// Import column headers, compared after normalization.
const (
	ColumnSKU     = "SKU"
	ColumnBalance = "Balance"
	ColumnInOrder = "InOrder"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported import format")
	// ErrEmptyImport is returned when a file has no header row.
	ErrEmptyImport = errors.New("import has no header row")
	// ErrInvalidImportName is returned for names that are not a plain file name.
	ErrInvalidImportName = errors.New("invalid import name")
)

// MissingColumnError reports a required header that was not found.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("import is missing column %q", e.Column)
}

// maxRowErrors bounds how many bad cells are reported for one file.
const maxRowErrors = 20

// RowError reports a quantity cell that is not a whole number. Row is the
// 1-based line in the file, the header being row 1.
type RowError struct {
	Row    int
	Column string
	Value  string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: column %s: %q is not a whole number", e.Row, e.Column, e.Value)
}

// Import is a static secondary warehouse table supplied as a file.
type Import struct {
	name    string
	records map[string]reconcile.SecondaryRecord
}

// Name returns the file name the import was parsed from.
func (i *Import) Name() string { return i.name }

// Len returns the number of distinct keys.
func (i *Import) Len() int { return len(i.records) }

// Snapshot returns the whole table; keys are ignored.
func (i *Import) Snapshot(_ context.Context, _ []string) (map[string]reconcile.SecondaryRecord, error) {
	out := make(map[string]reconcile.SecondaryRecord, len(i.records))
	for k, v := range i.records {
		out[k] = v
	}
	return out, nil
}

// IsImportFile reports whether name has a supported extension.
func IsImportFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// ImportObject returns the storage key of the import called name under prefix.
// Only plain CSV or XLSX file names are accepted.
func ImportObject(prefix, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || !IsImportFile(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidImportName, name)
	}
	return prefix + name, nil
}

// ParseImport reads a CSV or XLSX file, chosen by the extension of name.
// Balance maps to on hand and physical; stopped and allocated are zero.
func ParseImport(name string, r io.Reader) (*Import, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyImport
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	records := make(map[string]reconcile.SecondaryRecord, len(rows)-1)
	var rowErrs []error
	for i, row := range rows[1:] {
		key := strings.TrimSpace(cell(row, idx[ColumnSKU]))
		if key == "" {
			continue
		}

		var qty [2]int
		for j, col := range []string{ColumnBalance, ColumnInOrder} {
			raw := cell(row, idx[col])
			n, err := parseQuantity(raw)
			if err != nil {
				if len(rowErrs) < maxRowErrors {
					rowErrs = append(rowErrs, &RowError{Row: i + 2, Column: col, Value: raw})
				}
				continue
			}
			qty[j] = n
		}

		records[key] = reconcile.SecondaryRecord{
			Key:      key,
			OnHand:   qty[0],
			InOrder:  qty[1],
			Physical: qty[0],
		}
	}
	if len(rowErrs) > 0 {
		return nil, fmt.Errorf("%s: %w", name, errors.Join(rowErrs...))
	}
	return &Import{name: name, records: records}, nil
}

// LoadImport downloads and parses a stored import.
func LoadImport(ctx context.Context, client storage.Client, bucket, object string) (*Import, error) {
	rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get import %s: %w", object, err)
	}
	defer rc.Close()

	imp, err := ParseImport(object, rc)
	if err != nil {
		return nil, err
	}
	imp.name = path.Base(object)
	return imp, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	firstLine, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		reader.Comma = ';'
	}
	return reader.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func headerIndex(header []string) (map[string]int, error) {
	found := make(map[string]int, len(header))
	for i, h := range header {
		found[normalizeHeader(h)] = i
	}

	idx := make(map[string]int, 3)
	for _, col := range []string{ColumnSKU, ColumnBalance, ColumnInOrder} {
		i, ok := found[normalizeHeader(col)]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		idx[col] = i
	}
	return idx, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// parseQuantity accepts plain integers as well as spreadsheet renderings such
// as "1 200" or "12.0". An empty cell is zero.
func parseQuantity(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return utils.ParseInt(raw)
}

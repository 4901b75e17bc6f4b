package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/recmat/internal/analysis"
	"github.com/san-kum/recmat/internal/matrix"
)

// EigenvalueHeader is the single header line of an eigenvalue file.
const EigenvalueHeader = "Eigenvalues"

// EigenvaluePrecision is the number of significant digits written per value.
const EigenvaluePrecision = 15

// FormatValue renders a matrix cell with the shortest exact representation.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatEigenvalue renders an eigenvalue with EigenvaluePrecision significant digits.
func FormatEigenvalue(v float64) string {
	return strconv.FormatFloat(v, 'g', EigenvaluePrecision, 64)
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &ExportError{Path: path, Op: "mkdir", Err: err}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, &ExportError{Path: path, Op: "create", Err: err}
	}
	return file, nil
}

func writeRecords(path string, records func(w *csv.Writer) error) (err error) {
	file, err := create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &ExportError{Path: path, Op: "close", Err: cerr}
		}
	}()

	w := csv.NewWriter(file)
	if err := records(w); err != nil {
		return &ExportError{Path: path, Op: "write", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &ExportError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// WriteMatrix writes m as n rows of n comma-separated values with no header.
func WriteMatrix(path string, m *matrix.Matrix) error {
	if m == nil {
		return &ExportError{Path: path, Op: "write", Err: matrix.ErrNilMatrix}
	}
	return writeRecords(path, func(w *csv.Writer) error {
		n := m.Size()
		record := make([]string, n)
		for i := 0; i < n; i++ {
			row, err := m.Row(i)
			if err != nil {
				return err
			}
			for j, v := range row {
				record[j] = FormatValue(v)
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteEigenvalues writes the header line followed by one value per line.
func WriteEigenvalues(path string, values []float64) error {
	return writeRecords(path, func(w *csv.Writer) error {
		if err := w.Write([]string{EigenvalueHeader}); err != nil {
			return err
		}
		for _, v := range values {
			if err := w.Write([]string{FormatEigenvalue(v)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func readRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ExportError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ExportError{Path: path, Op: "read", Err: err}
	}
	return records, nil
}

// ReadMatrix parses a file produced by WriteMatrix.
func ReadMatrix(path string) (*matrix.Matrix, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(records))
	for i, record := range records {
		if len(record) != len(records) {
			return nil, fmt.Errorf("%w: %s row %d has %d fields, want %d", ErrFormat, path, i+1, len(record), len(records))
		}
		rows[i] = make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s row %d col %d: %v", ErrFormat, path, i+1, j+1, err)
			}
			rows[i][j] = v
		}
	}

	m, err := matrix.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, path, err)
	}
	return m, nil
}

// ReadEigenvalues parses a file produced by WriteEigenvalues.
func ReadEigenvalues(path string) ([]float64, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 || len(records[0]) != 1 || records[0][0] != EigenvalueHeader {
		return nil, fmt.Errorf("%w: %s: missing %q header", ErrFormat, path, EigenvalueHeader)
	}

	values := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		if len(records[i]) != 1 {
			return nil, fmt.Errorf("%w: %s line %d has %d fields", ErrFormat, path, i+1, len(records[i]))
		}
		v, err := strconv.ParseFloat(records[i][0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrFormat, path, i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// WriteEdges writes a "source,target" header followed by one edge per line.
func WriteEdges(path string, edges []analysis.Edge) error {
	return writeRecords(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"source", "target"}); err != nil {
			return err
		}
		for _, e := range edges {
			if err := w.Write([]string{strconv.Itoa(e.From), strconv.Itoa(e.To)}); err != nil {
				return err
			}
		}
		return nil
	})
}

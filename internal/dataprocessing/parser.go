package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads an examination table from a CSV file or, for .xlsx and
// .xlsm files, from a workbook sheet. Every required column must be present
// and every numeric field must parse; the first failure aborts the load.
func ParseFile(filePath string, opts ParseOptions) (*RawTable, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultParseOptions().Delimiter
	}

	var (
		records []Record
		err     error
	)
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".xlsx", ".xlsm":
		records, err = parseWorkbook(filePath, opts)
	default:
		records, err = parseCSV(filePath, opts)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Parsed examination file",
		slog.String("path", filePath),
		slog.Int("records", len(records)))

	return &RawTable{Source: filePath, Records: records}, nil
}

func parseCSV(filePath string, opts ParseOptions) ([]Record, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, openError(filePath, err)
	}

	// Remove BOM if present
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = opts.Delimiter
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewParsingError("input file has no header row", nil).
				WithContext("path", filePath)
		}
		return nil, apperrors.NewParsingError("failed to read header row", err).
			WithContext("path", filePath)
	}
	if err := checkColumns(header); err != nil {
		return nil, err.WithContext("path", filePath)
	}

	// A header without data rows is an empty dataset
	if _, err := reader.Read(); errors.Is(err, io.EOF) {
		return []Record{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data), loadOptions(opts)...)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to read csv", df.Err).
			WithContext("path", filePath)
	}

	return frameToRecords(df, filePath)
}

func parseWorkbook(filePath string, opts ParseOptions) ([]Record, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, openError(filePath, err)
	}

	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).
			WithContext("path", filePath)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil).
				WithContext("path", filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("path", filePath).
			WithContext("sheet", sheet)
	}

	// GetRows keeps blank rows in the middle of a sheet
	nonEmpty := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(strings.Join(row, "")) != "" {
			nonEmpty = append(nonEmpty, row)
		}
	}
	rows = nonEmpty

	if len(rows) == 0 {
		return nil, apperrors.NewParsingError("input sheet has no header row", nil).
			WithContext("path", filePath).
			WithContext("sheet", sheet)
	}

	header := rows[0]
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	if err := checkColumns(header); err != nil {
		return nil, err.WithContext("path", filePath).WithContext("sheet", sheet)
	}
	if len(rows) == 1 {
		return []Record{}, nil
	}

	// Trailing empty cells are trimmed by GetRows; pad so that they surface
	// as missing values instead of a ragged table
	for i, row := range rows {
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows[i] = row
	}

	df := dataframe.LoadRecords(rows, loadOptions(opts)...)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to load sheet", df.Err).
			WithContext("path", filePath).
			WithContext("sheet", sheet)
	}

	return frameToRecords(df, filePath)
}

func openError(filePath string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return apperrors.NewNotFoundError("input file").WithContext("path", filePath)
	}
	return apperrors.NewParsingError("failed to open input file", err).
		WithContext("path", filePath)
}

// checkColumns reports the first required column missing from header
func checkColumns(header []string) *apperrors.AppError {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	for _, name := range RequiredColumns {
		if !present[name] {
			return apperrors.NewParsingError("required column missing", nil).
				WithContext("column", name)
		}
	}
	return nil
}

// loadOptions forces the column types; integer columns reject fractional
// values
func loadOptions(opts ParseOptions) []dataframe.LoadOption {
	types := make(map[string]series.Type, len(RequiredColumns))
	for _, name := range RequiredColumns {
		types[name] = series.Int
	}
	types[ColHeight] = series.Float
	types[ColWeight] = series.Float

	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.WithDelimiter(opts.Delimiter),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	}
}

// frameToRecords converts the typed frame into records. Empty and
// unparseable fields load as NaN and are rejected here.
func frameToRecords(df dataframe.DataFrame, filePath string) ([]Record, error) {
	columns := make(map[string][]float64, len(RequiredColumns))
	for _, name := range RequiredColumns {
		s := df.Col(name)
		if s.Err != nil {
			return nil, apperrors.NewParsingError("required column missing", s.Err).
				WithContext("path", filePath).
				WithContext("column", name)
		}
		if s.HasNaN() {
			return nil, apperrors.NewParsingError("empty or malformed numeric field", nil).
				WithContext("path", filePath).
				WithContext("column", name).
				WithContext("row", firstNaN(s)+1)
		}
		columns[name] = s.Float()
	}

	n := df.Nrow()
	records := make([]Record, n)
	for i := 0; i < n; i++ {
		records[i] = Record{
			ID:          int(columns[ColID][i]),
			Age:         int(columns[ColAge][i]),
			Gender:      int(columns[ColGender][i]),
			Height:      columns[ColHeight][i],
			Weight:      columns[ColWeight][i],
			APHi:        int(columns[ColAPHi][i]),
			APLo:        int(columns[ColAPLo][i]),
			Cholesterol: int(columns[ColCholesterol][i]),
			Gluc:        int(columns[ColGluc][i]),
			Smoke:       int(columns[ColSmoke][i]),
			Alco:        int(columns[ColAlco][i]),
			Active:      int(columns[ColActive][i]),
			Cardio:      int(columns[ColCardio][i]),
		}
	}
	return records, nil
}

func firstNaN(s series.Series) int {
	for i, isNaN := range s.IsNaN() {
		if isNaN {
			return i
		}
	}
	return -1
}

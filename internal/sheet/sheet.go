// Package sheet turns an uploaded spreadsheet into a validated question set.
//
// The first sheet of an .xlsx workbook (or a .csv file) must carry a header
// row with the columns of the question template:
//
//	STT | CÂU HỎI | ĐÁP ÁN 1 | ĐÁP ÁN 2 | ĐÁP ÁN 3 | ĐÁP ÁN 4 | ĐÁP ÁN ĐÚNG
//
// Headers match after trimming and Unicode case folding. Rows without
// question text are skipped. Any other bad row rejects the whole file.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/playperu/quizdesk/internal/quiz"
)

// Column labels of the question template.
const (
	ColumnNumber   = "STT"
	ColumnQuestion = "CÂU HỎI"
	ColumnOption1  = "ĐÁP ÁN 1"
	ColumnOption2  = "ĐÁP ÁN 2"
	ColumnOption3  = "ĐÁP ÁN 3"
	ColumnOption4  = "ĐÁP ÁN 4"
	ColumnCorrect  = "ĐÁP ÁN ĐÚNG"
)

// RequiredColumns in template order.
var RequiredColumns = []string{
	ColumnNumber,
	ColumnQuestion,
	ColumnOption1,
	ColumnOption2,
	ColumnOption3,
	ColumnOption4,
	ColumnCorrect,
}

var optionColumns = [quiz.OptionCount]string{ColumnOption1, ColumnOption2, ColumnOption3, ColumnOption4}

// MaxRows caps the number of data rows read from one file.
const MaxRows = 10000

var (
	ErrUnsupportedFormat = errors.New("unsupported file format (use .xlsx or .csv)")
	ErrEmptyName         = errors.New("question set name is empty")
	ErrTooManyRows       = fmt.Errorf("sheet has more than %d rows", MaxRows)
)

// Import reads r as the file named filename and returns the question set.
// proposedName wins over the name derived from filename when non-blank.
func Import(r io.Reader, filename, proposedName string) (*quiz.QuizSet, error) {
	name := strings.TrimSpace(proposedName)
	if name == "" {
		name = NameFromFilename(filename)
	}
	if name == "" {
		return nil, ErrEmptyName
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%q: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}

	questions, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	return quiz.NewQuizSet(name, questions), nil
}

// NameFromFilename strips directories and spreadsheet extensions.
func NameFromFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".xlsx", ".xlsm", ".xls", ".csv":
		base = base[:len(base)-len(filepath.Ext(base))]
	}
	return strings.TrimSpace(base)
}

// parseRows validates the header and converts data rows. Row numbers in
// errors are 1-based sheet rows.
func parseRows(rows [][]string) ([]quiz.QuestionRecord, error) {
	headerAt := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, &quiz.MissingColumnsError{Columns: append([]string(nil), RequiredColumns...)}
	}

	cols, err := locateColumns(rows[headerAt])
	if err != nil {
		return nil, err
	}

	data := rows[headerAt+1:]
	if len(data) > MaxRows {
		return nil, ErrTooManyRows
	}

	questions := make([]quiz.QuestionRecord, 0, len(data))
	for i, row := range data {
		rowNum := headerAt + i + 2
		text := cell(row, cols[ColumnQuestion])
		if text == "" {
			continue
		}

		var options [quiz.OptionCount]string
		for n, col := range optionColumns {
			v := cell(row, cols[col])
			if v == "" {
				return nil, &quiz.MalformedRowError{Row: rowNum, Column: col, Reason: "option is empty"}
			}
			options[n] = v
		}

		raw := cell(row, cols[ColumnCorrect])
		correct, err := parseOptionNumber(raw)
		if err != nil {
			return nil, &quiz.MalformedRowError{Row: rowNum, Column: ColumnCorrect, Reason: err.Error()}
		}

		q, err := quiz.NewQuestionRecord(text, options, correct)
		if err != nil {
			return nil, &quiz.MalformedRowError{Row: rowNum, Reason: err.Error()}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// locateColumns maps each required column to its index in header.
func locateColumns(header []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		key := normalizeHeader(h)
		if _, dup := seen[key]; !dup {
			seen[key] = i
		}
	}

	cols := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, c := range RequiredColumns {
		i, ok := seen[normalizeHeader(c)]
		if !ok {
			missing = append(missing, c)
			continue
		}
		cols[c] = i
	}
	if len(missing) > 0 {
		return nil, &quiz.MissingColumnsError{Columns: missing}
	}
	return cols, nil
}

// parseOptionNumber accepts "2" and integral spreadsheet numbers like "2.0".
func parseOptionNumber(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("correct option is empty")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("correct option %q is not a whole number", raw)
		}
		n = int(f)
	}
	if !quiz.ValidOption(n) {
		return 0, fmt.Errorf("correct option %d is not between 1 and %d", n, quiz.OptionCount)
	}
	return n, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

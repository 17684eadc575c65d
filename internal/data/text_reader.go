package data

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// TextReader reads whitespace-separated numeric rows whose first column is
// the class label, e.g. "2.0000000e+000  1.2340000e+000 ...".
type TextReader struct {
	filename string
}

func NewTextReader(filename string) *TextReader {
	return &TextReader{filename: filename}
}

func (tr *TextReader) LoadData() ([][]decimal.Decimal, []int, []string, error) {
	file, err := os.Open(tr.filename)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	X, y, err := ParseText(file)
	if err != nil {
		return nil, nil, nil, err
	}
	return X, y, nil, nil
}

// ParseText parses the text format from r. Blank lines are skipped; a
// label that is not an integer is truncated towards zero.
func ParseText(r io.Reader) ([][]decimal.Decimal, []int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var X [][]decimal.Decimal
	var y []int
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		label, err := decimal.NewFromString(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: invalid label %q: %w", lineNum, fields[0], err)
		}

		features := make([]decimal.Decimal, len(fields)-1)
		for j, field := range fields[1:] {
			val, err := decimal.NewFromString(field)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: invalid numeric value at column %d: %q", lineNum, j+2, field)
			}
			features[j] = val
		}

		if len(X) > 0 && len(features) != len(X[0]) {
			return nil, nil, fmt.Errorf("line %d: %w: expected %d features, got %d", lineNum, ErrRaggedRow, len(X[0]), len(features))
		}

		X = append(X, features)
		y = append(y, int(label.IntPart()))
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
	}

	if len(X) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	return X, y, nil
}

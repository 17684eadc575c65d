package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"featureselect/internal/preprocessing"

	"github.com/shopspring/decimal"
)

// CSVReader reads a headed CSV file. The label column is the one named
// "Label" (any case) when present, otherwise the last column.
type CSVReader struct {
	filename string
	classes  []string
}

func NewCSVReader(filename string) (*CSVReader, error) {
	return &CSVReader{filename: filename}, nil
}

func (cr *CSVReader) LoadData() ([][]decimal.Decimal, []int, []string, error) {
	file, err := os.Open(cr.filename)
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}

	if len(records) < 2 {
		return nil, nil, nil, fmt.Errorf("insufficient data in file")
	}

	header := records[0]
	labelCol := len(header) - 1
	for j, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "label") {
			labelCol = j
			break
		}
	}

	headers := make([]string, 0, len(header)-1)
	for j, name := range header {
		if j != labelCol {
			headers = append(headers, strings.TrimSpace(name))
		}
	}

	data := records[1:]
	X := make([][]decimal.Decimal, 0, len(data))
	labels := make([]string, 0, len(data))

	for i, record := range data {
		row := make([]decimal.Decimal, 0, len(record)-1)
		for j, raw := range record {
			raw = strings.TrimSpace(raw)
			if j == labelCol {
				labels = append(labels, raw)
				continue
			}
			val, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("invalid numeric value at row %d, column %d: %q", i+2, j+1, raw)
			}
			row = append(row, val)
		}
		X = append(X, row)
	}

	y, err := cr.encodeLabels(labels)
	if err != nil {
		return nil, nil, nil, err
	}
	return X, y, headers, nil
}

// encodeLabels keeps integer labels as they are and encodes anything else
// in first-appearance order.
func (cr *CSVReader) encodeLabels(labels []string) ([]int, error) {
	y := make([]int, len(labels))
	numeric := true
	for i, label := range labels {
		v, err := strconv.Atoi(label)
		if err != nil {
			numeric = false
			break
		}
		y[i] = v
	}
	if numeric {
		cr.classes = nil
		return y, nil
	}

	encoder := preprocessing.NewLabelEncoder()
	y, err := encoder.FitTransform(labels)
	if err != nil {
		return nil, err
	}
	cr.classes = encoder.Classes()
	return y, nil
}

// Classes returns the encoded class names, or nil when labels were integers.
func (cr *CSVReader) Classes() []string {
	return cr.classes
}

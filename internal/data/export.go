package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ExportProjection writes the dataset restricted to subset as CSV with a
// "Label,Feature<k>,..." header, k being the original 1-based feature number.
func ExportProjection(w io.Writer, ds *Dataset, subset []int) error {
	X, err := ds.Project(subset)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)

	header := make([]string, 0, len(subset)+1)
	header = append(header, "Label")
	for _, f := range subset {
		header = append(header, fmt.Sprintf("Feature%d", f))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, row := range X {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(ds.Instances[i].Label))
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportProjectionFile is ExportProjection into a newly created file.
func ExportProjectionFile(filename string, ds *Dataset, subset []int) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := ExportProjection(file, ds, subset); err != nil {
		return fmt.Errorf("failed to export %s: %w", filename, err)
	}
	return file.Close()
}

package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportFilename is the download name the browser uses for exports.
const ExportFilename = "color-history.csv"

var csvHeader = []string{"HEX", "RGB", "HSL", "Luminance", "Name"}

// WriteCSV writes a header row followed by one row per record, oldest first.
func WriteCSV(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		c := record.Color
		row := []string{
			c.Hex,
			c.RGB.String(),
			c.HSL.String(),
			strconv.Itoa(c.Luminance) + "%",
			c.Name,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", record.Seq, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

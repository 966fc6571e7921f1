package service

import (
	"strconv"
	"strings"

	"github.com/GTDGit/lowstock/internal/models"
)

// ExportFilename is the suggested download name for FormatExport output.
const ExportFilename = "wb_low_stock.txt"

// FormatExport renders results as "name | stock: N | url" lines separated by newlines.
func FormatExport(results []models.AggregatedResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Name)
		b.WriteString(" | stock: ")
		b.WriteString(strconv.Itoa(r.MinSizeQty))
		b.WriteString(" | ")
		b.WriteString(r.URL)
	}
	return b.String()
}

package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
)

// ExportColumns is the fixed CSV header of an export.
var ExportColumns = []string{"id", "title", "price", "category", "images"}

// imageSeparator joins image URLs inside the single images column.
const imageSeparator = " | "

// EscapeHTML escapes untrusted text for use in HTML text and attribute values.
// The output matches what the templ components write for interpolated text.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// ExportFilename is the download name for an export of page.
func ExportFilename(page int) string {
	return fmt.Sprintf("products_page_%d.csv", page)
}

// ExportRecord converts a product to its CSV fields, in ExportColumns order.
func ExportRecord(p Product) []string {
	return []string{
		strconv.Itoa(p.ID),
		p.Title,
		p.Price.String(),
		p.CategoryName(),
		strings.Join(p.Images, imageSeparator),
	}
}

// WriteCSV writes the header and one row per product.
// Fields containing commas, quotes or newlines are quoted with inner quotes doubled.
func WriteCSV(w io.Writer, products []Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range products {
		if err := cw.Write(ExportRecord(p)); err != nil {
			return fmt.Errorf("write product %d: %w", p.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV renders products as a CSV document.
func ExportCSV(products []Product) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, products); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package export renders a record collection as delimited text.
package export

import (
	"io"
	"strconv"
	"strings"

	"pantry/internal/model"
)

// Header is the first row of every CSV export.
var Header = []string{"name", "qty", "category", "purchaseDate", "expiryDate", "consumed"}

// Filename is the suggested download name for an export.
const Filename = "grocery_inventory.csv"

// ContentType is the MIME type of an export.
const ContentType = "text/csv"

// WriteCSV writes the header and one row per record. Every field is wrapped
// in double quotes with embedded quotes doubled; rows are separated by "\n"
// with no trailing newline.
//
// encoding/csv only quotes fields that need it, so the rows are built here.
func WriteCSV(w io.Writer, records []model.Record) error {
	rows := make([]string, 0, len(records)+1)
	rows = append(rows, row(Header))
	for _, r := range records {
		rows = append(rows, row([]string{
			r.Name,
			strconv.Itoa(r.Qty),
			r.Category,
			r.PurchaseDate,
			r.ExpiryDate,
			strconv.FormatBool(r.Consumed),
		}))
	}
	_, err := io.WriteString(w, strings.Join(rows, "\n"))
	return err
}

func row(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

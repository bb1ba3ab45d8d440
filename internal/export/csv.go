// Package export serializes the home collection and its derived scores to a
// flat table for CSV download. Column order is fixed so downloads stay
// diffable between exports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/starford/othala/internal/models"
	"github.com/starford/othala/internal/rubric"
	"github.com/starford/othala/internal/scoring"
)

// leading columns precede the per-category subtotal columns.
var leadingColumns = []string{"City", "MPC", "Builder"}

// trailing columns follow the computed score columns.
var trailingColumns = []string{
	"Notes", "Photo",
	"PropertyTax", "MUD", "PID", "YearlyHOA", "Restrictions",
	"HOA_Water", "HOA_Sewer", "HOA_Garbage", "HOA_Gas", "HOA_Electric", "HOA_Internet",
	"ISP", "ZonedElem", "ZonedMid", "ZonedHigh",
	"Address/Nickname",
}

// Table is an ordered flat view of the collection: a header row plus one
// row of scalars per record.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Columns builds the header for a rubric: descriptive fields, one subtotal
// column per category (suffixed when a category shadows a descriptive
// column, e.g. a "Builder" category), the pass/fail tally, the overall
// score, and the remaining descriptive fields.
func Columns(r *rubric.Rubric) []string {
	fixed := make(map[string]struct{}, len(leadingColumns)+len(trailingColumns))
	for _, c := range leadingColumns {
		fixed[c] = struct{}{}
	}
	for _, c := range trailingColumns {
		fixed[c] = struct{}{}
	}

	cols := make([]string, 0, len(leadingColumns)+r.Len()+2+len(trailingColumns))
	cols = append(cols, leadingColumns...)
	for _, cat := range r.Categories() {
		name := cat
		if _, clash := fixed[name]; clash {
			name += " Subtotal"
		}
		cols = append(cols, name)
	}
	cols = append(cols, "Checks", "Overall")
	cols = append(cols, trailingColumns...)
	return cols
}

// BuildTable derives one row per record. Missing optional fields and absent
// photos become empty strings; computed columns always carry a value.
func BuildTable(r *rubric.Rubric, records []models.HomeRecord) *Table {
	t := &Table{
		Columns: Columns(r),
		Rows:    make([][]string, 0, len(records)),
	}
	for i := range records {
		t.Rows = append(t.Rows, buildRow(r, &records[i]))
	}
	return t
}

func buildRow(r *rubric.Rubric, rec *models.HomeRecord) []string {
	sum := scoring.Summarize(r, rec.Scores)
	info := rec.Info

	row := make([]string, 0, len(leadingColumns)+len(sum.Subtotals)+2+len(trailingColumns))
	row = append(row, info.City, info.Community, info.Builder)
	for _, cs := range sum.Subtotals {
		row = append(row, strconv.Itoa(cs.Subtotal))
	}
	row = append(row,
		fmt.Sprintf("%d/%d", sum.Passed, sum.Total),
		strconv.Itoa(sum.Overall),
	)
	row = append(row,
		info.Notes,
		firstPhotoURL(rec.Photos),
		info.PropertyTax, info.MUD, info.PID, info.HOA, info.Restrictions,
		boolCell(info.HOAIncludes.Water),
		boolCell(info.HOAIncludes.Sewer),
		boolCell(info.HOAIncludes.Garbage),
		boolCell(info.HOAIncludes.Gas),
		boolCell(info.HOAIncludes.Electric),
		boolCell(info.HOAIncludes.Internet),
		info.ISP, info.SchoolElem, info.SchoolMiddle, info.SchoolHigh,
		info.Address,
	)
	return row
}

// WriteCSV writes the table as UTF-8 CSV with a header row. encoding/csv
// quotes fields containing commas, quotes, or newlines, so free-text notes
// round-trip faithfully.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

// WriteCSV builds the table for records and streams it to w.
func WriteCSV(w io.Writer, r *rubric.Rubric, records []models.HomeRecord) error {
	return BuildTable(r, records).WriteCSV(w)
}

func firstPhotoURL(photos []models.PhotoRef) string {
	if len(photos) == 0 {
		return ""
	}
	return photos[0].URL
}

func boolCell(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

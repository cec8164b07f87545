// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders filtered search results as downloadable CSV, XLSX,
// and PDF payloads.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/leakhound/internal/icij"
	"github.com/pdiddy/leakhound/pkg/types"
)

// DateFormat renders export timestamps (header blocks and the Search Date
// column).
const DateFormat = "2006-01-02 15:04:05"

// Row is the flattened projection of one entity record plus request
// metadata. All three formatters consume the same row set; the PDF
// formatter renders only the name, score, and ID columns.
type Row struct {
	EntityName string
	Score      float64
	ID         string
	Type       string
	Query      string
	SearchDate string
	Link       string
}

// Meta carries the request-level strings embedded in the XLSX and PDF
// header blocks.
type Meta struct {
	Query     string
	Sources   []string
	Generated time.Time
}

// SourcesLabel returns the comma-joined source list, or "All" when no
// sources were selected.
func (m Meta) SourcesLabel() string {
	if len(m.Sources) == 0 {
		return "All"
	}
	return strings.Join(m.Sources, ", ")
}

// BuildRows projects filtered records into export rows. Every field goes
// through the record's effective-value accessors so exports default the
// same way the filter and display paths do.
func BuildRows(records []types.EntityRecord, query string, generated time.Time) []Row {
	date := generated.Format(DateFormat)
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{
			EntityName: r.EffectiveName(),
			Score:      r.EffectiveScore(),
			ID:         r.ID,
			Type:       r.EffectiveType(),
			Query:      query,
			SearchDate: date,
			Link:       icij.NodeURL(r.ID),
		}
	}
	return rows
}

// WithTypes reports whether any record carried a types field. The Type
// column appears in CSV and XLSX output only when the source data had one;
// records lacking it still render the "Entity" default in that column.
func WithTypes(records []types.EntityRecord) bool {
	for _, r := range records {
		if r.Types != nil {
			return true
		}
	}
	return false
}

// headers returns the column titles shared by the CSV and XLSX formatters.
func headers(withTypes bool) []string {
	h := []string{"Entity Name", "Match Score", "ICIJ ID"}
	if withTypes {
		h = append(h, "Type")
	}
	return append(h, "Search Query", "Search Date", "ICIJ Link")
}

// cells returns the row's rendered cell values in header order.
func (r Row) cells(withTypes bool) []string {
	v := []string{r.EntityName, formatScore(r.Score), r.ID}
	if withTypes {
		v = append(v, r.Type)
	}
	return append(v, r.Query, r.SearchDate, r.Link)
}

// formatScore renders a match score with the shortest decimal form that
// parses back to the same value.
func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Filename builds the suggested download name: the fixed prefix, the query
// with spaces replaced by underscores, and the date.
func Filename(query, ext string, now time.Time) string {
	return fmt.Sprintf("icij_search_%s_%s.%s",
		strings.ReplaceAll(query, " ", "_"), now.Format("20060102"), ext)
}

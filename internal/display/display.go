// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders search results, history listings, and stats as
// human-readable text. All functions write to an io.Writer so output is
// testable and redirectable. Column alignment uses display widths, not
// byte counts, so entity names in any script line up.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/leakhound/internal/history"
	"github.com/pdiddy/leakhound/internal/icij"
	"github.com/pdiddy/leakhound/pkg/types"
)

const (
	nameWidth  = 40
	timeFormat = "2006-01-02 15:04:05"
)

// noResults prints the empty-result notice with search suggestions.
func noResults(w io.Writer) {
	fmt.Fprintln(w, "No results found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Suggestions:")
	fmt.Fprintln(w, "  - check your spelling")
	fmt.Fprintln(w, "  - use fewer words or filters")
	fmt.Fprintln(w, "  - search for company names or locations")
}

// Results writes records as a ranked table. Empty input prints the
// suggestion notice instead of an empty table.
func Results(w io.Writer, records []types.EntityRecord) {
	if len(records) == 0 {
		noResults(w)
		return
	}

	fmt.Fprintf(w, "%-4s  %s  %-12s  %6s  %-6s  %s\n",
		"Rank", pad("Entity Name", nameWidth), "Type", "Score", "Match", "ICIJ ID")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %s  %-12s  %6.1f  %-6s  %s\n",
			i+1, pad(r.EffectiveName(), nameWidth), r.EffectiveType(),
			r.EffectiveScore(), r.MatchQuality(), r.ID)
	}

	fmt.Fprintf(w, "\n%d results, average score %.1f\n", len(records), averageScore(records))
}

// Records writes one detail block per record: name, classification,
// description, and the node page link.
func Records(w io.Writer, records []types.EntityRecord) {
	if len(records) == 0 {
		noResults(w)
		return
	}

	for i, r := range records {
		fmt.Fprintf(w, "%d. %s\n", i+1, r.EffectiveName())
		fmt.Fprintf(w, "   Type: %s    Score: %.1f (%s)\n",
			r.EffectiveType(), r.EffectiveScore(), r.MatchQuality())
		if desc := r.EffectiveDescription(); desc != "" {
			fmt.Fprintf(w, "   %s\n", desc)
		}
		if r.ID != "" {
			fmt.Fprintf(w, "   %s\n", icij.NodeURL(r.ID))
		}
		fmt.Fprintln(w)
	}
}

// History writes recent search history entries as a table.
func History(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No search history.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-19s  %s  %7s  %s\n",
		"ID", "Date", pad("Query", 30), "Results", "Sources")
	fmt.Fprintln(w, strings.Repeat("-", 84))

	for _, e := range entries {
		date := ""
		if !e.Date.IsZero() {
			date = e.Date.Format(timeFormat)
		}
		fmt.Fprintf(w, "%-4d  %-19s  %s  %7d  %s\n",
			e.ID, date, pad(e.Query, 30), e.Results, sourcesLabel(e.Sources))
	}
}

// Saved writes saved searches as a table, with notes on a follow-up line.
func Saved(w io.Writer, saved []history.SavedSearch) {
	if len(saved) == 0 {
		fmt.Fprintln(w, "No saved searches.")
		return
	}

	fmt.Fprintf(w, "%-4s  %s  %s  %s\n",
		"ID", pad("Name", 20), pad("Query", 30), "Sources")
	fmt.Fprintln(w, strings.Repeat("-", 84))

	for _, sv := range saved {
		fmt.Fprintf(w, "%-4d  %s  %s  %s\n",
			sv.ID, pad(sv.Name, 20), pad(sv.Query, 30), sourcesLabel(sv.Sources))
		if sv.Notes != "" {
			fmt.Fprintf(w, "      notes: %s\n", sv.Notes)
		}
	}
}

// Stats writes aggregate history statistics.
func Stats(w io.Writer, st history.Stats) {
	if st.TotalSearches == 0 {
		fmt.Fprintln(w, "No search history.")
		return
	}

	fmt.Fprintf(w, "Total searches:  %d\n", st.TotalSearches)
	fmt.Fprintf(w, "Average results: %.1f\n", st.AverageResults)

	if len(st.PerDay) > 0 {
		fmt.Fprintln(w, "\nSearches per day:")
		for _, d := range st.PerDay {
			fmt.Fprintf(w, "  %s  %d\n", d.Day, d.Count)
		}
	}
	if len(st.TopQueries) > 0 {
		fmt.Fprintln(w, "\nTop queries:")
		for _, q := range st.TopQueries {
			fmt.Fprintf(w, "  %s  %d\n", pad(q.Query, 30), q.Count)
		}
	}
	if len(st.SourceUsage) > 0 {
		fmt.Fprintln(w, "\nSource usage:")
		for _, s := range st.SourceUsage {
			fmt.Fprintf(w, "  %s  %d\n", pad(s.Source, 20), s.Count)
		}
	}
}

// barWidth is the maximum score bar length in Comparison output.
const barWidth = 30

// Comparison writes records as a table with a score bar, so result sets
// merged from several runs can be eyeballed side by side.
func Comparison(w io.Writer, records []types.EntityRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results to compare.")
		return
	}

	fmt.Fprintf(w, "%-4s  %s  %6s  %s\n", "Rank", pad("Entity Name", nameWidth), "Score", "")
	fmt.Fprintln(w, strings.Repeat("-", 86))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %s  %6.1f  %s\n",
			i+1, pad(r.EffectiveName(), nameWidth), r.EffectiveScore(), scoreBar(r.EffectiveScore()))
	}
	fmt.Fprintf(w, "\n%d results, average score %.1f\n", len(records), averageScore(records))
}

// JSON writes records as indented JSON.
func JSON(w io.Writer, records []types.EntityRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// pad truncates s to the display width and fills the remainder with
// spaces, so double-width characters do not break column alignment.
func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

func sourcesLabel(sources []string) string {
	if len(sources) == 0 {
		return "All sources"
	}
	return strings.Join(sources, ", ")
}

func averageScore(records []types.EntityRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.EffectiveScore()
	}
	return sum / float64(len(records))
}

func scoreBar(score float64) string {
	n := int(score / 100 * barWidth)
	if n > barWidth {
		n = barWidth
	}
	if n < 0 {
		n = 0
	}
	return strings.Repeat("#", n)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/leakhound/internal/display"
	"github.com/pdiddy/leakhound/internal/export"
	"github.com/pdiddy/leakhound/internal/filter"
	"github.com/pdiddy/leakhound/internal/history"
	"github.com/pdiddy/leakhound/internal/icij"
	"github.com/pdiddy/leakhound/internal/resultfile"
	"github.com/pdiddy/leakhound/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the Offshore Leaks database",
	Long: `Search posts a query to the Offshore Leaks reconciliation API, filters
the matches, and renders them as a ranked table. Matches can be exported
as CSV, XLSX, or PDF reports and kept as a YAML result file for later
comparison.

A timed-out or unreachable API is not fatal: the search reports the
problem and renders an empty result set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	opts, err := searchOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	return runSearchPipeline(cmd, strings.Join(args, " "), criteriaFromFlags(cmd), opts)
}

// searchOptions collects everything the pipeline needs beyond the query
// and the filter criteria.
type searchOptions struct {
	maxResults int
	formats    []string
	exportDir  string
	outFile    string
	jsonOut    bool
	long       bool
}

func criteriaFromFlags(cmd *cobra.Command) filter.Criteria {
	sources, _ := cmd.Flags().GetStringSlice("source")
	entityType, _ := cmd.Flags().GetString("type")
	minScore, _ := cmd.Flags().GetFloat64("min-score")
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	period, _ := cmd.Flags().GetString("period")

	return filter.Criteria{
		Sources:      sources,
		EntityType:   entityType,
		MinScore:     minScore,
		Jurisdiction: jurisdiction,
		Period:       period,
	}
}

func searchOptionsFromFlags(cmd *cobra.Command) (searchOptions, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	rawFormats, _ := cmd.Flags().GetStringSlice("export")
	exportDir, _ := cmd.Flags().GetString("export-dir")
	outFile, _ := cmd.Flags().GetString("out")
	jsonOut, _ := cmd.Flags().GetBool("json")
	long, _ := cmd.Flags().GetBool("long")

	formats, err := expandFormats(rawFormats)
	if err != nil {
		return searchOptions{}, err
	}

	return searchOptions{
		maxResults: maxResults,
		formats:    formats,
		exportDir:  exportDir,
		outFile:    outFile,
		jsonOut:    jsonOut,
		long:       long,
	}, nil
}

// expandFormats resolves "all", lowercases, and deduplicates while keeping
// the requested order.
func expandFormats(raw []string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)

	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}

	for _, f := range raw {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "csv":
			add("csv")
		case "xlsx", "excel":
			add("xlsx")
		case "pdf":
			add("pdf")
		case "all":
			add("csv")
			add("xlsx")
			add("pdf")
		case "":
		default:
			return nil, fmt.Errorf("unsupported export format %q: use csv, xlsx, pdf, or all", f)
		}
	}
	return formats, nil
}

// runSearchPipeline is the shared search flow, also entered by
// `saved run`: query the API, filter, limit, record history, render, and
// export.
func runSearchPipeline(cmd *cobra.Command, query string, crit filter.Criteria, opts searchOptions) error {
	cfg := loadConfig()

	maxResults := opts.maxResults
	if maxResults <= 0 {
		maxResults = cfg.Search.MaxResults
	}
	maxResults = filter.ClampMax(maxResults)

	client := &icij.Client{Client: http.DefaultClient}
	records, err := client.Search(cmd.Context(), query, cfg.Search)
	if err != nil {
		// The search API being down or slow still yields a usable (empty)
		// result set; the warning text tells the two cases apart.
		if !errors.Is(err, icij.ErrTimeout) && !errors.Is(err, icij.ErrUnavailable) {
			return err
		}
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		records = nil
	}

	records = filter.Limit(filter.Apply(records, crit), maxResults)

	recordHistory(cmd.Context(), cfg.History.Path, query, crit.Sources, len(records))

	out := cmd.OutOrStdout()
	switch {
	case opts.jsonOut:
		if err := display.JSON(out, records); err != nil {
			return err
		}
	case opts.long:
		display.Records(out, records)
	default:
		display.Results(out, records)
	}

	if err := exportResults(records, query, crit.Sources, opts, cfg.Export); err != nil {
		return err
	}

	if opts.outFile != "" {
		rf := resultfile.New(query, crit, maxResults, records, time.Now())
		if err := resultfile.Save(opts.outFile, rf); err != nil {
			return fmt.Errorf("writing result file: %w", err)
		}
		fmt.Fprintf(out, "Results written to %s\n", opts.outFile)
	}

	return nil
}

// recordHistory is best-effort: a broken history database must never block
// showing results.
func recordHistory(ctx context.Context, path, query string, sources []string, results int) {
	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: search history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if err := store.RecordSearch(ctx, query, sources, results); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording search history: %v\n", err)
	}
}

// exportResults writes one payload per requested format. A failing format
// is reported and skipped; the remaining formats still get written.
func exportResults(records []types.EntityRecord, query string, sources []string, opts searchOptions, cfg types.ExportConfig) error {
	if len(opts.formats) == 0 {
		return nil
	}

	dir := opts.exportDir
	if dir == "" {
		dir = cfg.Dir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	now := time.Now()
	rows := export.BuildRows(records, query, now)
	withTypes := export.WithTypes(records)
	meta := export.Meta{Query: query, Sources: sources, Generated: now}

	failed := 0
	for _, format := range opts.formats {
		var (
			payload []byte
			err     error
		)
		switch format {
		case "csv":
			payload, err = export.CSV(rows, withTypes)
		case "xlsx":
			payload, err = export.Excel(rows, meta, withTypes)
		case "pdf":
			payload, err = export.PDF(rows, meta)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s export failed: %v\n", format, err)
			failed++
			continue
		}

		path := filepath.Join(dir, export.Filename(query, format, now))
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s export failed: %v\n", format, err)
			failed++
			continue
		}
		fmt.Printf("Exported to %s\n", path)
	}

	if failed > 0 && failed == len(opts.formats) {
		return fmt.Errorf("all %d export(s) failed", failed)
	}
	return nil
}

func init() {
	searchCmd.Flags().StringSlice("source", nil, "limit to a leak source (repeatable or comma-separated): Panama Papers, Paradise Papers, Pandora Papers, Bahamas Leaks, Offshore Leaks")
	searchCmd.Flags().String("type", "", "filter by entity type: Entity, Officer, Intermediary, Address")
	searchCmd.Flags().Float64("min-score", 0, "minimum match score (0-100)")
	searchCmd.Flags().String("jurisdiction", "", "filter by jurisdiction or location text")
	searchCmd.Flags().String("period", "", `filter by leak period, e.g. "2021-Present (Pandora)"`)
	searchCmd.Flags().Int("max-results", 0, "maximum results to keep, 5-100 (0 = config default)")
	searchCmd.Flags().StringSlice("export", nil, "export format: csv, xlsx, pdf, or all (repeatable)")
	searchCmd.Flags().String("export-dir", "", "directory for export files (default: export.dir config)")
	searchCmd.Flags().String("out", "", "write results to a YAML result file")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("long", false, "show one detail block per result")

	rootCmd.AddCommand(searchCmd)
}

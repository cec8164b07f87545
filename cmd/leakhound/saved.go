// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/leakhound/internal/display"
	"github.com/pdiddy/leakhound/internal/history"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved searches (add, list, run, delete, export, import)",
	Long: `Saved keeps named searches in the local history database so recurring
queries can be re-run by name. Saved searches can be exported to a YAML
file and imported on another machine.`,
}

// --- add subcommand ---

var savedAddCmd = &cobra.Command{
	Use:   "add <name> <query>",
	Short: "Save a search under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runSavedAdd,
}

func runSavedAdd(cmd *cobra.Command, args []string) error {
	sources, _ := cmd.Flags().GetStringSlice("source")
	notes, _ := cmd.Flags().GetString("notes")

	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SaveSearch(cmd.Context(), args[0], args[1], sources, notes); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %q\n", args[0])
	return nil
}

// --- list subcommand ---

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved searches",
	RunE:  runSavedList,
}

func runSavedList(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.SavedSearches(cmd.Context())
	if err != nil {
		return err
	}

	display.Saved(cmd.OutOrStdout(), saved)
	return nil
}

// --- run subcommand ---

var savedRunCmd = &cobra.Command{
	Use:   "run <name-or-id>",
	Short: "Re-run a saved search",
	Long: `Run looks up a saved search by name or numeric id and sends it through
the normal search pipeline. The saved source list applies unless --source
overrides it; the other filter and export flags work as with "search".`,
	Args: cobra.ExactArgs(1),
	RunE: runSavedRun,
}

func runSavedRun(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}

	sv, err := store.FindSaved(cmd.Context(), args[0])
	store.Close()
	if err != nil {
		return err
	}

	opts, err := searchOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	crit := criteriaFromFlags(cmd)
	if len(crit.Sources) == 0 {
		crit.Sources = sv.Sources
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Running saved search %q: %s\n\n", sv.Name, sv.Query)
	return runSearchPipeline(cmd, sv.Query, crit, opts)
}

// --- delete subcommand ---

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <name-or-id>",
	Short: "Delete a saved search",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedDelete,
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	sv, err := store.FindSaved(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := store.DeleteSaved(cmd.Context(), sv.ID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (id %d)\n", sv.Name, sv.ID)
	return nil
}

// --- export / import subcommands ---

const defaultSavedFile = "saved_searches.yaml"

var savedExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write saved searches to a YAML file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSavedExport,
}

func runSavedExport(cmd *cobra.Command, args []string) error {
	path := defaultSavedFile
	if len(args) == 1 {
		path = args[0]
	}

	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ExportSaved(cmd.Context())
	if err != nil {
		return err
	}
	if err := history.WriteSavedFile(path, entries); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d saved searches to %s\n", len(entries), path)
	return nil
}

var savedImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge saved searches from a YAML file",
	Long: `Import reads a saved-search YAML file and merges it into the local
database. Entries are matched by name: existing names are updated, new
names added. Nothing is imported if any entry is invalid.`,
	Args: cobra.ExactArgs(1),
	RunE: runSavedImport,
}

func runSavedImport(cmd *cobra.Command, args []string) error {
	entries, err := history.ReadSavedFile(args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig()
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.ImportSaved(cmd.Context(), entries)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d saved searches: %d added, %d updated\n",
		summary.Added+summary.Updated, summary.Added, summary.Updated)
	return nil
}

func init() {
	savedAddCmd.Flags().StringSlice("source", nil, "limit the saved search to a leak source (repeatable)")
	savedAddCmd.Flags().String("notes", "", "free-text notes stored with the search")

	// Run accepts the same filter and output flags as search.
	savedRunCmd.Flags().StringSlice("source", nil, "override the saved source list (repeatable)")
	savedRunCmd.Flags().String("type", "", "filter by entity type: Entity, Officer, Intermediary, Address")
	savedRunCmd.Flags().Float64("min-score", 0, "minimum match score (0-100)")
	savedRunCmd.Flags().String("jurisdiction", "", "filter by jurisdiction or location text")
	savedRunCmd.Flags().String("period", "", `filter by leak period, e.g. "2021-Present (Pandora)"`)
	savedRunCmd.Flags().Int("max-results", 0, "maximum results to keep, 5-100 (0 = config default)")
	savedRunCmd.Flags().StringSlice("export", nil, "export format: csv, xlsx, pdf, or all (repeatable)")
	savedRunCmd.Flags().String("export-dir", "", "directory for export files (default: export.dir config)")
	savedRunCmd.Flags().String("out", "", "write results to a YAML result file")
	savedRunCmd.Flags().Bool("json", false, "output results as JSON")
	savedRunCmd.Flags().Bool("long", false, "show one detail block per result")

	savedCmd.AddCommand(savedAddCmd)
	savedCmd.AddCommand(savedListCmd)
	savedCmd.AddCommand(savedRunCmd)
	savedCmd.AddCommand(savedDeleteCmd)
	savedCmd.AddCommand(savedExportCmd)
	savedCmd.AddCommand(savedImportCmd)

	rootCmd.AddCommand(savedCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// SavedEntry is the interchange form of a saved search, used to move
// saved searches between machines as YAML.
type SavedEntry struct {
	Name    string    `yaml:"name"`
	Query   string    `yaml:"query"`
	Sources []string  `yaml:"sources,omitempty"`
	Notes   string    `yaml:"notes,omitempty"`
	Created time.Time `yaml:"created"`
}

// savedFile is the on-disk document wrapping the entries.
type savedFile struct {
	Saved []SavedEntry `yaml:"saved_searches"`
}

// ImportSummary holds counts from a saved-search import.
type ImportSummary struct {
	Added   int
	Updated int
}

// ExportSaved returns all saved searches in interchange form, newest first.
func (s *Store) ExportSaved(ctx context.Context) ([]SavedEntry, error) {
	saved, err := s.SavedSearches(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]SavedEntry, 0, len(saved))
	for _, sv := range saved {
		entries = append(entries, SavedEntry{
			Name:    sv.Name,
			Query:   sv.Query,
			Sources: sv.Sources,
			Notes:   sv.Notes,
			Created: sv.Created,
		})
	}
	return entries, nil
}

// ImportSaved merges entries into the saved searches, matching by name:
// an existing name is updated in place, a new one inserted. The whole
// import commits or none of it does.
func (s *Store) ImportSaved(ctx context.Context, entries []SavedEntry) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var summary ImportSummary
	for _, e := range entries {
		if e.Name == "" || e.Query == "" {
			return ImportSummary{}, fmt.Errorf("saved search needs a name and a query (got name %q)", e.Name)
		}
		created := e.Created
		if created.IsZero() {
			created = time.Now()
		}

		var id int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM saved_searches WHERE name = ? ORDER BY id DESC LIMIT 1`, e.Name,
		).Scan(&id)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx,
				`UPDATE saved_searches SET query = ?, sources = ?, notes = ? WHERE id = ?`,
				e.Query, joinSources(e.Sources), e.Notes, id,
			); err != nil {
				return ImportSummary{}, fmt.Errorf("updating %q: %w", e.Name, err)
			}
			summary.Updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO saved_searches (name, query, sources, notes, created_date)
				 VALUES (?, ?, ?, ?, ?)`,
				e.Name, e.Query, joinSources(e.Sources), e.Notes, stamp(created),
			); err != nil {
				return ImportSummary{}, fmt.Errorf("inserting %q: %w", e.Name, err)
			}
			summary.Added++
		default:
			return ImportSummary{}, fmt.Errorf("looking up %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// WriteSavedFile saves entries to a YAML file.
func WriteSavedFile(path string, entries []SavedEntry) error {
	data, err := yaml.Marshal(&savedFile{Saved: entries})
	if err != nil {
		return fmt.Errorf("marshaling saved searches: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadSavedFile loads saved-search entries from a YAML file.
func ReadSavedFile(path string) ([]SavedEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading saved searches: %w", err)
	}
	var f savedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing saved searches: %w", err)
	}
	return f.Saved, nil
}

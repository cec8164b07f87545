// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists search history and saved searches in a local
// SQLite database. Store failures are advisory: callers surface them as
// warnings and carry on with the search results they already have.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a saved-search lookup matches nothing.
var ErrNotFound = errors.New("saved search not found")

// defaultRecent is the history listing size when no limit is given.
const defaultRecent = 10

// Entry is one recorded search.
type Entry struct {
	ID      int64
	Query   string
	Sources []string
	Results int
	Date    time.Time
}

// SavedSearch is a named search kept for re-running later.
type SavedSearch struct {
	ID      int64
	Name    string
	Query   string
	Sources []string
	Notes   string
	Created time.Time
}

// Store manages the search history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path. Parent directories
// and the schema are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			sources TEXT NOT NULL,
			results_count INTEGER NOT NULL,
			search_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS saved_searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			query TEXT NOT NULL,
			sources TEXT NOT NULL,
			notes TEXT NOT NULL,
			created_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_date ON search_history(search_date)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_name ON saved_searches(name)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordSearch appends one history entry stamped with the current UTC time.
func (s *Store) RecordSearch(ctx context.Context, query string, sources []string, results int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (query, sources, results_count, search_date)
		 VALUES (?, ?, ?, ?)`,
		query, joinSources(sources), results, stamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns history entries newest first. A non-positive limit uses
// the default listing size.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultRecent
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, sources, results_count, search_date
		 FROM search_history
		 ORDER BY search_date DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			src  string
			date string
		)
		if err := rows.Scan(&e.ID, &e.Query, &src, &e.Results, &date); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		e.Sources = splitSources(src)
		e.Date = parseStamp(date)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DayCount is the number of searches recorded on one calendar day.
type DayCount struct {
	Day   string
	Count int
}

// QueryCount is the number of times one query string was searched.
type QueryCount struct {
	Query string
	Count int
}

// SourceCount is the number of searches that selected one source.
type SourceCount struct {
	Source string
	Count  int
}

// Stats aggregates the whole search history.
type Stats struct {
	TotalSearches  int
	AverageResults float64
	PerDay         []DayCount
	TopQueries     []QueryCount
	SourceUsage    []SourceCount
}

const (
	statsDayWindow  = 30
	statsTopQueries = 10
)

// Stats computes aggregate counts over the history: totals, per-day
// activity (newest first), the most-searched queries, and how often each
// source was selected.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(AVG(results_count), 0) FROM search_history`,
	).Scan(&st.TotalSearches, &st.AverageResults); err != nil {
		return Stats{}, fmt.Errorf("aggregating history: %w", err)
	}

	days, err := s.db.QueryContext(ctx,
		`SELECT substr(search_date, 1, 10) AS day, COUNT(*)
		 FROM search_history GROUP BY day ORDER BY day DESC LIMIT ?`, statsDayWindow)
	if err != nil {
		return Stats{}, fmt.Errorf("counting searches per day: %w", err)
	}
	defer days.Close()
	for days.Next() {
		var dc DayCount
		if err := days.Scan(&dc.Day, &dc.Count); err != nil {
			return Stats{}, fmt.Errorf("scanning row: %w", err)
		}
		st.PerDay = append(st.PerDay, dc)
	}
	if err := days.Err(); err != nil {
		return Stats{}, err
	}

	queries, err := s.db.QueryContext(ctx,
		`SELECT query, COUNT(*) AS uses
		 FROM search_history GROUP BY query ORDER BY uses DESC, query LIMIT ?`, statsTopQueries)
	if err != nil {
		return Stats{}, fmt.Errorf("counting query usage: %w", err)
	}
	defer queries.Close()
	for queries.Next() {
		var qc QueryCount
		if err := queries.Scan(&qc.Query, &qc.Count); err != nil {
			return Stats{}, fmt.Errorf("scanning row: %w", err)
		}
		st.TopQueries = append(st.TopQueries, qc)
	}
	if err := queries.Err(); err != nil {
		return Stats{}, err
	}

	// Source lists are stored comma-joined, so counting happens here
	// rather than in SQL.
	raw, err := s.db.QueryContext(ctx, `SELECT sources FROM search_history`)
	if err != nil {
		return Stats{}, fmt.Errorf("counting source usage: %w", err)
	}
	defer raw.Close()
	counts := make(map[string]int)
	for raw.Next() {
		var src string
		if err := raw.Scan(&src); err != nil {
			return Stats{}, fmt.Errorf("scanning row: %w", err)
		}
		for _, name := range splitSources(src) {
			counts[name]++
		}
	}
	if err := raw.Err(); err != nil {
		return Stats{}, err
	}
	for name, n := range counts {
		st.SourceUsage = append(st.SourceUsage, SourceCount{Source: name, Count: n})
	}
	sort.Slice(st.SourceUsage, func(i, j int) bool {
		if st.SourceUsage[i].Count != st.SourceUsage[j].Count {
			return st.SourceUsage[i].Count > st.SourceUsage[j].Count
		}
		return st.SourceUsage[i].Source < st.SourceUsage[j].Source
	})

	return st, nil
}

// SaveSearch stores a named search stamped with the current UTC time.
// Names are not unique; re-saving a name shadows the older entry for
// name lookups.
func (s *Store) SaveSearch(ctx context.Context, name, query string, sources []string, notes string) error {
	if name == "" {
		return errors.New("saved search needs a name")
	}
	if query == "" {
		return errors.New("saved search needs a query")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saved_searches (name, query, sources, notes, created_date)
		 VALUES (?, ?, ?, ?, ?)`,
		name, query, joinSources(sources), notes, stamp(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("saving search: %w", err)
	}
	return nil
}

// SavedSearches returns all saved searches, newest first.
func (s *Store) SavedSearches(ctx context.Context) ([]SavedSearch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, query, sources, notes, created_date
		 FROM saved_searches
		 ORDER BY created_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying saved searches: %w", err)
	}
	defer rows.Close()

	var saved []SavedSearch
	for rows.Next() {
		sv, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		saved = append(saved, sv)
	}
	return saved, rows.Err()
}

// FindSaved resolves ref as a numeric id or an exact name. Name lookups
// return the newest match.
func (s *Store) FindSaved(ctx context.Context, ref string) (SavedSearch, error) {
	const cols = `SELECT id, name, query, sources, notes, created_date FROM saved_searches`

	var row *sql.Row
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		row = s.db.QueryRowContext(ctx, cols+` WHERE id = ?`, id)
	} else {
		row = s.db.QueryRowContext(ctx, cols+` WHERE name = ? ORDER BY id DESC LIMIT 1`, ref)
	}

	sv, err := scanSaved(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedSearch{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return SavedSearch{}, fmt.Errorf("looking up saved search: %w", err)
	}
	return sv, nil
}

// DeleteSaved removes a saved search by id.
func (s *Store) DeleteSaved(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting saved search: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saved search: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSaved(row scanner) (SavedSearch, error) {
	var (
		sv      SavedSearch
		src     string
		created string
	)
	if err := row.Scan(&sv.ID, &sv.Name, &sv.Query, &src, &sv.Notes, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SavedSearch{}, err
		}
		return SavedSearch{}, fmt.Errorf("scanning row: %w", err)
	}
	sv.Sources = splitSources(src)
	sv.Created = parseStamp(created)
	return sv, nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseStamp tolerates malformed dates: a row with an unreadable date
// still lists, with a zero time.
func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func joinSources(sources []string) string {
	return strings.Join(sources, ",")
}

func splitSources(s string) []string {
	if s == "" {
		return nil
	}
	var sources []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			sources = append(sources, part)
		}
	}
	return sources
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resultfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/leakhound/internal/filter"
	"github.com/pdiddy/leakhound/pkg/types"
)

var searchedAt = time.Date(2026, 4, 2, 11, 30, 0, 0, time.UTC)

func sampleResults() []types.EntityRecord {
	return []types.EntityRecord{
		{ID: "100", Name: "Alpha Holdings", Score: 90, Description: "Found in Panama Papers"},
		{ID: "200", Name: "Beta Trust", Score: 50, Description: "Found in Pandora Papers"},
	}
}

func TestNewComputesSummary(t *testing.T) {
	rf := New("alpha", filter.Criteria{MinScore: 40}, 20, sampleResults(), searchedAt)

	if rf.Summary.Count != 2 {
		t.Errorf("Count = %d, want 2", rf.Summary.Count)
	}
	if rf.Summary.AverageScore != 70 {
		t.Errorf("AverageScore = %v, want 70", rf.Summary.AverageScore)
	}
	if !rf.Summary.Searched.Equal(searchedAt) {
		t.Errorf("Searched = %v", rf.Summary.Searched)
	}
}

func TestNewEmptyResults(t *testing.T) {
	rf := New("alpha", filter.Criteria{}, 20, nil, searchedAt)
	if rf.Summary.Count != 0 || rf.Summary.AverageScore != 0 {
		t.Errorf("summary = %+v, want zero count and average", rf.Summary)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	crit := filter.Criteria{
		Sources:      []string{"Panama Papers"},
		EntityType:   "Entity",
		MinScore:     40,
		Jurisdiction: "bahamas",
	}
	want := New("alpha holdings", crit, 20, sampleResults(), searchedAt)

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got.Params.Query != "alpha holdings" {
		t.Errorf("Query = %q", got.Params.Query)
	}
	if got.Params.MaxResults != 20 {
		t.Errorf("MaxResults = %d", got.Params.MaxResults)
	}
	if got.Params.Criteria.MinScore != 40 || got.Params.Criteria.Jurisdiction != "bahamas" {
		t.Errorf("criteria did not round-trip: %+v", got.Params.Criteria)
	}
	if len(got.Params.Criteria.Sources) != 1 || got.Params.Criteria.Sources[0] != "Panama Papers" {
		t.Errorf("Sources = %v", got.Params.Criteria.Sources)
	}
	if !got.Summary.Searched.Equal(searchedAt) {
		t.Errorf("Searched = %v, want %v", got.Summary.Searched, searchedAt)
	}
	if len(got.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(got.Results))
	}
	if got.Results[0].ID != "100" || got.Results[0].Name != "Alpha Holdings" {
		t.Errorf("Results[0] = %+v", got.Results[0])
	}
	if got.Results[1].Score != 50 {
		t.Errorf("Results[1].Score = %v, want 50", got.Results[1].Score)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load() succeeded on a missing file")
	}
}

func TestLoadRejectsMissingQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	rf := New("", filter.Criteria{}, 20, sampleResults(), searchedAt)
	if err := Save(path, rf); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "missing query") {
		t.Errorf("Load() error = %v, want missing-query complaint", err)
	}
}

func TestLoadRejectsCountMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	rf := New("alpha", filter.Criteria{}, 20, sampleResults(), searchedAt)
	rf.Summary.Count = 5
	if err := Save(path, rf); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Errorf("Load() error = %v, want count-mismatch complaint", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.yaml")
	if err := os.WriteFile(path, []byte("{{definitely not yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded on malformed YAML")
	}
}

func TestMergeDropsDuplicateIDs(t *testing.T) {
	a := New("a", filter.Criteria{}, 20, []types.EntityRecord{
		{ID: "100", Name: "Alpha", Score: 90},
		{ID: "200", Name: "Beta", Score: 50},
	}, searchedAt)
	b := New("b", filter.Criteria{}, 20, []types.EntityRecord{
		{ID: "200", Name: "Beta (again)", Score: 60},
		{ID: "300", Name: "Gamma", Score: 70},
		{Name: "No ID", Score: 10},
	}, searchedAt)

	merged, removed := Merge(a, b)
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	wantNames := []string{"Alpha", "Beta", "Gamma", "No ID"}
	if len(merged) != len(wantNames) {
		t.Fatalf("len(merged) = %d, want %d", len(merged), len(wantNames))
	}
	for i, name := range wantNames {
		if merged[i].Name != name {
			t.Errorf("merged[%d].Name = %q, want %q", i, merged[i].Name, name)
		}
	}

	// The first occurrence wins.
	if merged[1].Score != 50 {
		t.Errorf("merged[1].Score = %v, want the first file's 50", merged[1].Score)
	}
}

func TestMergeKeepsUnidentifiedRecords(t *testing.T) {
	a := New("a", filter.Criteria{}, 20, []types.EntityRecord{
		{Name: "First nameless"},
		{Name: "Second nameless"},
	}, searchedAt)

	merged, removed := Merge(a)
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if len(merged) != 2 {
		t.Errorf("len(merged) = %d, want 2", len(merged))
	}
}

func TestMergeNothing(t *testing.T) {
	merged, removed := Merge()
	if len(merged) != 0 || removed != 0 {
		t.Errorf("Merge() = %v, %d, want empty", merged, removed)
	}
}

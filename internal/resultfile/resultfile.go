// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resultfile reads and writes search result sets as YAML files.
// A saved result set can be reloaded later and compared against other
// runs without re-querying the search API.
package resultfile

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/leakhound/internal/filter"
	"github.com/pdiddy/leakhound/pkg/types"
)

// Params stores the search parameters that produced the results.
type Params struct {
	Query      string          `yaml:"query"`
	Criteria   filter.Criteria `yaml:"criteria"`
	MaxResults int             `yaml:"max_results"`
}

// Summary stores result statistics and a timestamp.
type Summary struct {
	Count        int       `yaml:"count"`
	AverageScore float64   `yaml:"average_score"`
	Searched     time.Time `yaml:"searched"`
}

// ResultFile is the on-disk representation of one search's results.
type ResultFile struct {
	Params  Params               `yaml:"params"`
	Summary Summary              `yaml:"summary"`
	Results []types.EntityRecord `yaml:"results"`
}

// New assembles a ResultFile from a finished search, computing the
// summary from the records.
func New(query string, crit filter.Criteria, maxResults int, records []types.EntityRecord, searched time.Time) ResultFile {
	return ResultFile{
		Params: Params{
			Query:      query,
			Criteria:   crit,
			MaxResults: maxResults,
		},
		Summary: Summary{
			Count:        len(records),
			AverageScore: averageScore(records),
			Searched:     searched,
		},
		Results: records,
	}
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

// Save writes rf to a YAML file.
func Save(path string, rf ResultFile) error {
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a previously saved result file and checks that it is
// internally consistent.
func Load(path string) (ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultFile{}, fmt.Errorf("reading result file: %w", err)
	}

	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return ResultFile{}, fmt.Errorf("parsing result file %s: %w", path, err)
	}

	if rf.Params.Query == "" {
		return ResultFile{}, fmt.Errorf("result file %s: missing query", path)
	}
	if rf.Summary.Count != len(rf.Results) {
		return ResultFile{}, fmt.Errorf("result file %s: summary count %d does not match %d results",
			path, rf.Summary.Count, len(rf.Results))
	}
	return rf, nil
}

// Merge concatenates the result sets of files in order, dropping records
// whose ID already appeared. Records without an ID are always kept. The
// second return is the number of duplicates dropped.
func Merge(files ...ResultFile) ([]types.EntityRecord, int) {
	seen := make(map[string]struct{})
	var merged []types.EntityRecord
	removed := 0

	for _, f := range files {
		for _, r := range f.Results {
			if r.ID != "" {
				if _, ok := seen[r.ID]; ok {
					removed++
					continue
				}
				seen[r.ID] = struct{}{}
			}
			merged = append(merged, r)
		}
	}
	return merged, removed
}

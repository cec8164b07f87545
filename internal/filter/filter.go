// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows Offshore Leaks search results by caller criteria.
package filter

import (
	"strings"

	"github.com/pdiddy/leakhound/pkg/types"
)

// Sentinel values that leave a criterion inactive.
const (
	// TypeAll matches every entity type.
	TypeAll = "All"

	// PeriodAllTime matches every leak period.
	PeriodAllTime = "All Time"
)

// Result count bounds. Callers clamp requested counts into this range
// before calling Limit.
const (
	MinResults     = 5
	MaxResults     = 100
	DefaultResults = 20
)

// KnownSources lists the data-source labels records can be constrained to.
var KnownSources = []string{
	"Panama Papers",
	"Paradise Papers",
	"Pandora Papers",
	"Bahamas Leaks",
	"Offshore Leaks",
}

// EntityTypes lists the selectable entity-type constraints.
var EntityTypes = []string{TypeAll, "Officer", "Entity", "Intermediary", "Address"}

// periodSources maps a leak period to the source labels published in it.
// Unknown periods map to nothing, which leaves the predicate inactive.
var periodSources = map[string][]string{
	"2021-Present (Pandora)":              {"Pandora Papers"},
	"2016-2017 (Panama/Paradise/Bahamas)": {"Panama Papers", "Paradise Papers", "Bahamas Leaks"},
	"2013 (Offshore Leaks)":               {"Offshore Leaks"},
}

// Periods lists the selectable leak periods in display order.
func Periods() []string {
	return []string{
		PeriodAllTime,
		"2021-Present (Pandora)",
		"2016-2017 (Panama/Paradise/Bahamas)",
		"2013 (Offshore Leaks)",
	}
}

// Criteria holds one search request's constraints. The zero value leaves
// every predicate inactive.
type Criteria struct {
	// Sources keeps records mentioning any of these labels. Empty keeps all.
	Sources []string `yaml:"sources,omitempty"`

	// EntityType keeps records whose effective type equals it exactly.
	// TypeAll or empty keeps all.
	EntityType string `yaml:"entity_type,omitempty"`

	// MinScore keeps records scoring at least this much. Zero keeps all.
	MinScore float64 `yaml:"min_score,omitempty"`

	// Jurisdiction keeps records mentioning this text. Empty keeps all.
	Jurisdiction string `yaml:"jurisdiction,omitempty"`

	// Period keeps records from leaks published in it. PeriodAllTime or
	// empty keeps all.
	Period string `yaml:"period,omitempty"`
}

// IsEmpty reports whether every criterion is inactive.
func (c Criteria) IsEmpty() bool {
	return len(c.Sources) == 0 &&
		(c.EntityType == "" || c.EntityType == TypeAll) &&
		c.MinScore <= 0 &&
		c.Jurisdiction == "" &&
		(c.Period == "" || c.Period == PeriodAllTime)
}

// Apply returns the records that satisfy every active criterion, in their
// original order. The input is never mutated and the output is always a
// fresh slice, so callers on both sides never share backing arrays.
func Apply(records []types.EntityRecord, c Criteria) []types.EntityRecord {
	out := make([]types.EntityRecord, 0, len(records))
	for _, r := range records {
		if !matchesSources(r, c.Sources) {
			continue
		}
		if !matchesType(r, c.EntityType) {
			continue
		}
		if !matchesScore(r, c.MinScore) {
			continue
		}
		if !matchesText(r, c.Jurisdiction) {
			continue
		}
		if !matchesPeriod(r, c.Period) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// matchesSources passes when any allowed label appears, case-insensitively,
// in the record's effective description or effective name.
func matchesSources(r types.EntityRecord, sources []string) bool {
	if len(sources) == 0 {
		return true
	}
	desc := strings.ToLower(r.EffectiveDescription())
	name := strings.ToLower(r.EffectiveName())
	for _, s := range sources {
		label := strings.ToLower(s)
		if strings.Contains(desc, label) || strings.Contains(name, label) {
			return true
		}
	}
	return false
}

func matchesType(r types.EntityRecord, entityType string) bool {
	if entityType == "" || entityType == TypeAll {
		return true
	}
	return r.EffectiveType() == entityType
}

func matchesScore(r types.EntityRecord, min float64) bool {
	return min <= 0 || r.EffectiveScore() >= min
}

// matchesText passes when the text appears, case-insensitively, in the
// record's effective description or effective name.
func matchesText(r types.EntityRecord, text string) bool {
	if text == "" {
		return true
	}
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(r.EffectiveDescription()), needle) ||
		strings.Contains(strings.ToLower(r.EffectiveName()), needle)
}

// matchesPeriod passes when any source label published in the period
// appears, case-insensitively, in the effective description. Provenance is
// inferred from free text; records that never name their leak slip through
// only when the period is inactive.
func matchesPeriod(r types.EntityRecord, period string) bool {
	if period == "" || period == PeriodAllTime {
		return true
	}
	allowed := periodSources[period]
	if len(allowed) == 0 {
		return true
	}
	desc := strings.ToLower(r.EffectiveDescription())
	for _, src := range allowed {
		if strings.Contains(desc, strings.ToLower(src)) {
			return true
		}
	}
	return false
}

// Limit returns the first max records in their existing order. It performs
// no clamping and no reordering; a non-positive max passes the sequence
// through unchanged.
func Limit(records []types.EntityRecord, max int) []types.EntityRecord {
	if max <= 0 || len(records) <= max {
		return records
	}
	return records[:max]
}

// ClampMax bounds a requested result count to the supported range.
func ClampMax(n int) int {
	if n < MinResults {
		return MinResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

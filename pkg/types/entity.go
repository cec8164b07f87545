// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the leakhound pipeline.
package types

// TypeTag classifies an entity record (e.g. "Entity", "Officer").
type TypeTag struct {
	// Name is the tag label as returned by the ICIJ API.
	Name string `json:"name" yaml:"name"`
}

// EntityRecord represents a single entity returned by an Offshore Leaks
// query. Upstream records arrive with any subset of these fields populated;
// every reader goes through the Effective accessors so missing data defaults
// the same way everywhere.
type EntityRecord struct {
	// ID is the ICIJ node identifier, used to build detail-page links.
	ID string `json:"id" yaml:"id"`

	// Name is the entity display name as returned by the source.
	Name string `json:"name" yaml:"name"`

	// Score is the match confidence between 0 and 100.
	Score float64 `json:"score" yaml:"score"`

	// Description is free text naming the leak the entity appears in
	// (e.g. "Found in Panama Papers").
	Description string `json:"description" yaml:"description"`

	// Types classifies the record. Nil when the source omitted the field
	// entirely; the export layer distinguishes nil from an empty list.
	Types []TypeTag `json:"types,omitempty" yaml:"types,omitempty"`
}

// EffectiveName returns the display name, or "Unknown Entity" when absent.
func (r EntityRecord) EffectiveName() string {
	if r.Name == "" {
		return "Unknown Entity"
	}
	return r.Name
}

// EffectiveScore returns the match confidence. Absent scores decode to zero.
func (r EntityRecord) EffectiveScore() float64 { return r.Score }

// EffectiveDescription returns the description, empty when absent.
func (r EntityRecord) EffectiveDescription() string { return r.Description }

// EffectiveType returns the name of the first type tag, or "Entity" when the
// record carries no usable tag. Filtering and export share this rule.
func (r EntityRecord) EffectiveType() string {
	if len(r.Types) == 0 || r.Types[0].Name == "" {
		return "Entity"
	}
	return r.Types[0].Name
}

// Match quality score thresholds.
const (
	scoreHigh   = 80
	scoreMedium = 50
)

// MatchQuality buckets the effective score: HIGH at 80 and above, MEDIUM at
// 50 and above, LOW below that.
func (r EntityRecord) MatchQuality() string {
	switch {
	case r.EffectiveScore() >= scoreHigh:
		return "HIGH"
	case r.EffectiveScore() >= scoreMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

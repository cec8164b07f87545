// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"
)

func TestEffectiveName(t *testing.T) {
	tests := []struct {
		name   string
		record EntityRecord
		want   string
	}{
		{"present", EntityRecord{Name: "Alpha Holdings Ltd"}, "Alpha Holdings Ltd"},
		{"absent", EntityRecord{}, "Unknown Entity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EffectiveName(); got != tt.want {
				t.Errorf("EffectiveName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveType(t *testing.T) {
	tests := []struct {
		name   string
		record EntityRecord
		want   string
	}{
		{"nil types", EntityRecord{}, "Entity"},
		{"empty types", EntityRecord{Types: []TypeTag{}}, "Entity"},
		{"blank first name", EntityRecord{Types: []TypeTag{{}}}, "Entity"},
		{"named", EntityRecord{Types: []TypeTag{{Name: "Officer"}}}, "Officer"},
		{"first of several", EntityRecord{Types: []TypeTag{{Name: "Intermediary"}, {Name: "Officer"}}}, "Intermediary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EffectiveType(); got != tt.want {
				t.Errorf("EffectiveType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEffectiveScoreAbsentDecodesToZero(t *testing.T) {
	var r EntityRecord
	if err := json.Unmarshal([]byte(`{"id":"1","name":"Alpha"}`), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.EffectiveScore() != 0 {
		t.Errorf("EffectiveScore() = %v, want 0", r.EffectiveScore())
	}
}

func TestMatchQuality(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"high boundary", 80, "HIGH"},
		{"high", 99.5, "HIGH"},
		{"just below high", 79.9, "MEDIUM"},
		{"medium boundary", 50, "MEDIUM"},
		{"just below medium", 49.9, "LOW"},
		{"zero", 0, "LOW"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EntityRecord{Score: tt.score}
			if got := r.MatchQuality(); got != tt.want {
				t.Errorf("MatchQuality() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The source sometimes omits the types field and sometimes sends an empty
// list. Decoding must keep the two apart: nil for absent, non-nil for empty.
func TestTypesDecodeKeepsAbsentAndEmptyApart(t *testing.T) {
	var absent, empty EntityRecord
	if err := json.Unmarshal([]byte(`{"id":"1"}`), &absent); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":"2","types":[]}`), &empty); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if absent.Types != nil {
		t.Errorf("absent field decoded to %#v, want nil", absent.Types)
	}
	if empty.Types == nil {
		t.Error("empty list decoded to nil, want non-nil slice")
	}
	if absent.EffectiveType() != "Entity" || empty.EffectiveType() != "Entity" {
		t.Error("both variants should default to Entity")
	}
}

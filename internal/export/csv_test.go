// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/pdiddy/leakhound/pkg/types"
)

// The CSV payload must re-parse with the stock reader and give back the
// name, score and id of every row.
func TestCSVRoundTrip(t *testing.T) {
	rows := BuildRows(sampleRecords(), "mossack", exportStamp)
	payload, err := CSV(rows, true)
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}

	parsed, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(parsed) != len(rows)+1 {
		t.Fatalf("parsed %d lines, want %d", len(parsed), len(rows)+1)
	}

	header := parsed[0]
	if header[0] != "Entity Name" || header[1] != "Match Score" || header[2] != "ICIJ ID" {
		t.Errorf("header = %v", header)
	}
	for i, row := range rows {
		line := parsed[i+1]
		if line[0] != row.EntityName {
			t.Errorf("row %d name = %q, want %q", i, line[0], row.EntityName)
		}
		if line[1] != formatScore(row.Score) {
			t.Errorf("row %d score = %q, want %q", i, line[1], formatScore(row.Score))
		}
		if line[2] != row.ID {
			t.Errorf("row %d id = %q, want %q", i, line[2], row.ID)
		}
	}
}

func TestCSVTypeColumn(t *testing.T) {
	rows := BuildRows(sampleRecords(), "q", exportStamp)

	with, err := CSV(rows, true)
	if err != nil {
		t.Fatalf("CSV(withTypes) error: %v", err)
	}
	without, err := CSV(rows, false)
	if err != nil {
		t.Fatalf("CSV(no types) error: %v", err)
	}

	parsedWith, _ := csv.NewReader(bytes.NewReader(with)).ReadAll()
	parsedWithout, _ := csv.NewReader(bytes.NewReader(without)).ReadAll()

	if len(parsedWith[0]) != 7 {
		t.Errorf("with types: %d columns, want 7", len(parsedWith[0]))
	}
	if len(parsedWithout[0]) != 6 {
		t.Errorf("without types: %d columns, want 6", len(parsedWithout[0]))
	}
	if parsedWith[0][3] != "Type" {
		t.Errorf("column 3 = %q, want Type", parsedWith[0][3])
	}
	if parsedWithout[0][3] != "Search Query" {
		t.Errorf("column 3 = %q, want Search Query", parsedWithout[0][3])
	}
}

// Commas and quotes inside entity names must survive the trip.
func TestCSVQuoting(t *testing.T) {
	records := []types.EntityRecord{
		{ID: "1", Name: `Smith, Jones & "Partners" Ltd.`, Score: 50},
	}
	payload, err := CSV(BuildRows(records, "smith", exportStamp), false)
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	parsed, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if parsed[1][0] != `Smith, Jones & "Partners" Ltd.` {
		t.Errorf("name = %q", parsed[1][0])
	}
}

func TestCSVEmptyRows(t *testing.T) {
	payload, err := CSV(nil, false)
	if err != nil {
		t.Fatalf("CSV() error: %v", err)
	}
	parsed, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("parsed %d lines, want header only", len(parsed))
	}
}

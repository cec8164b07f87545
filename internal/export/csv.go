// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV serializes rows as an RFC 4180 table: one header line, one line per
// row. Embedded delimiters, quotes, and newlines get standard quoting, so
// the payload re-parses losslessly.
func CSV(rows []Row, withTypes bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(headers(withTypes)); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(r.cells(withTypes)); err != nil {
			return nil, fmt.Errorf("writing CSV row %s: %w", r.ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("finalizing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

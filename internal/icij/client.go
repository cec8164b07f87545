// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package icij queries the ICIJ Offshore Leaks reconciliation API.
package icij

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/leakhound/internal/httputil"
	"github.com/pdiddy/leakhound/pkg/types"
)

// reconcileBase is the Offshore Leaks reconciliation endpoint. Declared as a
// var so tests can substitute an httptest server.
var reconcileBase = "https://offshoreleaks.icij.org/api/v1/reconcile"

// nodeBase is the public detail-page prefix for entity nodes.
var nodeBase = "https://offshoreleaks.icij.org/nodes/"

// defaultTimeout bounds a reconcile request when the config leaves the
// timeout unset.
const defaultTimeout = 15 * time.Second

// Failure conditions callers branch on. Both mean the search proceeds with
// zero records; the notice shown to the user differs.
var (
	// ErrTimeout reports that the upstream did not answer within the bound.
	ErrTimeout = errors.New("search timed out")

	// ErrUnavailable reports a connectivity or upstream contract failure.
	ErrUnavailable = errors.New("search service unavailable")
)

// Client queries the reconciliation API.
type Client struct {
	Client *http.Client
}

// NodeURL returns the public detail-page URL for an entity node ID.
func NodeURL(id string) string {
	return nodeBase + id
}

// Search posts the query to the reconciliation endpoint and decodes the
// entity records. An empty result list is a normal outcome, not an error.
// Deadline failures come back wrapped as ErrTimeout, every other transport
// or contract failure as ErrUnavailable.
func (c *Client) Search(ctx context.Context, query string, cfg types.SearchConfig) ([]types.EntityRecord, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload := reconcileRequest{
		Type: "Entity",
		Queries: map[string]reconcileQuery{
			"q0": {Query: query},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding reconcile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reconcileBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, cfg.MaxRetries)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("reconcile request after %s: %w", timeout, ErrTimeout)
		}
		return nil, fmt.Errorf("reconcile request: %v: %w", err, ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reconcile API returned HTTP %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var rr reconcileResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("parsing reconcile response: %v: %w", err, ErrUnavailable)
	}

	return rr.Q0.Result, nil
}

// isTimeout reports whether err is a deadline failure rather than a
// connectivity one.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// Reconcile API JSON structures.
type reconcileRequest struct {
	Type    string                    `json:"type"`
	Queries map[string]reconcileQuery `json:"queries"`
}

type reconcileQuery struct {
	Query string `json:"query"`
}

type reconcileResponse struct {
	Q0 reconcileResult `json:"q0"`
}

type reconcileResult struct {
	Result []types.EntityRecord `json:"result"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package icij

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/leakhound/internal/httputil"
	"github.com/pdiddy/leakhound/pkg/types"
)

func testCfg() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   5 * time.Second,
			UserAgent: "leakhound-test/0.1",
		},
		MaxResults: 20,
	}
}

// --- Mock reconcile server ---

const sampleReconcileJSON = `{
  "q0": {
    "result": [
      {
        "id": "240155",
        "name": "MOSSACK FONSECA & CO. (BAHAMAS) LIMITED",
        "score": 71.42857,
        "match": false,
        "description": "Found in Panama Papers. Registered in the Bahamas.",
        "types": [{"id": "Entity", "name": "Entity"}]
      },
      {
        "id": "59160",
        "name": "Portcullis TrustNet",
        "score": 45.5,
        "match": false,
        "description": "Offshore Leaks intermediary based in Singapore."
      }
    ]
  }
}`

func reconcileTestServer(statusCode int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		fmt.Fprint(w, body)
	}))
}

// --- Client.Search ---

func TestClientSearch(t *testing.T) {
	ts := reconcileTestServer(http.StatusOK, sampleReconcileJSON)
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	c := &Client{Client: ts.Client()}
	records, err := c.Search(context.Background(), "mossack", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	r0 := records[0]
	if r0.ID != "240155" {
		t.Errorf("ID = %q, want %q", r0.ID, "240155")
	}
	if r0.Name != "MOSSACK FONSECA & CO. (BAHAMAS) LIMITED" {
		t.Errorf("Name = %q", r0.Name)
	}
	if r0.Score != 71.42857 {
		t.Errorf("Score = %v, want 71.42857", r0.Score)
	}
	if len(r0.Types) != 1 || r0.Types[0].Name != "Entity" {
		t.Errorf("Types = %v, want one Entity tag", r0.Types)
	}

	// Second record omits types entirely; the slice must stay nil.
	r1 := records[1]
	if r1.Types != nil {
		t.Errorf("Types = %#v, want nil for absent field", r1.Types)
	}
	if r1.EffectiveType() != "Entity" {
		t.Errorf("EffectiveType() = %q, want Entity", r1.EffectiveType())
	}
}

func TestClientSearchRequestShape(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"q0":{"result":[]}}`)
	}))
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	c := &Client{Client: ts.Client()}
	if _, err := c.Search(context.Background(), "shell companies", testCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}

	var req reconcileRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	if req.Type != "Entity" {
		t.Errorf("type = %q, want Entity", req.Type)
	}
	if req.Queries["q0"].Query != "shell companies" {
		t.Errorf("q0.query = %q, want %q", req.Queries["q0"].Query, "shell companies")
	}
}

func TestClientSearchEmptyResult(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty result list", `{"q0":{"result":[]}}`},
		{"missing result key", `{"q0":{}}`},
		{"missing q0 key", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := reconcileTestServer(http.StatusOK, tt.body)
			defer ts.Close()

			old := reconcileBase
			reconcileBase = ts.URL
			defer func() { reconcileBase = old }()

			c := &Client{Client: ts.Client()}
			records, err := c.Search(context.Background(), "nonexistent", testCfg())
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(records) != 0 {
				t.Errorf("len(records) = %d, want 0", len(records))
			}
		})
	}
}

func TestClientSearchEmptyQuery(t *testing.T) {
	c := &Client{Client: &http.Client{}}
	_, err := c.Search(context.Background(), "   ", testCfg())
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("expected empty query error, got: %v", err)
	}
}

// --- Failure conditions ---

func TestClientSearchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		fmt.Fprint(w, `{"q0":{"result":[]}}`)
	}))
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	cfg := testCfg()
	cfg.Timeout = 50 * time.Millisecond

	c := &Client{Client: ts.Client()}
	_, err := c.Search(context.Background(), "slow", cfg)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestClientSearchConnectionRefused(t *testing.T) {
	ts := reconcileTestServer(http.StatusOK, "{}")
	url := ts.URL
	ts.Close()

	old := reconcileBase
	reconcileBase = url
	defer func() { reconcileBase = old }()

	c := &Client{Client: &http.Client{}}
	_, err := c.Search(context.Background(), "unreachable", testCfg())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("connection failure must not report as timeout")
	}
}

func TestClientSearchHTTPError(t *testing.T) {
	ts := reconcileTestServer(http.StatusInternalServerError, "")
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	c := &Client{Client: ts.Client()}
	_, err := c.Search(context.Background(), "test", testCfg())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("error = %q, should contain HTTP 500", err.Error())
	}
}

func TestClientSearchMalformedJSON(t *testing.T) {
	ts := reconcileTestServer(http.StatusOK, `{not valid json`)
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	c := &Client{Client: ts.Client()}
	_, err := c.Search(context.Background(), "test", testCfg())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	if !strings.Contains(err.Error(), "parsing") {
		t.Errorf("error = %q, should mention parsing", err.Error())
	}
}

func TestClientSearchRetriesRateLimit(t *testing.T) {
	oldDelay := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = 1 * time.Millisecond
	defer func() { httputil.RetryBaseDelay = oldDelay }()

	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, sampleReconcileJSON)
	}))
	defer ts.Close()

	old := reconcileBase
	reconcileBase = ts.URL
	defer func() { reconcileBase = old }()

	c := &Client{Client: ts.Client()}
	records, err := c.Search(context.Background(), "mossack", testCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", calls)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}
}

// --- NodeURL ---

func TestNodeURL(t *testing.T) {
	got := NodeURL("240155")
	want := "https://offshoreleaks.icij.org/nodes/240155"
	if got != want {
		t.Errorf("NodeURL() = %q, want %q", got, want)
	}
}

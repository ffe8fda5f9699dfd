// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveJSON(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestComplete(t *testing.T) {
	ts := serveJSON(t, http.StatusOK, map[string]any{
		"content": []map[string]string{{"type": "text", "text": "tabular"}},
	})

	orig := APIURL
	APIURL = ts.URL
	defer func() { APIURL = orig }()

	c := &Client{APIKey: "k", Model: "m", HTTPClient: ts.Client()}
	text, err := c.Complete(context.Background(), "system", []Message{{Role: "user", Content: "q"}}, 16)
	require.NoError(t, err)
	assert.Equal(t, "tabular", text)
}

func TestComplete_NonOKStatus(t *testing.T) {
	ts := serveJSON(t, http.StatusBadRequest, map[string]string{"error": "bad request"})

	orig := APIURL
	APIURL = ts.URL
	defer func() { APIURL = orig }()

	c := &Client{APIKey: "k", Model: "m", HTTPClient: ts.Client()}
	_, err := c.Complete(context.Background(), "", []Message{{Role: "user", Content: "q"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestComplete_NoTextContent(t *testing.T) {
	ts := serveJSON(t, http.StatusOK, map[string]any{
		"content": []map[string]string{{"type": "tool_use", "text": ""}},
	})

	orig := APIURL
	APIURL = ts.URL
	defer func() { APIURL = orig }()

	c := &Client{APIKey: "k", Model: "m", HTTPClient: ts.Client()}
	_, err := c.Complete(context.Background(), "", []Message{{Role: "user", Content: "q"}}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}

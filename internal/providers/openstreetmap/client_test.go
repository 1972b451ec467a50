package openstreetmap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Search(t *testing.T) {
	var gotQuery, gotUserAgent, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[{"place_id":1,"lat":"27.0410","lon":"88.2663","name":"Darjeeling",
			"display_name":"Darjeeling, West Bengal, India","address":{"state":"West Bengal","country":"India","country_code":"in"}}]`)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)), "weatherscope-test", time.Second)

	resp, err := client.Search(context.Background(), "Darjeeling", 1)
	if err != nil {
		t.Fatalf("Search() unexpected error = %v", err)
	}

	if gotQuery != "Darjeeling" || gotLimit != "1" {
		t.Errorf("query q=%q limit=%q, want q=Darjeeling limit=1", gotQuery, gotLimit)
	}
	if gotUserAgent != "weatherscope-test" {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, "weatherscope-test")
	}
	if len(resp) != 1 {
		t.Fatalf("len(resp) = %d, want 1", len(resp))
	}
	if resp[0].Lat != "27.0410" || resp[0].Address.Country != "India" {
		t.Errorf("resp[0] = %+v", resp[0])
	}
}

func TestClient_Search_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, "blocked")
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL, slog.New(slog.NewTextHandler(io.Discard, nil)), "weatherscope-test", time.Second)

	_, err := client.Search(context.Background(), "Darjeeling", 1)
	if err == nil || !strings.Contains(err.Error(), "fetch returned status 403: blocked") {
		t.Errorf("Search() error = %v, want status 403 error", err)
	}
}

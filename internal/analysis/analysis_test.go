package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linkstash/linkstash/internal/apperr"
	"github.com/linkstash/linkstash/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Analyze_PostsItem(t *testing.T) {
	t.Parallel()

	var received model.LinkItem
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, discardLogger())
	item := &model.LinkItem{ID: "1", Owner: "user@test.com", URL: "http://link"}

	if err := client.Analyze(context.Background(), item); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if received.ID != "1" || received.Owner != "user@test.com" || received.URL != "http://link" {
		t.Errorf("server received %+v", received)
	}
}

func TestClient_Analyze_NonSuccessStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, discardLogger())

	err := client.Analyze(context.Background(), &model.LinkItem{ID: "1"})

	var serverErr apperr.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Analyze error = %v, want ServerError", err)
	}
}

func TestClient_Analyze_UnsetURLSkips(t *testing.T) {
	t.Parallel()

	client := NewClient("", discardLogger())

	if err := client.Analyze(context.Background(), &model.LinkItem{ID: "1"}); err != nil {
		t.Fatalf("Analyze with unset URL should succeed, got: %v", err)
	}
}

func TestClient_Analyze_ConnectionRefused(t *testing.T) {
	t.Parallel()

	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, discardLogger())

	err := client.Analyze(context.Background(), &model.LinkItem{ID: "1"})

	var serverErr apperr.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Analyze error = %v, want ServerError", err)
	}
}

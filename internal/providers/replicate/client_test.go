package replicate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mockupgen/internal/domain"
)

func TestClientCreate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predictions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Fatalf("unexpected auth header: %s", got)
		}
		var payload createRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if payload.Version != "v-abc" {
			t.Fatalf("unexpected version: %s", payload.Version)
		}
		if payload.Input.Prompt != "a mug" {
			t.Fatalf("unexpected prompt: %s", payload.Input.Prompt)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Prediction{ID: "p1", Status: StatusStarting})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIToken: "test-token", ModelVersion: "v-abc"})
	pred, err := client.Create(context.Background(), "a mug")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if pred.ID != "p1" || pred.Status != StatusStarting {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
}

func TestClientCreateRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"invalid version"}`, http.StatusUnprocessableEntity)
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIToken: "test-token", ModelVersion: "bad"})
	_, err := client.Create(context.Background(), "a mug")
	if !errors.Is(err, domain.ErrProviderRejected) {
		t.Fatalf("expected ErrProviderRejected, got %v", err)
	}
}

func TestClientCreateUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections

	client := NewClient(Options{BaseURL: ts.URL, APIToken: "test-token", ModelVersion: "v"})
	_, err := client.Create(context.Background(), "a mug")
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestClientCreateMissingToken(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.Create(context.Background(), "a mug"); !errors.Is(err, domain.ErrProviderRejected) {
		t.Fatalf("expected ErrProviderRejected when token missing, got %v", err)
	}
}

func TestClientGet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/predictions/p1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(Prediction{
			ID:     "p1",
			Status: StatusSucceeded,
			Output: []string{"https://cdn.example.com/out.png"},
			Logs:   "done",
		})
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIToken: "test-token", ModelVersion: "v"})
	pred, err := client.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if pred.Status != StatusSucceeded || len(pred.Output) != 1 {
		t.Fatalf("unexpected prediction: %+v", pred)
	}
}

func TestClientGetRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(Options{BaseURL: ts.URL, APIToken: "test-token", ModelVersion: "v"})
	if _, err := client.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrProviderRejected) {
		t.Fatalf("expected ErrProviderRejected, got %v", err)
	}
}

package huggingface

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"SentimentScanner/internal/config"
)

func TestClassifySendsInferenceRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer hf_token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		var payload map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if string(payload["inputs"]) != `"Chip stocks rally"` ||
			string(payload["parameters"]) != `{"top_k":null}` ||
			string(payload["options"]) != `{"wait_for_model":true}` {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		_, _ = w.Write([]byte(`[[{"label":"positive","score":0.7},{"label":"negative","score":0.1},{"label":"neutral","score":0.2}]]`))
	}))
	defer server.Close()

	client := NewClient(config.ClassifierConfig{Endpoint: server.URL, APIToken: "hf_token"}, server.Client())

	scores, err := client.Classify(context.Background(), "Chip stocks rally")
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}
	if len(scores) != 3 || scores[0].Label != "positive" || scores[0].Score != 0.7 {
		t.Fatalf("unexpected scores: %+v", scores)
	}
}

func TestClassifyRejectsNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is loading"}`))
	}))
	defer server.Close()

	client := NewClient(config.ClassifierConfig{Endpoint: server.URL}, server.Client())
	_, err := client.Classify(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "Model is loading") {
		t.Fatalf("expected status error with body, got %v", err)
	}
}

func TestParseScores(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "nested", body: `[[{"label":"positive","score":1}]]`, want: 1},
		{name: "flat", body: ` [{"label":"negative","score":0.4},{"label":"neutral","score":0.6}]`, want: 2},
		{name: "error object", body: `{"error":"Authorization header is invalid"}`, wantErr: true},
		{name: "unknown object", body: `{"foo":1}`, wantErr: true},
		{name: "empty nested", body: `[]`, wantErr: true},
		{name: "garbage", body: `<html>`, wantErr: true},
	}

	for _, tc := range cases {
		scores, err := parseScores([]byte(tc.body))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got %+v", tc.name, scores)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if len(scores) != tc.want {
			t.Fatalf("%s: expected %d scores, got %d", tc.name, tc.want, len(scores))
		}
	}

	if _, err := parseScores([]byte(`[[]]`)); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestClassifyHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	client := NewClient(config.ClassifierConfig{Endpoint: "http://127.0.0.1:0", RequestsPerSecond: 1}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Classify(ctx, "text"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

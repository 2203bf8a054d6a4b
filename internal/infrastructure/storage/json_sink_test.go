package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SentimentScanner/internal/domain"
)

func TestWriteCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "frontend", "public", "data.json")
	sink := NewJSONFileSink(path)

	report := domain.Report{
		GeneratedAt:      time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC),
		TotalArticles:    1,
		OverallSentiment: 0.5,
		OverallLabel:     domain.LabelPositive,
		DailyStats:       []domain.DailyStat{},
		SourceStats:      []domain.SourceStat{},
		Articles: []domain.Article{{
			Headline:    "Chip stocks rally",
			SourceName:  "Reuters",
			URL:         "https://reuters.com/a",
			PublishedAt: time.Date(2025, time.November, 9, 8, 0, 0, 0, time.UTC),
			Sentiment:   &domain.Sentiment{Score: 0.5, Label: domain.LabelPositive, Confidence: 0.6},
		}},
	}

	if err := sink.Write(context.Background(), report); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(raw), "{\n  \"generated_at\"") {
		t.Fatalf("expected two-space indented document, got %q", string(raw[:40]))
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded["overall_label"] != "Positive" {
		t.Fatalf("unexpected overall_label %v", decoded["overall_label"])
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp file left behind: %d entries", len(entries))
	}
}

func TestWriteReplacesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	sink := NewJSONFileSink(path)
	if err := sink.Write(context.Background(), domain.Report{OverallLabel: domain.LabelNeutral}); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Contains(string(raw), "stale") {
		t.Fatalf("file was not replaced")
	}
}

func TestWriteFailsWhenParentIsAFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}

	sink := NewJSONFileSink(filepath.Join(blocker, "data.json"))
	if err := sink.Write(context.Background(), domain.Report{}); err == nil {
		t.Fatalf("expected error when parent path is a file")
	}
}

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kbering/logscan/query"
)

func writeSampleLog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "access.log")
	lines := `127.0.0.1 - - [10/Dec/2024:10:00:00 +0000] "GET /index.html HTTP/1.1" 200 1024
127.0.0.1 - - [10/Dec/2024:10:00:05 +0000] "GET /api/v1/users HTTP/1.1" 404 512
10.0.0.2 - - [10/Dec/2024:10:01:00 +0000] "POST /api/v1/login HTTP/1.1" 500 256
`
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("writing sample log: %v", err)
	}
	return path
}

func TestQueryLiteralKeepsShape(t *testing.T) {
	// This test does not call buildQuery (no test in this file does); it
	// only checks that a query.Query literal keeps the Shape string it
	// was built with. The other tests call query.Run with hand-built
	// queries.
	q := query.Query{Shape: "count"}
	if q.Shape != "count" {
		t.Fatalf("Shape = %q, want count", q.Shape)
	}
}

func TestRunCountEndToEnd(t *testing.T) {
	path := writeSampleLog(t)
	result, err := query.Run(context.Background(), query.Query{
		Path:   path,
		Format: "apache",
		Shape:  "count",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Count == nil || *result.Count != 3 {
		t.Fatalf("Count = %v, want 3", result.Count)
	}
}

func TestRunGroupCountEndToEnd(t *testing.T) {
	path := writeSampleLog(t)
	result, err := query.Run(context.Background(), query.Query{
		Path:    path,
		Format:  "apache",
		Shape:   "group_count",
		GroupBy: "ip",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Grouped) != 2 {
		t.Fatalf("Grouped = %+v, want 2 distinct IPs", result.Grouped)
	}
}

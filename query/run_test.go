package query

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

const apacheSample = `192.168.1.1 - - [10/Oct/2024:13:55:01 +0000] "GET /a HTTP/1.1" 200 512
192.168.1.1 - - [10/Oct/2024:13:55:02 +0000] "GET /b HTTP/1.1" 404 128
10.0.0.2 - - [10/Oct/2024:13:56:10 +0000] "POST /login HTTP/1.1" 500 0
10.0.0.2 - - [10/Oct/2024:14:01:00 +0000] "GET /a HTTP/1.1" 200 1024
`

func TestRunCount(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{Path: path, Format: "apache", Shape: "count"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count == nil || *res.Count != 4 {
		t.Fatalf("Count = %v, want 4", res.Count)
	}
}

func TestRunCountWithStatusFilter(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "count", FilterStatus: "200",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count == nil || *res.Count != 2 {
		t.Fatalf("Count = %v, want 2", res.Count)
	}
}

func TestRunGroupCountByIP(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "group_count", GroupBy: "ip",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Grouped) != 2 {
		t.Fatalf("Grouped = %+v, want 2 groups", res.Grouped)
	}
	if res.Grouped[0].Value != 2 || res.Grouped[1].Value != 2 {
		t.Fatalf("Grouped = %+v, want both groups at 2", res.Grouped)
	}
}

func TestRunNumAggregateSize(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "num_aggregate",
		AggregateOp: "sum", AggregateColumn: "size",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.NumericAgg == nil || res.NumericAgg.Sum != 1664 {
		t.Fatalf("NumericAgg = %+v, want sum 1664", res.NumericAgg)
	}
	if res.NumericAgg.Count != 4 {
		t.Fatalf("NumericAgg.Count = %d, want 4", res.NumericAgg.Count)
	}
}

func TestRunTimeBucketsChronological(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "time_buckets",
		Bucket: "hour", Chronological: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.TimeBuckets) != 2 {
		t.Fatalf("TimeBuckets = %+v, want 2 hourly buckets", res.TimeBuckets)
	}
	if !res.TimeBuckets[0].Bucket.Before(res.TimeBuckets[1].Bucket) {
		t.Fatalf("TimeBuckets not in chronological order: %+v", res.TimeBuckets)
	}
}

func TestRunRegexSearch(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "regex_search", FilterRegex: `/a HTTP`,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.RegexSearch == nil || res.RegexSearch.Total != 2 {
		t.Fatalf("RegexSearch = %+v, want total 2", res.RegexSearch)
	}
	if len(res.RegexSearch.Samples) != 2 {
		t.Fatalf("RegexSearch.Samples = %d, want 2", len(res.RegexSearch.Samples))
	}
}

func TestRunMissingFileFailsAtPlan(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	missing := filepath.Join(filepath.Dir(path), "does-not-exist.log")

	res, err := Run(context.Background(), Query{Path: missing, Format: "apache", Shape: "count"})
	if err == nil {
		t.Fatalf("Run with a glob matching nothing should fail at Plan, got result %+v", res)
	}
}

func TestRunEmptyFile(t *testing.T) {
	path := writeTempFile(t, "empty.log", "")
	res, err := Run(context.Background(), Query{Path: path, Format: "apache", Shape: "count"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count == nil || *res.Count != 0 {
		t.Fatalf("Count = %v, want 0", res.Count)
	}
}

func TestRunNoTrailingNewline(t *testing.T) {
	content := apacheSample[:len(apacheSample)-1] // drop the final '\n'
	path := writeTempFile(t, "access.log", content)
	res, err := Run(context.Background(), Query{Path: path, Format: "apache", Shape: "count"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Count == nil || *res.Count != 4 {
		t.Fatalf("Count = %v, want 4 (last line must still be counted without a trailing newline)", res.Count)
	}
}

const jsonSample = `{"timestamp":"2024-10-10T13:55:01Z","service":"api","status":200}
{"timestamp":"2024-10-10T13:55:02Z","service":"api","status":500}
{"timestamp":"2024-10-10T13:56:00Z","service":"auth","status":200}
`

func TestRunGroupCountJSONNullKey(t *testing.T) {
	content := jsonSample + `{"timestamp":"2024-10-10T13:57:00Z","status":200}` + "\n"
	path := writeTempFile(t, "log.jsonl", content)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "json", Shape: "group_count", GroupBy: "service",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Grouped) != 3 {
		t.Fatalf("Grouped = %+v, want 3 groups (api, auth, null sentinel)", res.Grouped)
	}
}

const csvSample = `timestamp,service,status,latency_ms
2024-10-10T13:55:01Z,api,200,12.5
2024-10-10T13:55:02Z,api,500,250.0
2024-10-10T13:56:00Z,auth,200,3.1
`

func TestRunCSVGroupByHeaderName(t *testing.T) {
	path := writeTempFile(t, "log.csv", csvSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "csv", Shape: "group_count", GroupBy: "service",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Grouped) != 2 {
		t.Fatalf("Grouped = %+v, want 2 groups", res.Grouped)
	}
}

func TestRunCSVAggregateByColumnIndex(t *testing.T) {
	path := writeTempFile(t, "log.csv", csvSample)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "csv", Shape: "num_aggregate",
		AggregateOp: "sum", AggregateColumn: "3",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.NumericAgg == nil || res.NumericAgg.Count != 3 {
		t.Fatalf("NumericAgg = %+v, want 3 samples", res.NumericAgg)
	}
}

func TestRunCSVTimeFilterUnsupported(t *testing.T) {
	path := writeTempFile(t, "log.csv", csvSample)
	_, err := Run(context.Background(), Query{
		Path: path, Format: "csv", Shape: "count", FilterTimeStart: "2024-10-10T00:00:00Z",
	})
	if err == nil {
		t.Fatalf("expected ErrUnsupported for filter_time on csv")
	}
}

func TestPlanUnknownGroupByFieldIsUnsupported(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	_, err := Plan(Query{Path: path, Format: "apache", Shape: "group_count", GroupBy: "not_a_field"})
	if err == nil {
		t.Fatalf("expected ErrUnsupported for an unknown apache group_by field")
	}
}

func TestPlanNumAggregateRequiresOpAndColumn(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	_, err := Plan(Query{Path: path, Format: "apache", Shape: "num_aggregate"})
	if err == nil {
		t.Fatalf("expected ErrMalformedQuery when aggregate_op/aggregate_column are missing")
	}
}

func TestRunGroupCountByIPUsesFastPathPlan(t *testing.T) {
	path := writeTempFile(t, "access.log", apacheSample)
	p, err := Plan(Query{Path: path, Format: "apache", Shape: "group_count", GroupBy: "ip"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !p.groupByIP {
		t.Fatalf("expected groupByIP fast path to be selected for apache group_by=ip")
	}
}

const syslogSample = `Jan  1 10:15:30 web01 sshd[1234]: Accepted publickey for deploy from 10.0.0.5 port 51234 ssh2
Jan  1 10:15:31 db02 cron[5678]: (root) CMD (/usr/bin/backup.sh)
Jan  1 10:15:32 lb01 haproxy[222]: 10.0.0.7:51234 frontend backend/web01 0/0/0/1/1 200
`

// TestRunGroupCountConcurrentManyFiles exercises the
// concurrentGroupFileThreshold-triggered haxmap-backed fuse path by
// querying more files than the threshold allows for a serial fuse.
func TestRunGroupCountConcurrentManyFiles(t *testing.T) {
	dir := t.TempDir()
	wantFiles := concurrentGroupFileThreshold + 2
	for i := 0; i < wantFiles; i++ {
		name := filepath.Join(dir, fmt.Sprintf("syslog-%d.log", i))
		if err := os.WriteFile(name, []byte(syslogSample), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	res, err := Run(context.Background(), Query{
		Path: filepath.Join(dir, "*.log"), Format: "syslog", Shape: "group_count", GroupBy: "hostname",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.ScannedFiles) != wantFiles {
		t.Fatalf("ScannedFiles = %d, want %d", len(res.ScannedFiles), wantFiles)
	}
	if len(res.Grouped) != 3 {
		t.Fatalf("Grouped = %+v, want 3 distinct hostnames", res.Grouped)
	}
	total := uint64(0)
	for _, kv := range res.Grouped {
		total += kv.Value
	}
	if total != uint64(wantFiles)*3 {
		t.Fatalf("total grouped count = %d, want %d (3 hostnames per file x %d files)", total, 3*wantFiles, wantFiles)
	}
}

func TestRunGroupCountLimitTruncatesAndOrders(t *testing.T) {
	content := "10.0.0.1 - - [10/Oct/2024:13:55:01 +0000] \"GET /a HTTP/1.1\" 200 1\n" +
		"10.0.0.1 - - [10/Oct/2024:13:55:02 +0000] \"GET /a HTTP/1.1\" 200 1\n" +
		"10.0.0.1 - - [10/Oct/2024:13:55:03 +0000] \"GET /a HTTP/1.1\" 200 1\n" +
		"10.0.0.2 - - [10/Oct/2024:13:55:04 +0000] \"GET /a HTTP/1.1\" 200 1\n" +
		"10.0.0.2 - - [10/Oct/2024:13:55:05 +0000] \"GET /a HTTP/1.1\" 200 1\n" +
		"10.0.0.3 - - [10/Oct/2024:13:55:06 +0000] \"GET /a HTTP/1.1\" 200 1\n"
	path := writeTempFile(t, "access.log", content)
	res, err := Run(context.Background(), Query{
		Path: path, Format: "apache", Shape: "group_count", GroupBy: "ip", Limit: 2,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Grouped) != 2 {
		t.Fatalf("Grouped = %+v, want top 2", res.Grouped)
	}
	if res.Grouped[0].Key != "10.0.0.1" || res.Grouped[0].Value != 3 {
		t.Fatalf("Grouped[0] = %+v, want 10.0.0.1 with 3", res.Grouped[0])
	}
	if res.Grouped[1].Key != "10.0.0.2" || res.Grouped[1].Value != 2 {
		t.Fatalf("Grouped[1] = %+v, want 10.0.0.2 with 2", res.Grouped[1])
	}
}

// Package testutil generates synthetic log files in each of the four
// supported formats for use in package tests and benchmarks, the same
// cycling-fixed-sample-lines approach the teacher uses for its own
// Apache-only generator, extended to the other three formats.
package testutil

import (
	"os"
	"strings"
	"testing"
)

var apacheSampleLines = []string{
	`192.168.1.100 - - [01/Jan/2025:10:15:30 +0000] "GET /api/users HTTP/1.1" 200 1024 "-" "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"`,
	`172.16.45.67 - - [01/Jan/2025:10:15:31 +0000] "POST /api/login HTTP/1.1" 401 512 "-" "curl/7.68.0"`,
	`10.20.30.40 - - [01/Jan/2025:10:15:32 +0000] "GET /static/logo.png HTTP/1.1" 200 8192 "https://example.com/" "Mozilla/5.0 (X11; Linux x86_64)"`,
	`203.0.113.25 - admin [01/Jan/2025:10:15:33 +0000] "DELETE /api/cache HTTP/1.1" 204 0 "-" "AdminTool/2.0"`,
	`198.51.100.88 - - [01/Jan/2025:10:15:34 +0000] "GET /dataset/?limit=100&offset=50 HTTP/1.1" 200 45678 "-" "Python-requests/2.28"`,
	`192.0.2.150 - - [01/Jan/2025:10:15:35 +0000] "HEAD /robots.txt HTTP/1.1" 404 0 "-" "Googlebot/2.1"`,
	`10.0.100.200 - user [01/Jan/2025:10:15:36 +0000] "PUT /api/profile/123 HTTP/1.1" 200 2048 "-" "Mozilla/5.0 (Macintosh; Intel Mac OS X)"`,
	`172.31.255.1 - - [01/Jan/2025:10:15:37 +0000] "GET /health HTTP/1.1" 200 128 "-" "HealthChecker/1.0"`,
	`10.50.75.90 - - [01/Jan/2025:10:15:38 +0000] "OPTIONS /api/cors HTTP/1.1" 200 0 "-" "Mozilla/5.0 (iPhone; CPU iPhone OS)"`,
	`192.168.200.50 - - [01/Jan/2025:10:15:39 +0000] "GET /api/search?q=test&page=1 HTTP/1.1" 200 32768 "-" "Mozilla/5.0 (Android)"`,
}

var syslogSampleLines = []string{
	`Jan  1 10:15:30 web01 sshd[1234]: Accepted publickey for deploy from 10.0.0.5 port 51234 ssh2`,
	`Jan  1 10:15:31 web01 cron[5678]: (root) CMD (/usr/bin/backup.sh)`,
	`Jan  1 10:15:32 db02 postgres[910]: connection received: host=10.0.0.6 port=54321`,
	`Jan  1 10:15:33 web01 systemd[1]: Started Session 42 of user deploy.`,
	`Jan  1 10:15:34 lb01 haproxy[222]: 10.0.0.7:51234 [01/Jan/2025:10:15:34] frontend backend/web01 0/0/0/1/1 200`,
	`Jan  1 10:15:35 db02 postgres[910]: disconnection: session time: 0:00:05.123`,
}

var jsonSampleLines = []string{
	`{"timestamp":"2025-01-01T10:15:30Z","level":"info","service":"api","status":200,"latency_ms":12.5}`,
	`{"timestamp":"2025-01-01T10:15:31Z","level":"warn","service":"auth","status":401,"latency_ms":3.1}`,
	`{"timestamp":"2025-01-01T10:15:32Z","level":"error","service":"api","status":500,"latency_ms":250.0}`,
	`{"timestamp":"2025-01-01T10:15:33Z","level":"info","service":"cache","status":200,"latency_ms":0.8}`,
	`{"timestamp":"2025-01-01T10:15:34Z","level":"info","service":"api","status":200,"latency_ms":9.2}`,
}

var csvSampleLines = []string{
	`timestamp,service,status,latency_ms`,
	`2025-01-01T10:15:30Z,api,200,12.5`,
	`2025-01-01T10:15:31Z,auth,401,3.1`,
	`2025-01-01T10:15:32Z,api,500,250.0`,
	`2025-01-01T10:15:33Z,cache,200,0.8`,
}

func writeCyclingLog(t *testing.T, pattern string, sampleLines []string, numLines int, header bool) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp log file: %v", err)
	}

	body := sampleLines
	var content strings.Builder
	if header {
		content.WriteString(sampleLines[0])
		content.WriteString("\n")
		body = sampleLines[1:]
	}
	for i := 0; i < numLines; i++ {
		content.WriteString(body[i%len(body)])
		content.WriteString("\n")
	}

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("failed to write to temp log file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() { os.Remove(tmpFile.Name()) }
	return tmpFile.Name(), cleanup
}

// GenerateApacheLogFile creates a temporary Apache/Nginx combined log
// format file cycling through a fixed set of fictional entries.
func GenerateApacheLogFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()
	if numLines < 1 {
		numLines = 1000
	}
	return writeCyclingLog(t, "test_access_*.log", apacheSampleLines, numLines, false)
}

// GenerateSyslogFile creates a temporary RFC3164-style syslog file.
func GenerateSyslogFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()
	if numLines < 1 {
		numLines = 1000
	}
	return writeCyclingLog(t, "test_syslog_*.log", syslogSampleLines, numLines, false)
}

// GenerateJSONLogFile creates a temporary JSON-lines log file.
func GenerateJSONLogFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()
	if numLines < 1 {
		numLines = 1000
	}
	return writeCyclingLog(t, "test_json_*.log", jsonSampleLines, numLines, false)
}

// GenerateCSVFile creates a temporary CSV file with a header row.
func GenerateCSVFile(t *testing.T, numLines int) (string, func()) {
	t.Helper()
	if numLines < 1 {
		numLines = 1000
	}
	return writeCyclingLog(t, "test_csv_*.csv", csvSampleLines, numLines, true)
}

// TempFilePath returns a cross-platform temporary file path with the
// given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path)

	return path
}

// TempDirPath returns a cross-platform temporary directory path.
func TempDirPath(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

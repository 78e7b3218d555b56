package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	totalLines     = 64000 // Total number of access log lines to generate
	malformedEvery = 16    // Every 16th line is malformed, so 60000 lines parse
	logStamp       = "20171228"
	reportDate     = "2017-12-28"
)

var (
	urls = []string{
		"/api/v2/banner/25019354",
		"/api/1/photogenic_banners/list/?server_name=WIN7RB4",
		"/api/v2/group/7786679/statistic/sites/?date_type=day&date_from=2017-06-28&date_to=2017-06-28",
		"/export/appinstall_raw/2017-06-29/",
	}
	// request times in milliseconds, per URL; the last URL is the slowest in total
	requestMillis = []int{100, 200, 300, 400}
)

// ### End - fixed configs

type runResult struct {
	Outcome       string `json:"outcome"`
	ReportKey     string `json:"reportKey"`
	TotalRecords  int64  `json:"totalRecords"`
	ParsedRecords int64  `json:"parsedRecords"`
}

// main runs the e2e scenario: 001_daily_report
//
// This scenario tests the end-to-end flow of a serve mode analyzer: log discovery, gzip
// decompression, parsing, aggregation, ranking and idempotent report publishing. It writes one
// gzip compressed ui access log and triggers analysis runs concurrently through the HTTP API.
//
// Start the analyzer first, pointing it at the scenario directories:
//
//	LOG_ANALYZER_LOG_DIR=.tmp/log LOG_ANALYZER_REPORT_DIR=.tmp/reports go run ./cmd/analyzer --serve
//
// What it tests:
//   - POST /runs single flight: concurrent runs get 409 Conflict while one run is in progress
//   - Report idempotency: a run after the report exists ends with report_already_exists
//   - GET /reports lists the date, GET /reports/{date} serves the rendered report
//
// Expected results:
//   - Exactly one run ends with report_generated, with 64000 records of which 60000 parsed
//   - Every other concurrent request either gets 409 or report_already_exists
//   - The report lists the 4 URLs, the slowest in total first
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the analyzer API server
	parallel := 8                      // Number of concurrent POST /runs requests
	logDir := ".tmp/log"               // Log directory path relative to project root
	reportDir := ".tmp/reports"        // Report directory path relative to project root
	wantCleanDirs := true              // If true, clean up both directories before running scenario

	projectRoot, err := findProjectRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	logPath := filepath.Join(projectRoot, logDir)
	reportPath := filepath.Join(projectRoot, reportDir)

	if wantCleanDirs {
		fmt.Printf("Cleaning directories: %s, %s\n", logPath, reportPath)
		for _, dir := range []string{logPath, reportPath} {
			if err := os.RemoveAll(dir); err != nil {
				fmt.Fprintf(os.Stderr, "WARNING: Failed to clean %s: %v\n", dir, err)
			}
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_daily_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("LOG_PATH: %s\n", logPath)
	fmt.Printf("REPORT_PATH: %s\n", reportPath)
	fmt.Printf("TOTAL_LINES: %d\n", totalLines)
	fmt.Println()

	logFile := filepath.Join(logPath, "nginx-access-ui.log-"+logStamp+".gz")
	if err := writeLog(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to write log: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %s\n\n", logFile)

	var wg sync.WaitGroup
	var generated, alreadyExists, conflicted, failed int64
	for i := 0; i < parallel; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status, result, err := postRun(baseURL)
			switch {
			case err != nil:
				fmt.Fprintf(os.Stderr, "ERROR: Run %d failed: %v\n", i, err)
				atomic.AddInt64(&failed, 1)
			case status == http.StatusConflict:
				atomic.AddInt64(&conflicted, 1)
			case status == http.StatusOK && result.Outcome == "report_generated":
				atomic.AddInt64(&generated, 1)
				if result.TotalRecords != totalLines || result.ParsedRecords != totalLines-totalLines/malformedEvery {
					fmt.Fprintf(os.Stderr, "ERROR: Unexpected record counts: %+v\n", result)
					atomic.AddInt64(&failed, 1)
				}
			case status == http.StatusOK && result.Outcome == "report_already_exists":
				atomic.AddInt64(&alreadyExists, 1)
			default:
				fmt.Fprintf(os.Stderr, "ERROR: Run %d: unexpected status %d, outcome %q\n", i, status, result.Outcome)
				atomic.AddInt64(&failed, 1)
			}
		}(i)
	}
	wg.Wait()

	if generated != 1 || failed != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: want exactly one generated report and no failures, got generated=%d failed=%d\n", generated, failed)
		os.Exit(1)
	}

	status, result, err := postRun(baseURL)
	if err != nil || status != http.StatusOK || result.Outcome != "report_already_exists" {
		fmt.Fprintf(os.Stderr, "ERROR: rerun should be a no-op, got status=%d outcome=%q err=%v\n", status, result.Outcome, err)
		os.Exit(1)
	}

	if err := checkReport(baseURL); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Generated: %d\n", generated)
	fmt.Printf("Already exists: %d\n", alreadyExists)
	fmt.Printf("Conflicted request: %d\n", conflicted)
	fmt.Println("Scenario completed successfully")
}

func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("could not find go.mod, run from the project root")
}

func logLine(i int) string {
	if i%malformedEvery == 0 {
		return fmt.Sprintf(`10.0.0.%d -  - [28/Dec/2017:18:03:%02d +0300] "-" 400 0 "-" "-" "-" "-" "-" 0.000`, i%256, i%60)
	}
	u := i % len(urls)
	return fmt.Sprintf(`10.0.0.%d -  - [28/Dec/2017:18:03:%02d +0300] "GET %s HTTP/1.1" 200 927 "-" "curl/7.88.1" "-" "%d-e2e" "-" %d.%03d`,
		i%256, i%60, urls[u], i, requestMillis[u]/1000, requestMillis[u]%1000)
}

func writeLog(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	for i := 0; i < totalLines; i++ {
		if _, err := fmt.Fprintln(w, logLine(i)); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func postRun(baseURL string) (int, runResult, error) {
	var result runResult
	resp, err := http.Post(baseURL+"/runs", "application/json", nil)
	if err != nil {
		return 0, result, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return resp.StatusCode, result, fmt.Errorf("failed to decode run result: %w", err)
		}
	}
	return resp.StatusCode, result, nil
}

func checkReport(baseURL string) error {
	resp, err := http.Get(baseURL + "/reports")
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	defer resp.Body.Close()
	list, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(list), reportDate) {
		return fmt.Errorf("report %s missing from list: %s", reportDate, list)
	}

	resp, err = http.Get(baseURL + "/reports/" + reportDate)
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d for report", resp.StatusCode)
	}
	html, _ := io.ReadAll(resp.Body)
	slowest := strings.Index(string(html), "/export/appinstall_raw/2017-06-29/")
	fastest := strings.Index(string(html), "/api/v2/banner/25019354")
	if slowest < 0 || fastest < 0 || slowest > fastest {
		return fmt.Errorf("report rows missing or out of order")
	}
	return nil
}

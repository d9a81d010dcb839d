// Package main provides a performance benchmarking tool for the gitactivity CLI.
// It measures execution times across repositories and diff modes,
// running each case multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - gitactivity binary installed and available in PATH
// - Test repositories cloned to the specified base directory, with remote branches fetched
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Repository  string
	DiffMode    string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase    string
	Timeout     time.Duration
	Days        int
	NoCacheRuns int
	CacheRuns   int
	TestRepos   []string
	RepoPaths   map[string][]string
	DiffModes   []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		RepoBase:    os.Args[1],
		Timeout:     5 * time.Minute,
		Days:        365,
		NoCacheRuns: 3,
		CacheRuns:   4,
		TestRepos:   []string{"fd", "git", "kubernetes"},
		RepoPaths: map[string][]string{
			"fd":         {"src", "README.md"},
			"git":        {"builtin", "Documentation"},
			"kubernetes": {"pkg/kubelet", "cmd"},
		},
		DiffModes: []string{"merge-base", "direct"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gitactivity binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gitactivity"); err != nil {
		return fmt.Errorf("gitactivity binary not found in PATH")
	}
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}
	return nil
}

// runBenchmarks executes every diff mode across the configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d days, no-cache: %d runs, cache: %d runs\n",
		len(config.TestRepos), config.Timeout, config.Days, config.NoCacheRuns, config.CacheRuns)

	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		for _, mode := range config.DiffModes {
			results = append(results, runBenchmarkSuite(config, repo, repoPath, mode))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache phases for one diff mode
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, mode string) BenchmarkResult {
	fmt.Printf("Running %s diff on %s\n", mode, repo)

	cacheFile := filepath.Join(os.TempDir(), fmt.Sprintf("gitactivity_bench_%s_%s.db", repo, mode))
	_ = os.Remove(cacheFile)
	defer func() { _ = os.Remove(cacheFile) }()

	runPhase := func(cacheArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, repoPath, benchmarkArgs(config, repo, mode, cacheArgs), numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	_, noCacheAvg := runPhase([]string{"--cache-backend", "none"}, config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase([]string{"--cache-backend", "sqlite", "--cache-db-connect", cacheFile}, config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Repository:  repo,
		DiffMode:    mode,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// benchmarkArgs builds the gitactivity argument list for one phase
func benchmarkArgs(config BenchmarkConfig, repo, mode string, cacheArgs []string) []string {
	args := []string{"--no-fetch", "--days", fmt.Sprint(config.Days), "--diff-mode", mode}
	args = append(args, cacheArgs...)
	return append(args, config.RepoPaths[repo]...)
}

// runBenchmark executes gitactivity multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, repoPath string, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gitactivity", args...)
		cmd.Dir = repoPath

		done := make(chan error, 1)
		go func() {
			_, err := cmd.CombinedOutput()
			done <- err
		}()

		select {
		case err := <-done:
			if err == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gitactivity_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"repo", "diff_mode", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.DiffMode, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-12s %-10s: No-cache: %s, Cold: %s, Warm: %s\n",
			result.Repository, result.DiffMode, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
}

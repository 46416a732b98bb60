// Package main provides a performance benchmarking tool for the Shiftgrid CLI.
// It generates synthetic rosters of increasing size, runs each analysis command
// several times without a cache and with the SQLite result cache, treating the
// first cached run as cold and averaging the rest as warm, and writes CSV output
// for performance analysis and documentation.
//
// Prerequisites:
// - shiftgrid binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic datasets are written
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/shiftgrid/schema"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// person and entry mirror the records of a JSON dataset file.
type person struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Sites []string `json:"sites"`
}

type entry struct {
	PersonID string `json:"personId"`
	Date     string `json:"date"`
	Service  string `json:"service"`
}

type dataset struct {
	Personnel []person `json:"personnel"`
	Schedules []entry  `json:"schedules"`
}

// DatasetSize describes one synthetic roster.
type DatasetSize struct {
	Name   string
	People int
	Days   int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	NoCacheRuns int
	CacheRuns   int
	Sizes       []DatasetSize
	Commands    []string
	RangeArgs   []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Sizes: []DatasetSize{
			{Name: "clinic", People: 40, Days: 120},
			{Name: "hospital", People: 400, Days: 240},
			{Name: "network", People: 2500, Days: 365},
		},
		Commands:  []string{"streaks", "windows", "grid"},
		RangeArgs: []string{"--range", "monthly", "--pivot", "2025-06", "--select", "2025-06"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("shiftgrid", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the shiftgrid binary and the work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("shiftgrid"); err != nil {
		return errors.New("shiftgrid binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// generateDataset writes a roster where everyone works most days with occasional
// days off, ending on the last day of the benchmarked month.
func generateDataset(path string, size DatasetSize) error {
	rng := rand.New(rand.NewPCG(uint64(size.People), uint64(size.Days)))
	last := schema.NewDay(2025, time.June, 30)
	first := last.AddDays(-(size.Days - 1))
	sites := []string{"north", "south", "east", "west"}
	services := []string{"Ward A", "Ward B", "Ward C", "Theatre", "Clinic"}

	ds := dataset{}
	for i := range size.People {
		id := fmt.Sprintf("p-%05d", i+1)
		ds.Personnel = append(ds.Personnel, person{
			ID:    id,
			Name:  fmt.Sprintf("Person %d", i+1),
			Sites: []string{sites[i%len(sites)]},
		})
		for d := first; d <= last; d = d.AddDays(1) {
			switch r := rng.IntN(10); {
			case r < 7:
				ds.Schedules = append(ds.Schedules, entry{
					PersonID: id,
					Date:     d.String(),
					Service:  services[rng.IntN(len(services))],
				})
			case r == 7:
				ds.Schedules = append(ds.Schedules, entry{
					PersonID: id,
					Date:     d.String(),
					Service:  "Voluntary-Day-off",
				})
			}
		}
	}

	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// runBenchmarks executes all benchmark tests across configured dataset sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, no-cache: %d runs, cache: %d runs\n",
		len(config.Sizes), config.Timeout, config.NoCacheRuns, config.CacheRuns)

	for _, size := range config.Sizes {
		path := filepath.Join(config.WorkDir, size.Name+".json")
		fmt.Printf("Generating %s (%d people, %d days)\n", size.Name, size.People, size.Days)
		if err := generateDataset(path, size); err != nil {
			fmt.Printf("Warning: failed to generate %s: %v\n", size.Name, err)
			continue
		}

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, size.Name, path, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, name, path, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, name)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, path, command, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     name,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a shiftgrid command multiple times with the given cache backend
// and returns the cold time and the warm times.
func runBenchmark(config BenchmarkConfig, path, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command, "--dataset", path, "--cache-backend", cacheBackend, "--color", "no", "--width", "200"}
	args = append(args, config.RangeArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("shiftgrid", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, cacheBackend) {
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

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, cacheBackend string) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analysis completed in") &&
		strings.Contains(outputStr, "Cache backend: "+cacheBackend)
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("shiftgrid_benchmark_%s.csv", timestamp))

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
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range config.Commands {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-10s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}

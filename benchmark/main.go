// Package main provides a performance benchmarking tool for the Gradebook CLI.
// It generates synthetic rosters of different sizes and formats, runs each
// command several times, treating the first successful run as cold and averaging
// the rest as warm, and writes the timings to CSV.
//
// Prerequisites:
// - gradebook binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where rosters and the settings file are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Roster   string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir      string
	SettingsPath string
	Timeout      time.Duration
	Runs         int
	Sizes        []int
	Formats      []string
}

// headerSkip is the preamble length written above every generated header row.
const headerSkip = 15

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir:      workDir,
		SettingsPath: filepath.Join(workDir, "settings.json"),
		Timeout:      2 * time.Minute,
		Runs:         5,
		Sizes:        []int{100, 1000, 10000, 50000},
		Formats:      []string{"csv", "xlsx"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Preparing settings...\n")
	if err := prepareSettings(config); err != nil {
		fmt.Printf("Failed to prepare settings: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the gradebook binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("gradebook"); err != nil {
		return fmt.Errorf("gradebook binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// prepareSettings writes a fresh settings file with one balanced course.
func prepareSettings(config BenchmarkConfig) error {
	steps := [][]string{
		{"settings", "init", "--force"},
		{"settings", "course", "add", "Bench"},
		{"settings", "criteria", "Bench", "--criterion", "Participation=40", "--criterion", "Homework=60"},
	}
	for _, args := range steps {
		args = append(args, "--settings", config.SettingsPath)
		if output, err := exec.Command("gradebook", args...).CombinedOutput(); err != nil {
			return fmt.Errorf("gradebook %s: %w\nOutput: %s", strings.Join(args, " "), err, output)
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across generated rosters
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %d formats, %v timeout, %d runs\n",
		len(config.Sizes), len(config.Formats), config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		for _, format := range config.Formats {
			roster, err := generateRoster(config.WorkDir, size, format)
			if err != nil {
				fmt.Printf("Warning: cannot generate %d student %s roster: %v\n", size, format, err)
				continue
			}
			name := filepath.Base(roster)
			fmt.Printf("Benchmarking %s\n", name)

			results = append(results, runBenchmarkSuite(config, name, "ingest", roster))
			results = append(results, runBenchmarkSuite(config, name, "grade", roster, "--course", "Bench", "--output", "csv", "--output-file", os.DevNull))
			results = append(results, runBenchmarkSuite(config, name, "export", roster, "--course", "Bench", "--output-file", roster+".graded.xlsx"))
		}
	}

	return results
}

// runBenchmarkSuite runs one command several times and summarizes the timings
func runBenchmarkSuite(config BenchmarkConfig, roster, command string, extraArgs ...string) BenchmarkResult {
	fmt.Printf("  %s (%d runs)\n", command, config.Runs)

	cold, warm := runBenchmark(config, command, extraArgs, config.Runs)

	coldTime := "TIMEOUT"
	if cold > 0 {
		coldTime = fmt.Sprintf("%.3fs", cold)
	}
	warmTime := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmTime = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTime, warmTime)

	return BenchmarkResult{
		Roster:   roster,
		Command:  command,
		ColdTime: coldTime,
		WarmTime: warmTime,
	}
}

// runBenchmark executes a gradebook command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, command string, extraArgs []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := append([]string{command}, extraArgs...)
	args = append(args, "--settings", config.SettingsPath, "--header-skip", fmt.Sprint(headerSkip), "--color", "no")

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gradebook", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// generateRoster writes a synthetic roster with a school-style preamble.
func generateRoster(dir string, size int, format string) (string, error) {
	header := []string{"Okul No", "Adı Soyadı", "Y1", "Y2", "P1", "P2", "PROJE"}
	rows := make([][]string, size)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprint(size - i), // reverse order so sorting has work to do
			fmt.Sprintf("Student %d", i+1),
			mark(), mark(), mark(), mark(), mark(),
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("roster_%d.%s", size, format))
	switch format {
	case "csv":
		return path, writeCSVRoster(path, header, rows)
	case "xlsx":
		return path, writeWorkbookRoster(path, header, rows)
	default:
		return "", fmt.Errorf("unsupported format %s", format)
	}
}

// mark returns a random mark with a comma decimal separator, or a blank cell.
func mark() string {
	if rand.IntN(20) == 0 {
		return ""
	}
	return strings.ReplaceAll(fmt.Sprintf("%.1f", rand.Float64()*100), ".", ",")
}

func writeCSVRoster(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	w.Comma = ';'
	for i := range headerSkip {
		if err := w.Write([]string{fmt.Sprintf("Report line %d", i+1)}); err != nil {
			return err
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func writeWorkbookRoster(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	line := 1
	writeLine := func(cells []string) error {
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}
		line++
		return sw.SetRow(cell, values)
	}
	for i := range headerSkip {
		if err := writeLine([]string{fmt.Sprintf("Report line %d", i+1)}); err != nil {
			return err
		}
	}
	if err := writeLine(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeLine(r); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gradebook_benchmark_%s.csv", timestamp)

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

	if err := writer.Write([]string{"roster", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Roster, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range []string{"ingest", "grade", "export"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-22s: Cold: %s, Warm: %s\n", result.Roster, result.ColdTime, result.WarmTime)
			}
		}
	}
}

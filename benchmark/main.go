// Package main times the udsnap CLI on synthetic palettes of increasing size.
// Every command runs once per phase with the cache disabled and then against
// SQLite, where the first run fills the cache and the remaining runs hit it.
// Timings are written to a CSV file under /tmp.
//
// The udsnap binary must be on PATH.
//
// Usage: go run benchmark/main.go [work-dir]
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// timing is the outcome of one command on one palette size.
type timing struct {
	size    int
	command string
	noCache []time.Duration
	cached  []time.Duration // first entry fills the cache
}

type plan struct {
	workDir     string
	timeout     time.Duration
	noCacheRuns int
	cacheRuns   int
	sizes       []int
	commands    []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	p := plan{
		workDir:     os.Args[1],
		timeout:     time.Minute,
		noCacheRuns: 3,
		cacheRuns:   4,
		sizes:       []int{5, 10, 20},
		commands:    []string{"optimize", "tokens", "snap", "harmony"},
	}
	if err := p.check(); err != nil {
		fmt.Printf("Cannot benchmark: %v\n", err)
		os.Exit(1)
	}

	if out, err := exec.Command("udsnap", "cache", "clear").CombinedOutput(); err != nil {
		fmt.Printf("Warning: cache clear failed: %v\n%s\n", err, out)
	}

	var timings []timing
	for _, size := range p.sizes {
		palette := syntheticPalette(size)
		for _, command := range p.commands {
			t := timing{size: size, command: command}
			t.noCache = p.repeat(command, "none", palette, p.noCacheRuns)
			t.cached = p.repeat(command, "sqlite", palette, p.cacheRuns)
			fmt.Printf("%-8s %2d colors  no-cache %s  cold %s  warm %s\n",
				command, size, mean(t.noCache), cold(t.cached), warm(t.cached))
			timings = append(timings, t)
		}
	}

	path := fmt.Sprintf("/tmp/udsnap_benchmark_%s.csv", time.Now().Format("20060102_150405"))
	if err := writeTimings(path, timings); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results saved to %s\n", path)
}

func (p plan) check() error {
	if _, err := exec.LookPath("udsnap"); err != nil {
		return errors.New("udsnap binary not found in PATH")
	}
	if info, err := os.Stat(p.workDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", p.workDir)
	}
	return nil
}

// syntheticPalette spreads n colors evenly around the HCL hue wheel.
func syntheticPalette(n int) []string {
	palette := make([]string, n)
	for i := range palette {
		palette[i] = colorful.Hcl(360*float64(i)/float64(n), 0.45, 0.6).Clamped().Hex()
	}
	return palette
}

// repeat runs command runs times and keeps the durations of runs that
// finished in time and printed valid JSON.
func (p plan) repeat(command, backend string, palette []string, runs int) []time.Duration {
	args := append([]string{command, "--cache-backend", backend, "--output", "json", "--anchor", palette[0]}, palette...)
	var durations []time.Duration
	for range runs {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		cmd := exec.CommandContext(ctx, "udsnap", args...)
		cmd.Dir = p.workDir
		start := time.Now()
		out, err := cmd.Output()
		elapsed := time.Since(start)
		cancel()
		if err == nil && json.Valid(out) {
			durations = append(durations, elapsed)
		}
	}
	return durations
}

func mean(ds []time.Duration) string {
	if len(ds) == 0 {
		return "TIMEOUT"
	}
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	return seconds(sum / time.Duration(len(ds)))
}

func cold(ds []time.Duration) string {
	if len(ds) == 0 {
		return "TIMEOUT"
	}
	return seconds(ds[0])
}

func warm(ds []time.Duration) string {
	if len(ds) < 2 {
		return "TIMEOUT"
	}
	return mean(ds[1:])
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64) + "s"
}

func writeTimings(path string, timings []timing) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	rows := [][]string{{"size", "cmd", "no_cache_avg", "cold_time", "warm_avg"}}
	for _, t := range timings {
		rows = append(rows, []string{strconv.Itoa(t.size), t.command, mean(t.noCache), cold(t.cached), warm(t.cached)})
	}
	return w.WriteAll(rows)
}

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/decl/parser"
)

var benchFlags struct {
	file        string
	iterations  int
	concurrency int
	format      string
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure parser throughput",
	Long: `Parse a declaration file repeatedly and report latency.

Every iteration parses the whole file. Iterations are spread over
--concurrency workers sharing one parser.

Metrics Collected:
  - Parse throughput (files/sec and declarations/sec)
  - Latency percentiles (p50, p95, p99, max)
  - Parse failures

Examples:
  # Basic benchmark
  rustalize bench --file shapes.rs

  # Many iterations on four workers
  rustalize bench --file shapes.rs --iterations 100000 --concurrency 4`,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().StringVarP(&benchFlags.file, "file", "f", "", "declaration file to parse (required)")
	benchCmd.Flags().IntVarP(&benchFlags.iterations, "iterations", "n", 1000, "number of parses")
	benchCmd.Flags().IntVar(&benchFlags.concurrency, "concurrency", 1, "concurrent workers")
	benchCmd.Flags().StringVar(&benchFlags.format, "format", "text", "output format: text, json")
	_ = benchCmd.MarkFlagRequired("file")
}

// BenchResult summarizes one bench run.
type BenchResult struct {
	File         string        `json:"file"`
	Iterations   int           `json:"iterations"`
	Concurrency  int           `json:"concurrency"`
	Declarations int           `json:"declarations"`
	Failed       int           `json:"failed"`
	Duration     time.Duration `json:"duration_ns"`
	Min          time.Duration `json:"min_ns"`
	Mean         time.Duration `json:"mean_ns"`
	Median       time.Duration `json:"median_ns"`
	P95          time.Duration `json:"p95_ns"`
	P99          time.Duration `json:"p99_ns"`
	Max          time.Duration `json:"max_ns"`
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFlags.iterations <= 0 {
		return cli.NewCommandError("bench", fmt.Errorf("--iterations must be positive"))
	}
	if benchFlags.concurrency <= 0 {
		return cli.NewCommandError("bench", fmt.Errorf("--concurrency must be positive"))
	}
	format, err := cli.ParseOutputFormat(benchFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewCommandError("bench", err)
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}

	src, err := os.ReadFile(benchFlags.file)
	if err != nil {
		return cli.NewCommandError("bench", fmt.Errorf("failed to read %s: %w", benchFlags.file, err))
	}

	p := e.newParser()
	nodes, err := p.ParseAll(benchFlags.file, string(src))
	if err != nil {
		return cli.NewFindingsError("bench", err)
	}

	var progress cli.ProgressReporter = cli.NoopProgress{}
	if f := asFile(e.errOut); format == cli.FormatText && f != nil && cli.IsTerminal(f) {
		progress = cli.NewLabeledProgress(f, "Parsing")
	}

	result := benchParse(p, benchFlags.file, string(src), benchFlags.iterations, benchFlags.concurrency, progress)
	result.Declarations = len(nodes)

	if format == cli.FormatJSON {
		if err := cli.NewFormatter(cli.FormatJSON).FormatTo(e.out, result); err != nil {
			return cli.NewCommandError("bench", err)
		}
		return nil
	}
	writeBenchText(e.out, result)
	return nil
}

// benchParse parses src iterations times on concurrency workers.
func benchParse(p *parser.Parser, file, src string, iterations, concurrency int, progress cli.ProgressReporter) *BenchResult {
	latencies := make([]time.Duration, iterations)
	var (
		next   int64 = -1
		done   int64
		failed int64
		wg     sync.WaitGroup
	)

	progress.Start(int64(iterations))
	start := time.Now()

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := atomic.AddInt64(&next, 1)
				if i >= int64(iterations) {
					return
				}
				t := time.Now()
				if _, err := p.ParseAll(file, src); err != nil {
					atomic.AddInt64(&failed, 1)
				}
				latencies[i] = time.Since(t)
				progress.Update(atomic.AddInt64(&done, 1))
			}
		}()
	}
	wg.Wait()
	progress.Finish()

	result := &BenchResult{
		File:        file,
		Iterations:  iterations,
		Concurrency: concurrency,
		Failed:      int(failed),
		Duration:    time.Since(start),
	}
	result.Min, result.Mean, result.Median, result.P95, result.P99, result.Max = calculatePercentiles(latencies)
	return result
}

func writeBenchText(w io.Writer, r *BenchResult) {
	fmt.Fprintln(w, "Rustalize Benchmark")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "File:            %s (%d declaration(s))\n", r.File, r.Declarations)
	fmt.Fprintf(w, "Iterations:      %d on %d worker(s), %d failed\n", r.Iterations, r.Concurrency, r.Failed)
	fmt.Fprintf(w, "Duration:        %.3fs\n", r.Duration.Seconds())

	if secs := r.Duration.Seconds(); secs > 0 {
		fmt.Fprintf(w, "Throughput:      %.0f files/s, %.0f declarations/s\n",
			float64(r.Iterations)/secs, float64(r.Iterations*r.Declarations)/secs)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Latency:")
	fmt.Fprintf(w, "  Min:     %s\n", r.Min)
	fmt.Fprintf(w, "  Mean:    %s\n", r.Mean)
	fmt.Fprintf(w, "  Median:  %s\n", r.Median)
	fmt.Fprintf(w, "  p95:     %s\n", r.P95)
	fmt.Fprintf(w, "  p99:     %s\n", r.P99)
	fmt.Fprintf(w, "  Max:     %s\n", r.Max)
}

func calculatePercentiles(latencies []time.Duration) (min, mean, median, p95, p99, max time.Duration) {
	if len(latencies) == 0 {
		return
	}

	sorted := make([]time.Duration, len(latencies))
	copy(sorted, latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	min = sorted[0]
	max = sorted[len(sorted)-1]

	var sum time.Duration
	for _, lat := range sorted {
		sum += lat
	}
	mean = sum / time.Duration(len(sorted))

	median = sorted[len(sorted)/2]
	p95 = sorted[int(float64(len(sorted))*0.95)]
	p99 = sorted[int(float64(len(sorted))*0.99)]

	return
}

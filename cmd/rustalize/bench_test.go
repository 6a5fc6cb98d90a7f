package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"mercator-hq/rustalize/pkg/cli"
	"mercator-hq/rustalize/pkg/decl/parser"
)

func TestBenchParse(t *testing.T) {
	src := "pub struct Point { x: f64, y: f64 }\npub enum Mode { On, Off }\n"

	for _, concurrency := range []int{1, 4} {
		result := benchParse(parser.NewParser(), "bench.rs", src, 50, concurrency, cli.NoopProgress{})
		if result.Iterations != 50 || result.Failed != 0 {
			t.Errorf("concurrency=%d: result = %+v, want 50 clean iterations", concurrency, result)
		}
		if result.Min > result.Median || result.Median > result.Max {
			t.Errorf("concurrency=%d: latencies out of order: %+v", concurrency, result)
		}
	}
}

func TestRunBench(t *testing.T) {
	cmd, out := newTestCommand(t)
	benchFlags.file = writeSource(t, "shapes.rs", "pub trait Shape { fn area(&self) -> f64; }\n")
	benchFlags.iterations = 20
	benchFlags.concurrency = 2
	benchFlags.format = "json"

	if err := runBench(cmd, nil); err != nil {
		t.Fatalf("runBench() error = %v", err)
	}

	var result BenchResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if result.Declarations != 1 || result.Iterations != 20 {
		t.Errorf("result = %+v, want 1 declaration over 20 iterations", result)
	}

	out.Reset()
	benchFlags.format = "text"
	if err := runBench(cmd, nil); err != nil {
		t.Fatalf("runBench() error = %v", err)
	}
	if !strings.Contains(out.String(), "Throughput:") {
		t.Errorf("output = %q, want throughput line", out.String())
	}
}

func TestRunBenchErrors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		iterations int
		wantCode   int
	}{
		{"zero iterations", "pub enum A { B }", 0, cli.ExitError},
		{"parse error", "pub enum A B", 10, cli.ExitFindings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newTestCommand(t)
			benchFlags.file = writeSource(t, "a.rs", tt.content)
			benchFlags.iterations = tt.iterations
			benchFlags.concurrency = 1
			benchFlags.format = "text"

			if code := cli.ExitCode(runBench(cmd, nil)); code != tt.wantCode {
				t.Errorf("ExitCode() = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestCalculatePercentiles(t *testing.T) {
	var latencies []time.Duration
	for i := 100; i >= 1; i-- {
		latencies = append(latencies, time.Duration(i)*time.Millisecond)
	}

	min, mean, median, p95, p99, max := calculatePercentiles(latencies)

	checks := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"min", min, 1 * time.Millisecond},
		{"mean", mean, 50500 * time.Microsecond},
		{"median", median, 51 * time.Millisecond},
		{"p95", p95, 96 * time.Millisecond},
		{"p99", p99, 100 * time.Millisecond},
		{"max", max, 100 * time.Millisecond},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if min, _, _, _, _, max := calculatePercentiles(nil); min != 0 || max != 0 {
		t.Error("calculatePercentiles(nil) should return zeros")
	}
}

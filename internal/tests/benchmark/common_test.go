package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/kvarea-go/internal/area"
	"github.com/yndnr/kvarea-go/internal/storage"
)

// EntryCounts defines the entry counts for benchmarking.
var EntryCounts = []int{5000, 10000, 50000, 100000}

// SmallEntryCounts for quick benchmarks.
var SmallEntryCounts = []int{1000, 5000, 10000}

// newBenchArea creates an in-memory area for benchmarking.
func newBenchArea(b *testing.B, opts ...area.Option) *area.StorageArea {
	b.Helper()

	engine, err := storage.NewBadgerEngine(storage.Config{InMemory: true}, nil)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { engine.Close() })

	a, err := area.New(engine, "bench", opts...)
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { a.Close(context.Background()) })
	return a
}

// benchValue is a payload shaped like a typical stored record.
func benchValue(i int) map[string]any {
	return map[string]any{
		"user":   fmt.Sprintf("user-%d", i%1000),
		"count":  float64(i),
		"active": i%2 == 0,
	}
}

// prefillArea stores count entries and returns their keys.
func prefillArea(b *testing.B, a *area.StorageArea, count int) []string {
	b.Helper()

	ctx := context.Background()
	keys := make([]string, count)
	for i := 0; i < count; i++ {
		keys[i] = fmt.Sprintf("entry-%08d", i)
		if err := a.Set(ctx, keys[i], benchValue(i)); err != nil {
			b.Fatalf("Set failed: %v", err)
		}
	}
	return keys
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithEntryCounts runs a benchmark function with various entry counts.
func runWithEntryCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("entries_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}

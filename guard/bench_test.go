package guard

import (
	"context"
	"testing"
	"time"
)

func benchGuard(b *testing.B) *Guard {
	b.Helper()
	g := New(Config{
		Connect: func(ctx context.Context, target Target) (Handle, error) {
			return "conn", nil
		},
	})
	if err := g.Initialize(context.Background(), Target{Endpoint: "service:9400"}); err != nil {
		b.Fatalf("Initialize() error = %v", err)
	}
	return g
}

// BenchmarkCurrent measures the read path taken by every caller.
func BenchmarkCurrent(b *testing.B) {
	g := benchGuard(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Current()
	}
}

// BenchmarkReportFailure_RateLimited measures the fast-path rejection
// that the overwhelming majority of concurrent reports should hit.
func BenchmarkReportFailure_RateLimited(b *testing.B) {
	g := benchGuard(b)
	g.lastReconnect.Store(time.Now().UnixNano())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.ReportFailure()
	}
}

// BenchmarkReportFailure_RateLimited_Parallel measures the fast path
// under contention.
func BenchmarkReportFailure_RateLimited_Parallel(b *testing.B) {
	g := benchGuard(b)
	g.lastReconnect.Store(time.Now().UnixNano())

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			g.ReportFailure()
		}
	})
}

// BenchmarkStats measures snapshot retrieval.
func BenchmarkStats(b *testing.B) {
	g := benchGuard(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.Stats()
	}
}

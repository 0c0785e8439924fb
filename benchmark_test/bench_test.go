package benchmark_test

import (
	"context"
	"testing"

	"github.com/hupe1980/epigo"
	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/residual"
	"github.com/hupe1980/epigo/solver"
	"github.com/hupe1980/epigo/testutil"
)

var fundamental = model.Mat3{0, 1, 1, 1, 0, 1, -1, 2, 1}

func benchScene(b *testing.B, inliers, outliers int) *match.Set {
	b.Helper()

	return testutil.FundamentalScene(testutil.NewRNG(42), fundamental, inliers, outliers, 10)
}

func BenchmarkSevenPoint(b *testing.B) {
	b.ReportAllocs()

	set := benchScene(b, 7, 0)
	sample := []int{0, 1, 2, 3, 4, 5, 6}

	var (
		sp     solver.SevenPoint
		models []model.Mat3
	)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		models, _ = sp.EstimateModel(set, sample, models[:0])
	}
}

func BenchmarkEightPointRefit(b *testing.B) {
	b.ReportAllocs()

	set := benchScene(b, 200, 0)

	sample := make([]int, set.Len())
	for i := range sample {
		sample[i] = i
	}

	var (
		ep     solver.EightPoint
		models []model.Mat3
	)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		models, _ = ep.EstimateModelNonminimal(set, sample, models[:0])
	}
}

func BenchmarkSampson(b *testing.B) {
	b.ReportAllocs()

	set := benchScene(b, 1000, 0)

	var sink float64

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for j := 0; j < set.Len(); j++ {
			x0, y0, x1, y1 := set.PointPair(j)
			sink += residual.Sampson(fundamental, x0, y0, x1, y1)
		}
	}

	_ = sink
}

func BenchmarkEstimate(b *testing.B) {
	benchmarkEstimate(b, 1)
}

func BenchmarkEstimate_Parallel(b *testing.B) {
	benchmarkEstimate(b, 4)
}

func benchmarkEstimate(b *testing.B, workers int) {
	b.ReportAllocs()

	set := benchScene(b, 400, 100)

	est, err := epigo.Fundamental(
		epigo.WithRandomSeed(1),
		epigo.WithWorkers(workers),
	)
	if err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := est.Estimate(ctx, set); err != nil {
			b.Fatal(err)
		}
	}
}

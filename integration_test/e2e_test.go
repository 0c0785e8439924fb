package integration_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/epigo"
	"github.com/hupe1980/epigo/dataset"
	"github.com/hupe1980/epigo/match"
	"github.com/hupe1980/epigo/model"
	"github.com/hupe1980/epigo/testutil"
)

var fundamental = model.Mat3{0, 1, 1, 1, 0, 1, -1, 2, 1}

func TestE2E_SaveLoadEstimate(t *testing.T) {
	for _, name := range []string{"scene.txt", "scene.zst", "scene.lz4"} {
		t.Run(name, func(t *testing.T) {
			// 1. Write a synthetic scene to disk.
			scene := testutil.FundamentalScene(testutil.NewRNG(11), fundamental, 30, 15, 10)

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, dataset.Save(path, scene))

			// 2. Load it back and estimate.
			loaded, err := dataset.Load(path)
			require.NoError(t, err)
			require.Equal(t, scene.Len(), loaded.Len())

			est, err := epigo.Fundamental(
				epigo.WithRandomSeed(3),
				epigo.WithMinIterations(500),
			)
			require.NoError(t, err)

			result, err := est.Estimate(context.Background(), loaded)
			require.NoError(t, err)

			// 3. The consensus set must be exactly the generated inliers.
			assert.Equal(t, 30, result.InlierCount)

			for i := 0; i < 30; i++ {
				assert.True(t, result.Inliers.Contains(uint32(i)))
			}

			got := result.Model.Scale(1 / result.Model.At(2, 2))
			for i := 0; i < 9; i++ {
				assert.InDelta(t, fundamental[i], got[i], 1e-6)
			}
		})
	}
}

func TestE2E_Homography(t *testing.T) {
	h := model.Mat3{2, 1, -1, 0, 3, 2, 1, 0, 4}
	scene := testutil.HomographyScene(testutil.NewRNG(13), h, 30, 15, 10)

	path := filepath.Join(t.TempDir(), "plane.zst")
	require.NoError(t, dataset.Save(path, scene))

	loaded, err := dataset.Load(path)
	require.NoError(t, err)

	est, err := epigo.Homography(
		epigo.WithRandomSeed(9),
		epigo.WithMinIterations(300),
	)
	require.NoError(t, err)

	result, err := est.Estimate(context.Background(), loaded)
	require.NoError(t, err)

	assert.Equal(t, 30, result.InlierCount)

	want := h.Scale(1 / h.At(2, 2))

	got := result.Model.Scale(1 / result.Model.At(2, 2))
	for i := 0; i < 9; i++ {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}
}

func TestE2E_ExtraColumnsSurviveRoundTrip(t *testing.T) {
	// Sets may carry match scores or scales beyond the four coordinates.
	// They must round trip through disk and be ignored by estimation.
	scene := testutil.FundamentalScene(testutil.NewRNG(11), fundamental, 30, 15, 10)

	wide, err := match.NewSet(5)
	require.NoError(t, err)

	for i := 0; i < scene.Len(); i++ {
		x0, y0, x1, y1 := scene.PointPair(i)
		require.NoError(t, wide.AppendRow(x0, y0, x1, y1, 0.25))
	}

	path := filepath.Join(t.TempDir(), "wide.lz4")
	require.NoError(t, dataset.Save(path, wide))

	loaded, err := dataset.Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, loaded.Cols())
	assert.Equal(t, 0.25, loaded.At(0, 4))

	est, err := epigo.Fundamental(
		epigo.WithRandomSeed(3),
		epigo.WithMinIterations(500),
	)
	require.NoError(t, err)

	result, err := est.Estimate(context.Background(), loaded)
	require.NoError(t, err)

	assert.Equal(t, 30, result.InlierCount)
}

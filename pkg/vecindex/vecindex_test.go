package vecindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyReturnsNilIndex(t *testing.T) {
	ix, err := Build(nil)
	require.NoError(t, err)
	assert.Nil(t, ix)

	ix, err = Build([][]float32{})
	require.NoError(t, err)
	assert.Nil(t, ix)
}

func TestBuildRejectsMixedDimensions(t *testing.T) {
	_, err := Build([][]float32{
		{1, 2, 3},
		{1, 2},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearchOrdersByAscendingDistance(t *testing.T) {
	ix, err := Build([][]float32{
		{10, 0}, // distance 100
		{1, 0},  // distance 1
		{3, 0},  // distance 9
	})
	require.NoError(t, err)
	require.Equal(t, 3, ix.Len())

	results, err := ix.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Index)
	assert.Equal(t, 2, results[1].Index)
	assert.Equal(t, 0, results[2].Index)
	for i := 1; i < len(results); i++ {
		assert.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
}

func TestSearchClampsKToIndexSize(t *testing.T) {
	ix, err := Build([][]float32{{1}, {2}})
	require.NoError(t, err)

	results, err := ix.Search([]float32{0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchRejectsNonPositiveK(t *testing.T) {
	ix, err := Build([][]float32{{1}})
	require.NoError(t, err)

	_, err = ix.Search([]float32{0}, 0)
	assert.Error(t, err)
	_, err = ix.Search([]float32{0}, -3)
	assert.Error(t, err)
}

func TestSearchRejectsQueryDimensionMismatch(t *testing.T) {
	ix, err := Build([][]float32{{1, 2}})
	require.NoError(t, err)

	_, err = ix.Search([]float32{1}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSearchIdenticalVectorHasZeroDistance(t *testing.T) {
	ix, err := Build([][]float32{{0.5, -0.25, 3}})
	require.NoError(t, err)

	results, err := ix.Search([]float32{0.5, -0.25, 3}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Index)
	assert.Equal(t, 0.0, results[0].Distance)
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	// Two vectors equidistant from the query.
	ix, err := Build([][]float32{
		{1, 0},
		{-1, 0},
		{0, 0},
	})
	require.NoError(t, err)

	results, err := ix.Search([]float32{0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, results[0].Index)
	assert.Equal(t, 0, results[1].Index)
	assert.Equal(t, 1, results[2].Index)
}

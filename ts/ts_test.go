package ts

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoints_SortByStamp(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	points := Points{
		NewPoint(base.Add(2*time.Minute), 3),
		NewPoint(base, 1),
		NewPoint(base.Add(time.Minute), 2),
	}

	sort.Sort(points)

	require.Equal(t, 3, points.N())
	require.Equal(t, base, points[0].Stamp())
	require.Equal(t, 1.0, points[0].Value())
	require.Equal(t, 3.0, points[2].Value())
}

package geo

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	london = Point{Lat: 51.5074, Lng: -0.1278}
	paris  = Point{Lat: 48.8566, Lng: 2.3522}
)

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 343.5, Haversine(london, paris), 2)
	assert.InDelta(t, 0, Haversine(london, london), 1e-9)
	assert.InDelta(t, Haversine(london, paris), Haversine(paris, london), 1e-9)
}

func TestClusterPoints(t *testing.T) {
	points := []Point{
		{Lat: 51.50, Lng: -0.12, Weight: 2},
		{Lat: 48.85, Lng: 2.35, Weight: 5},
		{Lat: 51.52, Lng: -0.10, Weight: 2},
		{Lat: 48.86, Lng: 2.34, Weight: 1},
	}
	clusters := ClusterPoints(points, 50)
	require.Len(t, clusters, 2)

	assert.Equal(t, 6.0, clusters[0].Weight)
	assert.Equal(t, 2, clusters[0].Points)
	assert.InDelta(t, 48.8517, clusters[0].Lat, 1e-3)

	assert.Equal(t, 4.0, clusters[1].Weight)
	assert.InDelta(t, 51.51, clusters[1].Lat, 1e-9)
	assert.InDelta(t, -0.11, clusters[1].Lng, 1e-9)

	// A radius wide enough to span the Channel merges everything.
	all := ClusterPoints(points, 1000)
	require.Len(t, all, 1)
	assert.Equal(t, 10.0, all[0].Weight)

	assert.Empty(t, ClusterPoints(nil, 10))
}

func TestClusterPoints_DefaultWeight(t *testing.T) {
	clusters := ClusterPoints([]Point{london, london}, 1)
	require.Len(t, clusters, 1)
	assert.Equal(t, 2.0, clusters[0].Weight)
}

func TestFromHeaders(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderLatitude, "51.5074")
	h.Set(HeaderLongitude, "-0.1278")
	h.Set(HeaderCountry, "gb")

	p, country, ok := FromHeaders(h)
	require.True(t, ok)
	assert.Equal(t, "GB", country)
	assert.Equal(t, 51.5074, p.Lat)

	h.Set(HeaderLatitude, "91")
	_, _, ok = FromHeaders(h)
	assert.False(t, ok)

	h = http.Header{}
	h.Set(HeaderCountry, "XX")
	_, country, ok = FromHeaders(h)
	assert.False(t, ok)
	assert.Empty(t, country)
}

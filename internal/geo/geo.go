// Package geo aggregates visitor coordinates for the admin map. It does no
// address lookups; coordinates arrive from the edge proxy's request headers.
package geo

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// Edge proxy headers carrying the visitor's approximate position.
const (
	HeaderLatitude  = "CF-IPLatitude"
	HeaderLongitude = "CF-IPLongitude"
	HeaderCountry   = "CF-IPCountry"
)

type Point struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
}

type Cluster struct {
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Weight float64 `json:"weight"`
	Points int     `json:"points"`
}

// Haversine returns the great-circle distance between a and b in km.
func Haversine(a, b Point) float64 {
	rad := math.Pi / 180
	dLat := (b.Lat - a.Lat) * rad
	dLng := (b.Lng - a.Lng) * rad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*rad)*math.Cos(b.Lat*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ClusterPoints merges points greedily. Heaviest points go first; each joins the
// first cluster whose centroid lies within radiusKm, otherwise it starts a
// new one. Centroids are weight-averaged. The result is sorted by weight,
// heaviest first. Points with non-positive weight count as weight 1.
func ClusterPoints(points []Point, radiusKm float64) []Cluster {
	ps := make([]Point, len(points))
	copy(ps, points)
	for i := range ps {
		if ps[i].Weight <= 0 {
			ps[i].Weight = 1
		}
	}
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Weight > ps[j].Weight })

	var out []Cluster
	for _, p := range ps {
		joined := false
		for i := range out {
			c := &out[i]
			if Haversine(Point{Lat: c.Lat, Lng: c.Lng}, p) > radiusKm {
				continue
			}
			total := c.Weight + p.Weight
			c.Lat = (c.Lat*c.Weight + p.Lat*p.Weight) / total
			c.Lng = (c.Lng*c.Weight + p.Lng*p.Weight) / total
			c.Weight = total
			c.Points++
			joined = true
			break
		}
		if !joined {
			out = append(out, Cluster{Lat: p.Lat, Lng: p.Lng, Weight: p.Weight, Points: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// FromHeaders reads the proxy's coordinates and country. ok is false when
// either coordinate is missing or out of range.
func FromHeaders(h http.Header) (p Point, country string, ok bool) {
	country = strings.ToUpper(strings.TrimSpace(h.Get(HeaderCountry)))
	// Cloudflare uses XX for unknown and T1 for Tor.
	if country == "XX" || country == "T1" {
		country = ""
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(h.Get(HeaderLatitude)), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(h.Get(HeaderLongitude)), 64)
	if err1 != nil || err2 != nil || math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Point{}, country, false
	}
	return Point{Lat: lat, Lng: lng, Weight: 1}, country, true
}

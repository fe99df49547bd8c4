package condition

import (
	"math"

	"arbiter-hq/arbiter/pkg/rdl/ast"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// evaluateGeospatial handles the geospatial family. Coordinates are
// {lat, lng} maps (lon/latitude/longitude also accepted) or [lat, lng]
// pairs; malformed coordinates evaluate to false.
func (e *Evaluator) evaluateGeospatial(op ast.Operator, actual, expected interface{}) bool {
	lat, lng, ok := coordinateOf(actual)
	if !ok || !validCoordinate(lat, lng) {
		return false
	}

	switch op {
	case ast.OperatorWithinRadius:
		params, ok := asMap(expected)
		if !ok {
			return false
		}
		centerLat, centerLng, ok := coordinateOf(params["center"])
		if !ok || !validCoordinate(centerLat, centerLng) {
			return false
		}
		radius, ok := toFloat(params["radius"])
		if !ok || radius < 0 {
			return false
		}
		return haversineKm(lat, lng, centerLat, centerLng) <= radius+epsilon

	case ast.OperatorInPolygon:
		vertices, ok := polygonOf(expected)
		if !ok {
			return false
		}
		return pointInPolygon(lat, lng, vertices)

	default:
		return false
	}
}

// haversineKm returns the great-circle distance between two points in
// kilometers.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lng2 - lng1) * degToRad

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// pointInPolygon tests point membership with the ray-casting algorithm.
// The polygon is treated as closed regardless of whether the last vertex
// repeats the first.
func pointInPolygon(lat, lng float64, vertices [][2]float64) bool {
	inside := false
	n := len(vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		yi, xi := vertices[i][0], vertices[i][1]
		yj, xj := vertices[j][0], vertices[j][1]
		if (yi > lat) != (yj > lat) &&
			lng < (xj-xi)*(lat-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// polygonOf extracts polygon vertices from an operand: an array of
// coordinates, or a map with a "polygon" key. At least three distinct
// vertices are required; a closing vertex equal to the first is dropped.
func polygonOf(v interface{}) ([][2]float64, bool) {
	raw := v
	if params, ok := asMap(v); ok {
		raw = params["polygon"]
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}

	vertices := make([][2]float64, 0, len(arr))
	for _, item := range arr {
		lat, lng, ok := coordinateOf(item)
		if !ok || !validCoordinate(lat, lng) {
			return nil, false
		}
		vertices = append(vertices, [2]float64{lat, lng})
	}

	// Drop an explicit closing vertex; ray casting closes implicitly.
	if len(vertices) > 1 && vertices[0] == vertices[len(vertices)-1] {
		vertices = vertices[:len(vertices)-1]
	}

	if len(vertices) < 3 {
		return nil, false
	}
	return vertices, true
}

// coordinateOf extracts (lat, lng) from a {lat, lng} style map or a
// [lat, lng] pair.
func coordinateOf(v interface{}) (float64, float64, bool) {
	if m, ok := asMap(v); ok {
		lat, latOK := firstFloat(m, "lat", "latitude")
		lng, lngOK := firstFloat(m, "lng", "lon", "longitude")
		return lat, lng, latOK && lngOK
	}
	if arr, ok := v.([]interface{}); ok && len(arr) == 2 {
		lat, ok1 := toFloat(arr[0])
		lng, ok2 := toFloat(arr[1])
		return lat, lng, ok1 && ok2
	}
	return 0, 0, false
}

func firstFloat(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, key := range keys {
		if raw, ok := m[key]; ok {
			return toFloat(raw)
		}
	}
	return 0, false
}

func validCoordinate(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

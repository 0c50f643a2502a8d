package facetfilter

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// earthRadiusMeters is the mean radius used by the haversine formula
// below; it matches the value geo libraries in this ecosystem settle
// on for "good enough" great-circle distance.
const earthRadiusMeters = 6_372_797.560856

// DistanceBetweenTwoPoints computes the great-circle distance, in
// meters, between two [lat, lon] points given in degrees. It is a
// package-level var rather than a plain function so a caller with a
// more precise geodesy library on hand can swap it out.
var DistanceBetweenTwoPoints = haversineDistance

func haversineDistance(a, b [2]float64) float64 {
	lat1, lon1 := a[0]*math.Pi/180, a[1]*math.Pi/180
	lat2, lon2 := b[0]*math.Pi/180, b[1]*math.Pi/180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// geoLowerThan collects documents strictly within radius meters of
// point, walking the R-tree's nearest-neighbor order and stopping as
// soon as a candidate falls outside the radius, since distance only
// increases from there on.
func geoLowerThan(ctx context.Context, idx Index, point [2]float64, radius float64) (*roaring.Bitmap, error) {
	rtree, err := idx.GeoIndex(ctx)
	if err != nil {
		return nil, err
	}
	output := roaring.New()
	if rtree == nil {
		return output, nil
	}

	it := rtree.NearestNeighbors(point)
	for it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docID, coords := it.Point()
		if DistanceBetweenTwoPoints(point, coords) >= radius {
			break
		}
		output.Add(docID)
	}
	return output, nil
}

// geoGreaterThan is geoLowerThan's complement, restricted to documents
// that actually carry geo coordinates.
func geoGreaterThan(ctx context.Context, idx Index, point [2]float64, radius float64) (*roaring.Bitmap, error) {
	within, err := geoLowerThan(ctx, idx, point, radius)
	if err != nil {
		return nil, err
	}
	faceted, err := idx.GeoFacetedDocuments(ctx)
	if err != nil {
		return nil, err
	}
	output := faceted.Clone()
	output.AndNot(within)
	return output, nil
}

package facetfilter

import (
	"context"

	"github.com/RoaringBitmap/roaring"
)

// FieldId is the small non-negative integer handle a FieldsIdsMap
// assigns to a field name. This package never creates field ids; it
// only resolves names through the map.
type FieldId uint16

// FieldsIdsMap resolves a field name to the id the index uses for it.
// The second return value is false when no document has ever populated
// the field, in which case a leaf condition on it reduces to Empty
// rather than failing.
type FieldsIdsMap interface {
	ID(name string) (FieldId, bool)
}

// NumberRangeIterator walks entries of the numeric facet pyramid at one
// (field, level) pair, in ascending low order, restricted to those
// intersecting the query range. The descender unions the bitmap of every
// entry it is given in full, and takes the first entry's low and the
// last entry's high as the edges those entries cover.
type NumberRangeIterator interface {
	// Next advances to the next entry, returning false at the end or
	// on error; check Err after Next returns false.
	Next() bool
	// Entry returns the current entry's bounds and bitmap. Only valid
	// after a Next call that returned true.
	Entry() (low, high float64, docids *roaring.Bitmap)
	Err() error
	Close() error
}

// FacetNumberStore is the ordered key-value store backing the numeric
// facet pyramid: keyed by (field, level, low, high), bucket factor and
// all, opaque to this package.
type FacetNumberStore interface {
	// TopLevel returns the highest level that has any entry for field.
	// ok is false if the field has no numeric facet entries at all.
	TopLevel(ctx context.Context, field FieldId) (level uint8, ok bool, err error)
	// Range iterates entries at (field, level) whose interval
	// intersects [left, right], ascending by low.
	Range(ctx context.Context, field FieldId, level uint8, left, right Bound) (NumberRangeIterator, error)
}

// StringFacetIterator walks every entry of the string facet index for
// one field, in storage order (lexicographic on the lowercased value is
// typical but not required).
type StringFacetIterator interface {
	Next() bool
	Entry() (value string, docids *roaring.Bitmap)
	Err() error
	Close() error
}

// FacetStringStore is the ordered key-value store backing the string
// facet leaves: keyed by (field, lowercased string).
type FacetStringStore interface {
	Get(ctx context.Context, field FieldId, value string) (*roaring.Bitmap, error)
	Scan(ctx context.Context, field FieldId) (StringFacetIterator, error)
}

// GeoIterator yields geo-faceted documents from nearest to farthest from
// the point the iterator was constructed with.
type GeoIterator interface {
	Next() bool
	// Point returns the current document id and its [lat, lon].
	Point() (docID uint32, coords [2]float64)
}

// GeoIndex is the R-tree over geo-faceted documents. Its construction is
// out of scope here; this package only consumes nearest-neighbor
// traversal.
type GeoIndex interface {
	NearestNeighbors(point [2]float64) GeoIterator
}

// Index is the set of external collaborators the evaluator reads from.
// A single implementation is expected to serve one read transaction for
// the lifetime of one Evaluate call; the evaluator never writes through
// it.
type Index interface {
	FilterableFields(ctx context.Context) (map[string]struct{}, error)

	Numbers() FacetNumberStore
	Strings() FacetStringStore

	NumberFacetedDocuments(ctx context.Context, field FieldId) (*roaring.Bitmap, error)
	StringFacetedDocuments(ctx context.Context, field FieldId) (*roaring.Bitmap, error)

	// GeoIndex returns the R-tree, or nil if the index has no geo data
	// at all.
	GeoIndex(ctx context.Context) (GeoIndex, error)
	GeoFacetedDocuments(ctx context.Context) (*roaring.Bitmap, error)
}

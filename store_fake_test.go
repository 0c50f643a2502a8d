package facetfilter_test

import (
	"context"
	"sort"

	"github.com/RoaringBitmap/roaring"

	ff "github.com/doclane/facetfilter"
)

// fakeNumberBucket is one entry of the in-memory pyramid used by tests:
// a (level, low, high) interval and the document ids stored there.
type fakeNumberBucket struct {
	level     uint8
	low, high float64
	docids    *roaring.Bitmap
}

// fakeNumberStore is a minimal in-memory FacetNumberStore, built by
// hand per test from a flat list of buckets rather than computed from
// raw values, so each test can exercise a specific pyramid shape
// (single level, multi-level with exact gaps, etc).
type fakeNumberStore struct {
	topLevel map[ff.FieldId]uint8
	buckets  map[ff.FieldId][]fakeNumberBucket
}

func newFakeNumberStore() *fakeNumberStore {
	return &fakeNumberStore{topLevel: map[ff.FieldId]uint8{}, buckets: map[ff.FieldId][]fakeNumberBucket{}}
}

func (s *fakeNumberStore) add(field ff.FieldId, level uint8, low, high float64, docs ...uint32) {
	bm := roaring.New()
	bm.AddMany(docs)
	s.buckets[field] = append(s.buckets[field], fakeNumberBucket{level: level, low: low, high: high, docids: bm})
	if cur, ok := s.topLevel[field]; !ok || level > cur {
		s.topLevel[field] = level
	}
}

func (s *fakeNumberStore) TopLevel(ctx context.Context, field ff.FieldId) (uint8, bool, error) {
	lvl, ok := s.topLevel[field]
	return lvl, ok, nil
}

func (s *fakeNumberStore) Range(ctx context.Context, field ff.FieldId, level uint8, left, right ff.Bound) (ff.NumberRangeIterator, error) {
	var matched []fakeNumberBucket
	for _, b := range s.buckets[field] {
		if b.level != level {
			continue
		}
		if !intervalsIntersect(left, right, b.low, b.high) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].low < matched[j].low })
	return &fakeNumberIterator{buckets: matched}, nil
}

func intervalsIntersect(left, right ff.Bound, low, high float64) bool {
	if left.Kind == ff.Included && high < left.Value {
		return false
	}
	if left.Kind == ff.Excluded && high <= left.Value {
		return false
	}
	if right.Kind == ff.Included && low > right.Value {
		return false
	}
	if right.Kind == ff.Excluded && low >= right.Value {
		return false
	}
	return true
}

type fakeNumberIterator struct {
	buckets []fakeNumberBucket
	pos     int
}

func (it *fakeNumberIterator) Next() bool {
	if it.pos >= len(it.buckets) {
		return false
	}
	it.pos++
	return true
}

func (it *fakeNumberIterator) Entry() (float64, float64, *roaring.Bitmap) {
	b := it.buckets[it.pos-1]
	return b.low, b.high, b.docids
}

func (it *fakeNumberIterator) Err() error   { return nil }
func (it *fakeNumberIterator) Close() error { return nil }

// fakeStringStore is a minimal in-memory FacetStringStore.
type fakeStringStore struct {
	values map[ff.FieldId]map[string]*roaring.Bitmap
}

func newFakeStringStore() *fakeStringStore {
	return &fakeStringStore{values: map[ff.FieldId]map[string]*roaring.Bitmap{}}
}

func (s *fakeStringStore) add(field ff.FieldId, value string, docs ...uint32) {
	if s.values[field] == nil {
		s.values[field] = map[string]*roaring.Bitmap{}
	}
	bm := roaring.New()
	bm.AddMany(docs)
	s.values[field][value] = bm
}

func (s *fakeStringStore) Get(ctx context.Context, field ff.FieldId, value string) (*roaring.Bitmap, error) {
	bm, ok := s.values[field][value]
	if !ok {
		return roaring.New(), nil
	}
	return bm, nil
}

func (s *fakeStringStore) Scan(ctx context.Context, field ff.FieldId) (ff.StringFacetIterator, error) {
	var values []string
	for v := range s.values[field] {
		values = append(values, v)
	}
	sort.Strings(values)
	return &fakeStringIterator{store: s, field: field, values: values}, nil
}

type fakeStringIterator struct {
	store  *fakeStringStore
	field  ff.FieldId
	values []string
	pos    int
}

func (it *fakeStringIterator) Next() bool {
	if it.pos >= len(it.values) {
		return false
	}
	it.pos++
	return true
}

func (it *fakeStringIterator) Entry() (string, *roaring.Bitmap) {
	v := it.values[it.pos-1]
	return v, it.store.values[it.field][v]
}

func (it *fakeStringIterator) Err() error   { return nil }
func (it *fakeStringIterator) Close() error { return nil }

// fakeIndex ties a fakeNumberStore and fakeStringStore together behind
// the Index interface, with geo support left unimplemented (nil
// GeoIndex) unless a test opts in by setting geo directly.
type fakeIndex struct {
	filterable map[string]struct{}
	numbers    *fakeNumberStore
	strings    *fakeStringStore
	numberIds  map[ff.FieldId]*roaring.Bitmap
	stringIds  map[ff.FieldId]*roaring.Bitmap
	geo        ff.GeoIndex
	geoIds     *roaring.Bitmap
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		filterable: newFilterable(),
		numbers:    newFakeNumberStore(),
		strings:    newFakeStringStore(),
		numberIds:  map[ff.FieldId]*roaring.Bitmap{},
		stringIds:  map[ff.FieldId]*roaring.Bitmap{},
		geoIds:     roaring.New(),
	}
}

func (idx *fakeIndex) FilterableFields(ctx context.Context) (map[string]struct{}, error) {
	return idx.filterable, nil
}

func (idx *fakeIndex) Numbers() ff.FacetNumberStore { return idx.numbers }
func (idx *fakeIndex) Strings() ff.FacetStringStore { return idx.strings }

func (idx *fakeIndex) NumberFacetedDocuments(ctx context.Context, field ff.FieldId) (*roaring.Bitmap, error) {
	if bm, ok := idx.numberIds[field]; ok {
		return bm, nil
	}
	return roaring.New(), nil
}

func (idx *fakeIndex) StringFacetedDocuments(ctx context.Context, field ff.FieldId) (*roaring.Bitmap, error) {
	if bm, ok := idx.stringIds[field]; ok {
		return bm, nil
	}
	return roaring.New(), nil
}

func (idx *fakeIndex) GeoIndex(ctx context.Context) (ff.GeoIndex, error) { return idx.geo, nil }

func (idx *fakeIndex) GeoFacetedDocuments(ctx context.Context) (*roaring.Bitmap, error) {
	return idx.geoIds, nil
}

var _ ff.Index = (*fakeIndex)(nil)

func bitmapOf(docs ...uint32) *roaring.Bitmap {
	bm := roaring.New()
	bm.AddMany(docs)
	return bm
}

// Package redisstore is a reference Index implementation backed by
// Redis, wiring facetfilter's storage interfaces to a handful of plain
// key conventions rather than a bespoke binary format. It is meant as
// a working example of the interfaces in facetfilter, not a
// performance-tuned facet store.
package redisstore

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
	"github.com/redis/go-redis/v9"

	facetfilter "github.com/doclane/facetfilter"
)

// Store is a facetfilter.Index backed by a single Redis client. Key
// layout:
//
//	ff:{idx}:filterable                      set of filterable field names
//	ff:{idx}:fid:{name}                      string, the field's FieldId
//	ff:{idx}:num:toplevel:{field}             string, highest populated level
//	ff:{idx}:num:{field}:{level}              zset, member "low:high", score=low
//	ff:{idx}:num:{field}:{level}:{low}:{high} set, document ids for that bucket
//	ff:{idx}:str:{field}                      zset of lowercased values, score 0
//	ff:{idx}:str:{field}:{value}              set, document ids for that value
//	ff:{idx}:facetednum:{field}               set, every doc id with a numeric value
//	ff:{idx}:facetedstr:{field}               set, every doc id with a string value
//	ff:{idx}:geo                              geo set (GEOADD member=doc id)
//	ff:{idx}:facetedgeo                       set, every doc id with geo coordinates
type Store struct {
	client *redis.Client
	index  string
}

// New wraps client to serve index, the namespace prefix distinguishing
// multiple facet-filterable collections on one Redis instance.
func New(client *redis.Client, index string) *Store {
	return &Store{client: client, index: index}
}

func (s *Store) key(parts ...string) string {
	return "ff:" + s.index + ":" + strings.Join(parts, ":")
}

var (
	_ facetfilter.Index        = (*Store)(nil)
	_ facetfilter.FieldsIdsMap = (*Store)(nil)
)

// FilterableFields implements facetfilter.Index.
func (s *Store) FilterableFields(ctx context.Context) (map[string]struct{}, error) {
	names, err := s.client.SMembers(ctx, s.key("filterable")).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out, nil
}

// ID implements facetfilter.FieldsIdsMap.
func (s *Store) ID(name string) (facetfilter.FieldId, bool) {
	v, err := s.client.Get(context.Background(), s.key("fid", name)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 16)
	if err != nil {
		return 0, false
	}
	return facetfilter.FieldId(n), true
}

// Numbers implements facetfilter.Index.
func (s *Store) Numbers() facetfilter.FacetNumberStore { return numberStore{s} }

// Strings implements facetfilter.Index.
func (s *Store) Strings() facetfilter.FacetStringStore { return stringStore{s} }

// NumberFacetedDocuments implements facetfilter.Index.
func (s *Store) NumberFacetedDocuments(ctx context.Context, field facetfilter.FieldId) (*roaring.Bitmap, error) {
	return s.bitmapFromSet(ctx, s.key("facetednum", fieldKey(field)))
}

// StringFacetedDocuments implements facetfilter.Index.
func (s *Store) StringFacetedDocuments(ctx context.Context, field facetfilter.FieldId) (*roaring.Bitmap, error) {
	return s.bitmapFromSet(ctx, s.key("facetedstr", fieldKey(field)))
}

// GeoFacetedDocuments implements facetfilter.Index.
func (s *Store) GeoFacetedDocuments(ctx context.Context) (*roaring.Bitmap, error) {
	return s.bitmapFromSet(ctx, s.key("facetedgeo"))
}

// GeoIndex implements facetfilter.Index, returning nil when the
// collection carries no geo-faceted documents at all.
func (s *Store) GeoIndex(ctx context.Context) (facetfilter.GeoIndex, error) {
	n, err := s.client.Exists(ctx, s.key("geo")).Result()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return geoIndex{s}, nil
}

func (s *Store) bitmapFromSet(ctx context.Context, key string) (*roaring.Bitmap, error) {
	ids, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	for _, id := range ids {
		n, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("redisstore: corrupt document id %q in %s: %w", id, key, err)
		}
		bm.Add(uint32(n))
	}
	return bm, nil
}

func fieldKey(field facetfilter.FieldId) string {
	return strconv.FormatUint(uint64(field), 10)
}

var (
	_ facetfilter.FacetNumberStore    = numberStore{}
	_ facetfilter.FacetStringStore    = stringStore{}
	_ facetfilter.NumberRangeIterator = (*numberIterator)(nil)
	_ facetfilter.GeoIndex            = geoIndex{}
	_ facetfilter.GeoIterator         = (*geoIterator)(nil)
)

type numberStore struct{ s *Store }

func (n numberStore) TopLevel(ctx context.Context, field facetfilter.FieldId) (uint8, bool, error) {
	v, err := n.s.client.Get(ctx, n.s.key("num", "toplevel", fieldKey(field))).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	level, err := strconv.ParseUint(v, 10, 8)
	if err != nil {
		return 0, false, fmt.Errorf("redisstore: corrupt top level %q for field %d: %w", v, field, err)
	}
	return uint8(level), true, nil
}

func (n numberStore) Range(ctx context.Context, field facetfilter.FieldId, level uint8, left, right facetfilter.Bound) (facetfilter.NumberRangeIterator, error) {
	key := n.s.key("num", fieldKey(field), strconv.Itoa(int(level)))
	min := boundToRedisScore(left, false)
	max := boundToRedisScore(right, true)

	members, err := n.s.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: min, Max: max}).Result()
	if err != nil {
		return nil, err
	}

	return &numberIterator{s: n.s, field: field, level: level, members: members}, nil
}

// boundToRedisScore renders a Bound as a ZRANGEBYSCORE endpoint string,
// using Redis' "(" exclusive-bound prefix for an Excluded bound. forMax
// is unused today but kept since Redis treats +inf/-inf symmetrically
// regardless of which side they're on.
func boundToRedisScore(b facetfilter.Bound, forMax bool) string {
	_ = forMax
	if math.IsInf(b.Value, -1) {
		return "-inf"
	}
	if math.IsInf(b.Value, 1) {
		return "+inf"
	}
	v := strconv.FormatFloat(b.Value, 'g', -1, 64)
	if b.Kind == facetfilter.Excluded {
		return "(" + v
	}
	return v
}

type numberIterator struct {
	s       *Store
	field   facetfilter.FieldId
	level   uint8
	members []string
	pos     int
	cur     struct {
		low, high float64
		docids    *roaring.Bitmap
	}
	err error
}

func (it *numberIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.members) {
		return false
	}
	member := it.members[it.pos]
	it.pos++

	low, high, ok := strings.Cut(member, ":")
	if !ok {
		it.err = fmt.Errorf("redisstore: corrupt number bucket member %q", member)
		return false
	}
	lowV, err := strconv.ParseFloat(low, 64)
	if err != nil {
		it.err = err
		return false
	}
	highV, err := strconv.ParseFloat(high, 64)
	if err != nil {
		it.err = err
		return false
	}

	setKey := it.s.key("num", fieldKey(it.field), strconv.Itoa(int(it.level)), low, high)
	bm, err := it.s.bitmapFromSet(context.Background(), setKey)
	if err != nil {
		it.err = err
		return false
	}

	it.cur.low, it.cur.high, it.cur.docids = lowV, highV, bm
	return true
}

func (it *numberIterator) Entry() (low, high float64, docids *roaring.Bitmap) {
	return it.cur.low, it.cur.high, it.cur.docids
}

func (it *numberIterator) Err() error   { return it.err }
func (it *numberIterator) Close() error { return nil }

type stringStore struct{ s *Store }

func (ss stringStore) Get(ctx context.Context, field facetfilter.FieldId, value string) (*roaring.Bitmap, error) {
	return ss.s.bitmapFromSet(ctx, ss.s.key("str", fieldKey(field), value))
}

func (ss stringStore) Scan(ctx context.Context, field facetfilter.FieldId) (facetfilter.StringFacetIterator, error) {
	values, err := ss.s.client.ZRange(ctx, ss.s.key("str", fieldKey(field)), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return &stringIterator{s: ss.s, field: field, values: values}, nil
}

type stringIterator struct {
	s      *Store
	field  facetfilter.FieldId
	values []string
	pos    int
	value  string
	docids *roaring.Bitmap
	err    error
}

func (it *stringIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.values) {
		return false
	}
	value := it.values[it.pos]
	it.pos++

	bm, err := it.s.bitmapFromSet(context.Background(), it.s.key("str", fieldKey(it.field), value))
	if err != nil {
		it.err = err
		return false
	}
	it.value, it.docids = value, bm
	return true
}

func (it *stringIterator) Entry() (string, *roaring.Bitmap) { return it.value, it.docids }
func (it *stringIterator) Err() error                        { return it.err }
func (it *stringIterator) Close() error                      { return nil }

var _ facetfilter.StringFacetIterator = (*stringIterator)(nil)

type geoIndex struct{ s *Store }

func (g geoIndex) NearestNeighbors(point [2]float64) facetfilter.GeoIterator {
	// Redis' GEOSEARCH already returns results ordered by distance from
	// the query point (ASC by default), so the pyramid-style nearest
	// neighbor walk is just one command away.
	res, err := g.s.client.GeoSearchLocation(context.Background(), g.s.key("geo"), &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  point[1],
			Latitude:   point[0],
			Radius:     math.MaxFloat64 / 2,
			RadiusUnit: "m",
			Sort:       "ASC",
		},
		WithCoord: true,
	}).Result()
	if err != nil {
		return &geoIterator{err: err}
	}
	return &geoIterator{locations: res}
}

type geoIterator struct {
	locations []redis.GeoLocation
	pos       int
	err       error
}

func (it *geoIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.locations) {
		return false
	}
	it.pos++
	return true
}

func (it *geoIterator) Point() (docID uint32, coords [2]float64) {
	loc := it.locations[it.pos-1]
	id, err := strconv.ParseUint(loc.Name, 10, 32)
	if err != nil {
		return 0, [2]float64{}
	}
	return uint32(id), [2]float64{loc.Latitude, loc.Longitude}
}

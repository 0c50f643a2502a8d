package facetfilter

import (
	"context"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// stringEqual looks up value directly; it is the O(1) half of Equal,
// complemented by rangeOnField for the numeric half.
func stringEqual(ctx context.Context, strs FacetStringStore, field FieldId, value string) (*roaring.Bitmap, error) {
	docids, err := strs.Get(ctx, field, value)
	if err != nil {
		return nil, err
	}
	if docids == nil {
		return roaring.New(), nil
	}
	return docids.Clone(), nil
}

// stringIncludes scans every entry of field's string facet and unions
// the documents whose value contains needle as a substring. A full
// scan is unavoidable here: unlike Equal, a containment match can't be
// answered by a point lookup on a lexicographic index.
//
// Unlike the reference this is ported from, a Scan error aborts the
// scan and is returned rather than silently discarded, so a caller
// never mistakes a partial result for a complete one.
func stringIncludes(ctx context.Context, strs FacetStringStore, field FieldId, needle string) (*roaring.Bitmap, error) {
	iter, err := strs.Scan(ctx, field)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	output := roaring.New()
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, docids := iter.Entry()
		if strings.Contains(value, needle) {
			output.Or(docids)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return output, nil
}

// stringNotIncludes is stringIncludes' complement over the same scan,
// computed in one pass rather than as AllStrings - Includes, since the
// scan is already linear either way.
func stringNotIncludes(ctx context.Context, strs FacetStringStore, field FieldId, needle string) (*roaring.Bitmap, error) {
	iter, err := strs.Scan(ctx, field)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	output := roaring.New()
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, docids := iter.Entry()
		if !strings.Contains(value, needle) {
			output.Or(docids)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return output, nil
}

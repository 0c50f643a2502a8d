package facetfilter

import (
	"context"

	"github.com/RoaringBitmap/roaring"
	"github.com/sirupsen/logrus"
)

// exploreFacetNumberLevels aggregates the document ids whose value for
// field falls within [left, right], descending through the facet
// pyramid's levels on demand rather than scanning level 0 directly.
//
// The pyramid stores, at each level, coarser intervals that summarize
// the level below it; level 0 holds the exact per-value entries. We
// start at the coarsest populated level and only recurse into level-1
// for the slivers at the two edges of the range that the current
// level's entries didn't exactly cover, which is why a query over a
// huge range still touches a small number of entries.
func exploreFacetNumberLevels(ctx context.Context, store FacetNumberStore, field FieldId, level uint8, left, right Bound, output *roaring.Bitmap) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	// An exact value query always descends straight to level 0: the
	// pyramid's coarser levels can't answer it more precisely than the
	// leaves can, and the edge-refinement logic below exists only to
	// stitch together the slivers a range query leaves uncovered.
	case left.Kind == Included && right.Kind == Included && left.Value == right.Value && level > 0:
		return exploreFacetNumberLevels(ctx, store, field, 0, left, right, output)
	case left.Kind == Included && right.Kind == Included && left.Value > right.Value:
		return nil
	case left.Kind == Included && right.Kind == Excluded && left.Value >= right.Value:
		return nil
	case left.Kind == Excluded && right.Kind == Excluded && left.Value >= right.Value:
		return nil
	case left.Kind == Excluded && right.Kind == Included && left.Value >= right.Value:
		return nil
	}

	var (
		leftFound, rightFound float64
		haveLeft, haveRight   bool
	)

	iter, err := store.Range(ctx, field, level, left, right)
	if err != nil {
		return err
	}
	defer iter.Close()

	logrus.WithFields(logrus.Fields{"field": field, "level": level, "left": left, "right": right}).
		Debug("exploring facet number level")

	first := true
	for iter.Next() {
		l, r, docids := iter.Entry()
		logrus.WithFields(logrus.Fields{"low": l, "high": r, "level": level, "found": docids.GetCardinality()}).
			Debug("facet number range entry")
		output.Or(docids)
		if first {
			leftFound, haveLeft = l, true
			first = false
		}
		rightFound, haveRight = r, true
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if level == 0 {
		return nil
	}
	deeperLevel := level - 1

	if !haveLeft || !haveRight {
		return exploreFacetNumberLevels(ctx, store, field, deeperLevel, left, right, output)
	}

	if !left.equalsIncluded(leftFound) {
		subRight := exc(leftFound)
		if err := exploreFacetNumberLevels(ctx, store, field, deeperLevel, left, subRight, output); err != nil {
			return err
		}
	}
	if !right.equalsIncluded(rightFound) {
		subLeft := exc(rightFound)
		if err := exploreFacetNumberLevels(ctx, store, field, deeperLevel, subLeft, right, output); err != nil {
			return err
		}
	}
	return nil
}

// rangeOnField resolves field's top pyramid level and descends it for
// [left, right], returning the empty bitmap (not an error) when the
// field has no numeric facet entries at all.
func rangeOnField(ctx context.Context, numbers FacetNumberStore, field FieldId, left, right Bound) (*roaring.Bitmap, error) {
	level, ok, err := numbers.TopLevel(ctx, field)
	if err != nil {
		return nil, err
	}
	output := roaring.New()
	if !ok {
		return output, nil
	}
	if err := exploreFacetNumberLevels(ctx, numbers, field, level, left, right, output); err != nil {
		return nil, err
	}
	return output, nil
}

package facetfilter

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring"
)

// Evaluate walks a normalized FilterCondition against idx and returns
// the matching document ids. cond should already have had Negate
// applied to every negated Term by Build; Evaluate does not negate.
func Evaluate(ctx context.Context, idx Index, cond FilterCondition) (*roaring.Bitmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch n := cond.(type) {
	case EmptyCondition:
		return roaring.New(), nil
	case OrCondition:
		left, err := Evaluate(ctx, idx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(ctx, idx, n.Right)
		if err != nil {
			return nil, err
		}
		left.Or(right)
		return left, nil
	case AndCondition:
		left, err := Evaluate(ctx, idx, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := Evaluate(ctx, idx, n.Right)
		if err != nil {
			return nil, err
		}
		left.And(right)
		return left, nil
	case OperatorCondition:
		return evaluateOperator(ctx, idx, n.Field, n.Op)
	default:
		panic("facetfilter: unknown FilterCondition variant")
	}
}

// evaluateOperator dispatches a single leaf to the numeric pyramid, the
// string facet index, or the geo index, mirroring the three storage
// strategies a facet value can live in.
func evaluateOperator(ctx context.Context, idx Index, field FieldId, op Operator) (*roaring.Bitmap, error) {
	numbers := idx.Numbers()
	strs := idx.Strings()

	switch o := op.(type) {
	case GreaterThan:
		return rangeOnField(ctx, numbers, field, exc(o.Value), inc(math.Inf(1)))
	case GreaterThanOrEqual:
		return rangeOnField(ctx, numbers, field, inc(o.Value), inc(math.Inf(1)))
	case LowerThan:
		return rangeOnField(ctx, numbers, field, inc(math.Inf(-1)), exc(o.Value))
	case LowerThanOrEqual:
		return rangeOnField(ctx, numbers, field, inc(math.Inf(-1)), inc(o.Value))
	case Between:
		return rangeOnField(ctx, numbers, field, inc(o.Low), inc(o.High))

	case Equal:
		stringIds, err := stringEqual(ctx, strs, field, o.Text)
		if err != nil {
			return nil, err
		}
		if o.Number == nil {
			return stringIds, nil
		}
		numberIds, err := rangeOnField(ctx, numbers, field, inc(*o.Number), inc(*o.Number))
		if err != nil {
			return nil, err
		}
		stringIds.Or(numberIds)
		return stringIds, nil

	case NotEqual:
		allStrings, err := idx.StringFacetedDocuments(ctx, field)
		if err != nil {
			return nil, err
		}
		universe := allStrings.Clone()
		if o.Number != nil {
			allNumbers, err := idx.NumberFacetedDocuments(ctx, field)
			if err != nil {
				return nil, err
			}
			universe.Or(allNumbers)
		}
		matching, err := evaluateOperator(ctx, idx, field, Equal{Number: o.Number, Text: o.Text})
		if err != nil {
			return nil, err
		}
		universe.AndNot(matching)
		return universe, nil

	case Includes:
		return stringIncludes(ctx, strs, field, o.Text)
	case NotIncludes:
		return stringNotIncludes(ctx, strs, field, o.Text)

	case GeoLowerThan:
		return geoLowerThan(ctx, idx, o.Point, o.Radius)
	case GeoGreaterThan:
		return geoGreaterThan(ctx, idx, o.Point, o.Radius)

	default:
		panic("facetfilter: unknown Operator variant")
	}
}

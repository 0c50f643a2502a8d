package facetfilter

// Negate pushes a logical NOT down through cond until it is fully
// absorbed into leaf operators. De Morgan's laws swap Or/And; Empty is
// its own negation (it denotes "no constraint from this subtree", which
// negation cannot change). Between is the one leaf operator that
// negates to a pair rather than a single operator, so it expands into
// an Or of two leaves.
//
// Applying Negate twice is the identity, modulo the tree reshaping
// Between's expansion performs.
func Negate(cond FilterCondition) FilterCondition {
	switch n := cond.(type) {
	case OperatorCondition:
		a, b, isPair := negateOperator(n.Op)
		if !isPair {
			return OperatorCondition{Field: n.Field, Op: a}
		}
		return OrCondition{
			Left:  OperatorCondition{Field: n.Field, Op: a},
			Right: OperatorCondition{Field: n.Field, Op: b},
		}
	case OrCondition:
		return AndCondition{Left: Negate(n.Left), Right: Negate(n.Right)}
	case AndCondition:
		return OrCondition{Left: Negate(n.Left), Right: Negate(n.Right)}
	case EmptyCondition:
		return EmptyCondition{}
	default:
		panic("facetfilter: unknown FilterCondition variant")
	}
}

// negateOperator returns the negation of a single leaf operator. isPair
// is true only for Between, whose negation is a disjunction of the two
// returned operators (b is then meaningful; otherwise b is nil).
func negateOperator(op Operator) (a, b Operator, isPair bool) {
	switch o := op.(type) {
	case GreaterThan:
		return LowerThanOrEqual{Value: o.Value}, nil, false
	case GreaterThanOrEqual:
		return LowerThan{Value: o.Value}, nil, false
	case LowerThan:
		return GreaterThanOrEqual{Value: o.Value}, nil, false
	case LowerThanOrEqual:
		return GreaterThan{Value: o.Value}, nil, false
	case Equal:
		return NotEqual{Number: o.Number, Text: o.Text}, nil, false
	case NotEqual:
		return Equal{Number: o.Number, Text: o.Text}, nil, false
	case Includes:
		return NotIncludes{Number: o.Number, Text: o.Text}, nil, false
	case NotIncludes:
		return Includes{Number: o.Number, Text: o.Text}, nil, false
	case GeoLowerThan:
		return GeoGreaterThan{Point: o.Point, Radius: o.Radius}, nil, false
	case GeoGreaterThan:
		return GeoLowerThan{Point: o.Point, Radius: o.Radius}, nil, false
	case Between:
		return LowerThan{Value: o.Low}, GreaterThan{Value: o.High}, true
	default:
		panic("facetfilter: unknown Operator variant")
	}
}

package facetfilter

// ArrayElement is one element of the array form: either a raw
// expression string (an AND conjunct) or a nested sequence of
// expression strings (OR-ed together, then the result AND-ed with the
// rest of the outer array).
type ArrayElement struct {
	Expr   string
	Nested []string
}

// Raw builds an outer array element holding a single expression.
func Raw(expr string) ArrayElement { return ArrayElement{Expr: expr} }

// Or builds an outer array element whose members are OR-ed together.
func Or(exprs ...string) ArrayElement { return ArrayElement{Nested: exprs} }

// BuildArray parses and builds the array form described in the external
// interfaces: each outer element combines via combine(e_i) (itself,
// or an OR-fold of its nested strings), and the outer elements AND-fold
// together. An empty array means no filter at all, which is distinct
// from a filter that happens to evaluate to the empty set, so ok is
// false in that case.
func BuildArray(fim FieldsIdsMap, filterable map[string]struct{}, elements []ArrayElement) (cond FilterCondition, ok bool, err error) {
	var result FilterCondition
	for _, el := range elements {
		combined, err := combineArrayElement(fim, filterable, el)
		if err != nil {
			return nil, false, err
		}
		if result == nil {
			result = combined
		} else {
			result = AndCondition{Left: result, Right: combined}
		}
	}
	if result == nil {
		return nil, false, nil
	}
	return result, true, nil
}

func combineArrayElement(fim FieldsIdsMap, filterable map[string]struct{}, el ArrayElement) (FilterCondition, error) {
	if el.Nested == nil {
		return parseAndBuild(fim, filterable, el.Expr)
	}

	var result FilterCondition
	for _, expr := range el.Nested {
		cond, err := parseAndBuild(fim, filterable, expr)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = cond
		} else {
			result = OrCondition{Left: result, Right: cond}
		}
	}
	if result == nil {
		return EmptyCondition{}, nil
	}
	return result, nil
}

func parseAndBuild(fim FieldsIdsMap, filterable map[string]struct{}, expr string) (FilterCondition, error) {
	tree, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return Build(fim, filterable, tree)
}

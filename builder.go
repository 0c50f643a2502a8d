package facetfilter

import (
	"strconv"
	"strings"
)

// Build walks a ParseTree into a validated, field-resolved
// FilterCondition. fim resolves field names to ids; filterable is the
// set of attribute names the caller is allowed to filter on.
func Build(fim FieldsIdsMap, filterable map[string]struct{}, tree *ParseTree) (FilterCondition, error) {
	b := &builder{fim: fim, filterable: filterable}
	return b.orExpr(tree.Expr)
}

type builder struct {
	fim        FieldsIdsMap
	filterable map[string]struct{}
}

func (b *builder) orExpr(n *OrExpr) (FilterCondition, error) {
	var result FilterCondition
	for _, and := range n.And {
		cond, err := b.andExpr(and)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = cond
		} else {
			result = OrCondition{Left: result, Right: cond}
		}
	}
	return result, nil
}

func (b *builder) andExpr(n *AndExpr) (FilterCondition, error) {
	var result FilterCondition
	for _, term := range n.Term {
		cond, err := b.term(term)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = cond
		} else {
			result = AndCondition{Left: result, Right: cond}
		}
	}
	return result, nil
}

func (b *builder) term(n *Term) (FilterCondition, error) {
	cond, err := b.atom(n.Atom)
	if err != nil {
		return nil, err
	}
	if n.Negate {
		return Negate(cond), nil
	}
	return cond, nil
}

func (b *builder) atom(n *Atom) (FilterCondition, error) {
	switch {
	case n.Composite != nil:
		return b.orExpr(n.Composite.Expr)
	case n.GeoRadius != nil:
		return b.geoRadius(n.GeoRadius)
	case n.Between != nil:
		return b.between(n.Between)
	case n.Condition != nil:
		return b.condition(n.Condition)
	default:
		return nil, syntaxError(Span{}, "empty expression")
	}
}

// fieldID resolves the left-hand value of a leaf condition to a field
// id, enforcing the reserved-keyword and filterable-fields rules. A nil
// error with ok=false means the field is filterable but not yet known
// to the FieldsIdsMap, i.e. the leaf should reduce to Empty.
func (b *builder) fieldID(v *Value) (id FieldId, ok bool, err error) {
	name := v.Raw()

	if name == "_geo" {
		return 0, false, reservedKeywordError(name, "Use the _geoRadius(latitude, longitude, distance) built-in rule to filter on _geo field coordinates.")
	}
	if name == "_geoDistance" {
		return 0, false, reservedKeywordError(name, "")
	}
	if strings.HasPrefix(name, "_geoPoint") {
		return 0, false, reservedKeywordError("_geoPoint", "Use the _geoRadius(latitude, longitude, distance) built-in rule to filter on _geo field coordinates.")
	}

	if _, isFilterable := b.filterable[name]; !isFilterable {
		return 0, false, invalidAttributeError(name, validFieldsList(b.filterable))
	}

	id, known := b.fim.ID(name)
	return id, known, nil
}

func validFieldsList(filterable map[string]struct{}) []string {
	fields := make([]string, 0, len(filterable))
	for f := range filterable {
		fields = append(fields, f)
	}
	return fields
}

// numericValue parses v as an f64, returning a syntax error pinned to
// v's span on failure. Used by operators that require a numeric RHS.
func numericValue(v *Value) (float64, error) {
	n, err := strconv.ParseFloat(v.Raw(), 64)
	if err != nil {
		return 0, syntaxError(v.span(), "%q is not a valid number", v.Raw())
	}
	return n, nil
}

// optionalNumericValue parses v as an f64 but tolerates failure,
// returning nil when v is not a number.
func optionalNumericValue(v *Value) *float64 {
	n, err := strconv.ParseFloat(v.Raw(), 64)
	if err != nil {
		return nil
	}
	return &n
}

// loweredText returns the verbatim RHS value, quotes stripped, lowercased.
func loweredText(v *Value) string {
	return strings.ToLower(unquote(v.Raw()))
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func (b *builder) condition(n *ConditionNode) (FilterCondition, error) {
	fid, ok, err := b.fieldID(n.Field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return EmptyCondition{}, nil
	}

	switch n.Op {
	case "<=":
		v, err := numericValue(n.Arg)
		if err != nil {
			return nil, err
		}
		return OperatorCondition{Field: fid, Op: LowerThanOrEqual{Value: v}}, nil
	case ">=":
		v, err := numericValue(n.Arg)
		if err != nil {
			return nil, err
		}
		return OperatorCondition{Field: fid, Op: GreaterThanOrEqual{Value: v}}, nil
	case "<":
		v, err := numericValue(n.Arg)
		if err != nil {
			return nil, err
		}
		return OperatorCondition{Field: fid, Op: LowerThan{Value: v}}, nil
	case ">":
		v, err := numericValue(n.Arg)
		if err != nil {
			return nil, err
		}
		return OperatorCondition{Field: fid, Op: GreaterThan{Value: v}}, nil
	case "=":
		return OperatorCondition{Field: fid, Op: Equal{Number: optionalNumericValue(n.Arg), Text: loweredText(n.Arg)}}, nil
	case "!=":
		return OperatorCondition{Field: fid, Op: NotEqual{Number: optionalNumericValue(n.Arg), Text: loweredText(n.Arg)}}, nil
	case "*":
		return OperatorCondition{Field: fid, Op: Includes{Number: optionalNumericValue(n.Arg), Text: loweredText(n.Arg)}}, nil
	case "!*":
		return OperatorCondition{Field: fid, Op: NotIncludes{Number: optionalNumericValue(n.Arg), Text: loweredText(n.Arg)}}, nil
	default:
		return nil, syntaxError(Span{}, "unknown operator %q", n.Op)
	}
}

func (b *builder) between(n *BetweenNode) (FilterCondition, error) {
	fid, ok, err := b.fieldID(n.Field)
	if err != nil {
		return nil, err
	}
	if !ok {
		return EmptyCondition{}, nil
	}

	lo, err := numericValue(n.From)
	if err != nil {
		return nil, err
	}
	hi, err := numericValue(n.To)
	if err != nil {
		return nil, err
	}
	return OperatorCondition{Field: fid, Op: Between{Low: lo, High: hi}}, nil
}

func (b *builder) geoRadius(n *GeoRadiusNode) (FilterCondition, error) {
	if _, isFilterable := b.filterable["_geo"]; !isFilterable {
		return nil, invalidAttributeError("_geo", validFieldsList(b.filterable))
	}

	if len(n.Args) != 3 {
		span := n.Pos.Offset
		length := 0
		if last := lastArg(n.Args); last != nil {
			s := last.span()
			span, length = s.Offset, s.Length
		}
		return nil, syntaxError(Span{Offset: span, Length: length},
			"The _geoRadius filter expect three arguments: _geoRadius(latitude, longitude, radius)")
	}

	latV, lonV, radiusV := n.Args[0], n.Args[1], n.Args[2]
	lat, err := numericValue(latV)
	if err != nil {
		return nil, err
	}
	lon, err := numericValue(lonV)
	if err != nil {
		return nil, err
	}
	radius, err := numericValue(radiusV)
	if err != nil {
		return nil, err
	}

	if lat < -90 || lat > 90 {
		return nil, syntaxError(latV.span(), "Latitude must be contained between -90 and 90 degrees.")
	}
	if lon < -180 || lon > 180 {
		return nil, syntaxError(lonV.span(), "Longitude must be contained between -180 and 180 degrees.")
	}

	fid, ok := b.fim.ID("_geo")
	if !ok {
		return EmptyCondition{}, nil
	}
	return OperatorCondition{Field: fid, Op: GeoLowerThan{Point: [2]float64{lat, lon}, Radius: radius}}, nil
}

func lastArg(args []*Value) *Value {
	if len(args) == 0 {
		return nil
	}
	return args[len(args)-1]
}

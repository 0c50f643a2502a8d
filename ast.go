package facetfilter

// FilterCondition is the semantic, validated filter AST: a strict tree
// (no sharing, no cycles) of boolean composition over leaf Operators.
// After normalization (see negate.go) no negation survives as a
// separate node; it is fully absorbed into leaf Operators, with the
// sole exception that a negated Between becomes an Or of two leaves.
type FilterCondition interface {
	isFilterCondition()
}

// OperatorCondition is a leaf: a single field compared with a single
// Operator.
type OperatorCondition struct {
	Field FieldId
	Op    Operator
}

// OrCondition is the union of its two children.
type OrCondition struct {
	Left, Right FilterCondition
}

// AndCondition is the intersection of its two children.
type AndCondition struct {
	Left, Right FilterCondition
}

// EmptyCondition denotes a semantically-trivial subtree, such as a
// filter on a filterable-but-never-populated field. It evaluates to the
// empty bitmap and, notably, is the identity for union under Or but not
// for intersection under And: And(Empty, x) is always empty.
type EmptyCondition struct{}

func (OperatorCondition) isFilterCondition() {}
func (OrCondition) isFilterCondition()       {}
func (AndCondition) isFilterCondition()      {}
func (EmptyCondition) isFilterCondition()    {}

// Operator is a leaf condition's comparison, tagged by its concrete Go
// type rather than by an explicit Kind field, the way FilterCondition
// is.
type Operator interface {
	isOperator()
}

type GreaterThan struct{ Value float64 }
type GreaterThanOrEqual struct{ Value float64 }
type LowerThan struct{ Value float64 }
type LowerThanOrEqual struct{ Value float64 }

// Between matches [Low, High] inclusive.
type Between struct{ Low, High float64 }

// Equal, NotEqual, Includes, and NotIncludes all carry the RHS both as
// an optional numeric parse and as a lowercased string. Equal queries
// both facets and unions them, since a field may have been indexed as
// either; NotEqual is the complement of that union. Includes and
// NotIncludes only scan the string facet; their Number is not used.
type Equal struct {
	Number *float64
	Text   string
}

type NotEqual struct {
	Number *float64
	Text   string
}

type Includes struct {
	Number *float64
	Text   string
}

type NotIncludes struct {
	Number *float64
	Text   string
}

// GeoLowerThan matches documents strictly within Radius meters of
// Point. GeoGreaterThan is its complement, restricted to geo-faceted
// documents.
type GeoLowerThan struct {
	Point  [2]float64
	Radius float64
}

type GeoGreaterThan struct {
	Point  [2]float64
	Radius float64
}

func (GreaterThan) isOperator()        {}
func (GreaterThanOrEqual) isOperator() {}
func (LowerThan) isOperator()          {}
func (LowerThanOrEqual) isOperator()   {}
func (Between) isOperator()            {}
func (Equal) isOperator()              {}
func (NotEqual) isOperator()           {}
func (Includes) isOperator()           {}
func (NotIncludes) isOperator()        {}
func (GeoLowerThan) isOperator()       {}
func (GeoGreaterThan) isOperator()     {}

package facetfilter

// FilterVisitor inspects a FilterCondition tree one node at a time, in
// post order: children are visited before the node that contains them.
// Each method can return an error to halt the walk immediately,
// propagating that error out of Visit.
type FilterVisitor interface {
	// VisitOr is called after both children of an OrCondition have been
	// visited.
	VisitOr(ast OrCondition) error

	// VisitAnd is called after both children of an AndCondition have
	// been visited.
	VisitAnd(ast AndCondition) error

	// VisitEmpty is called on every EmptyCondition leaf.
	VisitEmpty(ast EmptyCondition) error

	// VisitOperator is called on every leaf comparison, after the
	// condition's field has been resolved to a FieldId.
	VisitOperator(ast OperatorCondition) error
}

// Visitor is a no-op FilterVisitor; embed it to implement only the
// methods a particular walk cares about.
type Visitor struct{}

func (Visitor) VisitOr(OrCondition) error             { return nil }
func (Visitor) VisitAnd(AndCondition) error           { return nil }
func (Visitor) VisitEmpty(EmptyCondition) error       { return nil }
func (Visitor) VisitOperator(OperatorCondition) error { return nil }

// Visit walks cond with visitor, post order.
func Visit(cond FilterCondition, visitor FilterVisitor) error {
	switch n := cond.(type) {
	case OrCondition:
		if err := Visit(n.Left, visitor); err != nil {
			return err
		}
		if err := Visit(n.Right, visitor); err != nil {
			return err
		}
		return visitor.VisitOr(n)
	case AndCondition:
		if err := Visit(n.Left, visitor); err != nil {
			return err
		}
		if err := Visit(n.Right, visitor); err != nil {
			return err
		}
		return visitor.VisitAnd(n)
	case EmptyCondition:
		return visitor.VisitEmpty(n)
	case OperatorCondition:
		return visitor.VisitOperator(n)
	default:
		panic("facetfilter: unknown FilterCondition variant")
	}
}

package facetfilter

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParseTree is the concrete parse tree produced straight off the
// grammar, before field resolution or semantic validation. Build (see
// builder.go) walks this into a FilterCondition.
type ParseTree struct {
	Pos lexer.Position

	Expr *OrExpr `parser:"@@"`
}

// OrExpr is a left-associative disjunction of AndExprs: "term AND term OR term AND term".
type OrExpr struct {
	Pos lexer.Position

	And []*AndExpr `parser:"@@ ( \"OR\" @@ )*"`
}

// AndExpr is a left-associative conjunction of Terms, binding tighter than OrExpr.
type AndExpr struct {
	Pos lexer.Position

	Term []*Term `parser:"@@ ( \"AND\" @@ )*"`
}

// Term is an optionally-negated Atom.
type Term struct {
	Pos lexer.Position

	Negate bool `parser:"@\"NOT\"?"`
	Atom   *Atom `parser:"@@"`
}

// Atom is a parenthesized expression, a geo radius call, a BETWEEN
// (value value TO value), or a plain condition (value op value).
//
// Between and Condition share the "value" prefix; participle backtracks
// on the first alternative that fails to match the remaining tokens
// rather than requiring extra lookahead, since Value never accepts an
// Operator token.
type Atom struct {
	Pos lexer.Position

	Composite *Composite     `parser:"  @@"`
	GeoRadius *GeoRadiusNode `parser:"| @@"`
	Between   *BetweenNode   `parser:"| @@"`
	Condition *ConditionNode `parser:"| @@"`
}

// Composite groups a sub-expression with parentheses.
type Composite struct {
	Pos lexer.Position

	Expr *OrExpr `parser:"\"(\" @@ \")\""`
}

// GeoRadiusNode is the "_geoRadius(a, b, c)" built-in. Argument count
// and domain are validated by the builder, not the grammar, so that a
// wrong count produces the single well-known error message rather than
// a generic parse failure.
type GeoRadiusNode struct {
	Pos lexer.Position

	Args []*Value `parser:"\"_geoRadius\" \"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// BetweenNode is "field from TO to".
type BetweenNode struct {
	Pos lexer.Position

	Field *Value `parser:"@@"`
	From  *Value `parser:"@@"`
	To    *Value `parser:"\"TO\" @@"`
}

// ConditionNode is "field op arg".
type ConditionNode struct {
	Pos lexer.Position

	Field *Value `parser:"@@"`
	Op    string `parser:"@( \"<=\" | \">=\" | \"!=\" | \"<\" | \">\" | \"=\" | \"*\" | \"!*\" )"`
	Arg   *Value `parser:"@@"`
}

// Value is a bare word, a quoted string, or a number literal. Which
// field is set tells the builder how to interpret it; a Word may still
// turn out to parse as a number (e.g. a RHS literal `+42` or `.5`,
// which the Number rule does not match), so the builder always re-attempts a numeric
// parse regardless of which alternative matched here.
type Value struct {
	Pos lexer.Position

	Number   string `parser:"  @Number"`
	Str      string `parser:"| @String"`
	Reserved string `parser:"| @Reserved"`
	Word     string `parser:"| @Word"`
}

// Raw returns the literal source text this value was parsed from,
// quotes included for strings.
func (v *Value) Raw() string {
	switch {
	case v.Number != "":
		return v.Number
	case v.Str != "":
		return v.Str
	case v.Reserved != "":
		return v.Reserved
	default:
		return v.Word
	}
}

func (v *Value) span() Span {
	return Span{Offset: v.Pos.Offset, Length: len(v.Raw())}
}

// Parser is the singleton participle parser built from the grammar
// above. 4 is enough lookahead for Atom to backtrack from Between into
// Condition (or vice versa) and for GeoRadiusNode's optional argument
// list.
var Parser = participle.MustBuild[ParseTree](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

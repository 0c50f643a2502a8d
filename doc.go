// Package facetfilter evaluates boolean filter expressions against a set of
// pre-built faceted indices, the way a search engine resolves the filter
// half of a query into a bitmap of matching document ids.
//
// The pipeline is: Parse (lexer/grammar) -> Build (field resolution and
// validation) -> Negate (negation pushdown) -> Evaluate (range descent,
// leaf operators, boolean composition). Index construction, ranking, key-
// value store transaction management, and the geo R-tree itself are not
// part of this package; they are consumed through the interfaces in
// store.go.
package facetfilter

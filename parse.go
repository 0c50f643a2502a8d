package facetfilter

import (
	"errors"

	participle "github.com/alecthomas/participle/v2"
)

// Parse tokenizes and parses expression into a concrete ParseTree,
// wrapping any participle failure into a *FilterError of KindSyntax
// with a best-effort byte span.
func Parse(expression string) (*ParseTree, error) {
	tree, err := Parser.ParseString("", expression)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			pos := perr.Position()
			return nil, syntaxError(Span{Offset: pos.Offset, Length: 0}, "%s", perr.Message())
		}
		return nil, syntaxError(Span{}, "%s", err.Error())
	}
	return tree, nil
}

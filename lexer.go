package facetfilter

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes filter expression text. Order matters: participle's
// simple lexer tries rules in the order given, so the more specific
// patterns (the _geoRadius marker, the AND/OR/NOT/TO keywords, the
// multi-character operators) are listed before the catch-all Word rule
// that would otherwise swallow them.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "GeoRadius", Pattern: `_geoRadius\b`},
	// _geoPoint(...) is matched whole, as the reserved-keyword field
	// reference it is, before Word or Operator can split it on its
	// parentheses.
	{Name: "Reserved", Pattern: `_geoPoint\([^)]*\)`},
	{Name: "Keyword", Pattern: `\b(AND|OR|NOT|TO)\b`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'`},
	{Name: "Number", Pattern: `-?[0-9]+(?:\.[0-9]+)?`},
	{Name: "Operator", Pattern: `<=|>=|!=|!\*|[<>=*(),]`},
	{Name: "Word", Pattern: `[^\s()"',<>=!*]+`},
	{Name: "Whitespace", Pattern: `[ \t\n\r]+`},
})

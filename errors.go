package facetfilter

import "fmt"

// ErrorKind discriminates the taxonomy of errors this package returns.
// It is a string, not an int, so error messages and test assertions can
// compare against it directly.
type ErrorKind string

const (
	// KindSyntax covers lexing/parsing failures and the geo-radius
	// argument-count/domain checks, which are syntax errors at heart.
	KindSyntax ErrorKind = "Syntax"
	// KindInvalidAttribute means the left-hand attribute of a leaf
	// condition is not a member of the filterable-fields set.
	KindInvalidAttribute ErrorKind = "InvalidAttribute"
	// KindReservedKeyword means the left-hand attribute is one of the
	// reserved geo identifiers.
	KindReservedKeyword ErrorKind = "ReservedKeyword"
)

// Span locates an error in the original filter expression, in bytes.
type Span struct {
	Offset int
	Length int
}

// FilterError is the single error type this package returns. Kind
// discriminates the taxonomy described in spec; the remaining fields are
// only meaningful for the kinds that populate them.
type FilterError struct {
	Kind    ErrorKind
	Message string
	Span    Span

	// Field and ValidFields are set for KindInvalidAttribute.
	Field       string
	ValidFields []string

	// Context is an optional hint, set for KindReservedKeyword.
	Context string
}

func (e *FilterError) Error() string {
	switch e.Kind {
	case KindInvalidAttribute:
		return fmt.Sprintf("attribute %q is not filterable, available filterable attributes are: %v", e.Field, e.ValidFields)
	case KindReservedKeyword:
		if e.Context != "" {
			return fmt.Sprintf("%q is a reserved keyword and cannot be used as an attribute name. %s", e.Field, e.Context)
		}
		return fmt.Sprintf("%q is a reserved keyword and cannot be used as an attribute name", e.Field)
	default:
		return e.Message
	}
}

func syntaxError(span Span, format string, args ...any) *FilterError {
	return &FilterError{Kind: KindSyntax, Message: fmt.Sprintf(format, args...), Span: span}
}

func invalidAttributeError(field string, validFields []string) *FilterError {
	return &FilterError{Kind: KindInvalidAttribute, Field: field, ValidFields: validFields}
}

func reservedKeywordError(field, context string) *FilterError {
	return &FilterError{Kind: KindReservedKeyword, Field: field, Context: context}
}

// Package schema implements declarative request validation. A schema is a
// tagged rule tree: field names, declared types, required lists, and ordered
// named predicate rules. A fixed interpreter evaluates the tree against
// decoded JSON; violations are normalized into flat dotted field paths.
package schema

// Rule names reported in validation results.
const (
	RuleRequired        = "required"
	RuleType            = "type"
	RuleIsNotBlank      = "isNotBlank"
	RuleFormat          = "format"
	RuleMatchesProperty = "matchesProperty"
	RuleConst           = "const"
	RulePattern         = "pattern"
)

// Declared field types.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeObject  = "object"
	TypeArray   = "array"
)

// Rule is one named predicate with an optional parameter: the format name
// for RuleFormat, the sibling property name for RuleMatchesProperty, the
// expected value for RuleConst, the expression for RulePattern.
type Rule struct {
	Name  string
	Param string
}

// Field declares one schema node.
type Field struct {
	Type     string
	Rules    []Rule
	Fields   map[string]Field // object fields
	Required []string         // required object fields
	Items    *Field           // array element schema
}

// Schema is the root rule tree for one request slice (params or body).
type Schema struct {
	Fields   map[string]Field
	Required []string
}

// FieldError accumulates the violated rules for one flat field path.
type FieldError struct {
	Failed map[string]bool `json:"failed"`
}

// Result is the outcome of one validation call. It is created fresh per
// call and never merged across calls except by the caller explicitly
// combining params and body results under prefixes.
type Result struct {
	Valid  bool                  `json:"valid"`
	Errors map[string]FieldError `json:"errors,omitempty"`
}

// Merge combines results under per-slice prefixes (e.g. "path.", "body.").
// Order of arguments is preserved only in map keys, which are disjoint by
// construction of the prefixes.
func Merge(prefixed map[string]Result) Result {
	merged := Result{Valid: true}
	for prefix, result := range prefixed {
		if result.Valid {
			continue
		}
		merged.Valid = false
		if merged.Errors == nil {
			merged.Errors = make(map[string]FieldError)
		}
		for path, fieldErr := range result.Errors {
			merged.Errors[prefix+path] = fieldErr
		}
	}
	return merged
}

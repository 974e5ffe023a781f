package schema

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// violation is one raw rule failure before path normalization. Instance path
// and schema path use "/"-separated segments, mirroring the pointer shapes
// the normalization algorithm expects.
type violation struct {
	instancePath    string
	schemaPath      string
	rule            string
	missingProperty string
}

// Validate evaluates a schema against one decoded request slice. The result
// depends only on the inputs: re-running the same document against the same
// schema always yields the same outcome.
func Validate(doc map[string]any, s *Schema) Result {
	if s == nil {
		return Result{Valid: true}
	}

	var violations []violation
	walkObject(doc, s.Fields, s.Required, "", "#", &violations)

	if len(violations) == 0 {
		return Result{Valid: true}
	}

	errors := make(map[string]FieldError)
	for _, v := range violations {
		path := normalizePath(v)
		entry, ok := errors[path]
		if !ok {
			entry = FieldError{Failed: make(map[string]bool)}
		}
		entry.Failed[v.rule] = true
		errors[path] = entry
	}
	return Result{Valid: false, Errors: errors}
}

func walkObject(doc map[string]any, fields map[string]Field, required []string, instancePath string, schemaPath string, out *[]violation) {
	for _, name := range required {
		if _, present := doc[name]; !present {
			*out = append(*out, violation{
				instancePath:    instancePath,
				schemaPath:      schemaPath + "/required",
				rule:            RuleRequired,
				missingProperty: name,
			})
		}
	}

	for _, name := range sortedFieldNames(fields) {
		value, present := doc[name]
		if !present {
			continue
		}
		checkField(value, fields[name], doc,
			instancePath+"/"+name,
			schemaPath+"/properties/"+name,
			out,
		)
	}
}

func checkField(value any, field Field, parent map[string]any, instancePath string, schemaPath string, out *[]violation) {
	if field.Type != "" && !matchesType(value, field.Type) {
		*out = append(*out, violation{
			instancePath: instancePath,
			schemaPath:   schemaPath + "/type",
			rule:         RuleType,
		})
		return
	}

	for _, rule := range field.Rules {
		if !evalRule(value, rule, parent) {
			*out = append(*out, violation{
				instancePath: instancePath,
				schemaPath:   schemaPath + "/" + rule.Name,
				rule:         rule.Name,
			})
		}
	}

	switch field.Type {
	case TypeObject:
		if nested, ok := value.(map[string]any); ok {
			walkObject(nested, field.Fields, field.Required, instancePath, schemaPath, out)
		}
	case TypeArray:
		if field.Items == nil {
			return
		}
		if items, ok := value.([]any); ok {
			for i, item := range items {
				checkField(item, *field.Items, nil,
					fmt.Sprintf("%s/%d", instancePath, i),
					schemaPath+"/items",
					out,
				)
			}
		}
	}
}

func evalRule(value any, rule Rule, parent map[string]any) bool {
	switch rule.Name {
	case RuleIsNotBlank:
		text, ok := value.(string)
		return ok && strings.TrimSpace(text) != ""
	case RuleFormat:
		text, ok := value.(string)
		if !ok {
			return false
		}
		if rule.Param == "email" {
			return emailPattern.MatchString(text)
		}
		return true
	case RuleMatchesProperty:
		if parent == nil {
			return false
		}
		return value == parent[rule.Param]
	case RuleConst:
		return fmt.Sprintf("%v", value) == rule.Param
	case RulePattern:
		text, ok := value.(string)
		if !ok {
			return false
		}
		matched, err := regexp.MatchString(rule.Param, text)
		return err == nil && matched
	default:
		return true
	}
}

func matchesType(value any, declared string) bool {
	switch declared {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		_, ok := value.(float64)
		return ok
	case TypeInteger:
		num, ok := value.(float64)
		return ok && num == math.Trunc(num)
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeArray:
		_, ok := value.([]any)
		return ok
	default:
		return true
	}
}

func sortedFieldNames(fields map[string]Field) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

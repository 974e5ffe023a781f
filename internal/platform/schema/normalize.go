package schema

import "strings"

// normalizePath derives the flat dotted field path for one violation.
//
// The instance path of the failing value is preferred. When it is empty (a
// missing-required-property violation at the document root carries no
// instance path), the path falls back to the schema path's
// properties-relative segment with the missing property name appended.
// Leading separators are stripped and the remaining segments joined with
// dots, so a violation on /object1/field1 reports as "object1.field1".
func normalizePath(v violation) string {
	path := v.instancePath
	if path == "" {
		path = propertiesRelative(v.schemaPath)
		if v.missingProperty != "" {
			if path == "" {
				path = v.missingProperty
			} else {
				path = path + "/" + v.missingProperty
			}
		}
	}
	path = strings.TrimPrefix(path, "/")
	return strings.ReplaceAll(path, "/", ".")
}

// propertiesRelative extracts the field segment of a schema path, dropping
// the leading "#", the trailing rule keyword, and every "properties"
// separator: "#/properties/object1/required" yields "object1"; "#/required"
// yields "".
func propertiesRelative(schemaPath string) string {
	path := strings.TrimPrefix(schemaPath, "#")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[:i]
	}
	i := strings.Index(path, "/properties/")
	if i < 0 {
		return ""
	}
	path = path[i+len("/properties/"):]
	return strings.ReplaceAll(path, "/properties/", "/")
}

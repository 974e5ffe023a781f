package httpserver

import "requisite/internal/platform/schema"

// Route schemas. Parameter schemas validate raw path segments as numeric
// strings; body schemas mirror the transport DTOs field for field.

const numericPattern = "^[0-9]+$"

func idParam() schema.Field {
	return schema.Field{
		Type:  schema.TypeString,
		Rules: []schema.Rule{{Name: schema.RulePattern, Param: numericPattern}},
	}
}

func paramsSchema(names ...string) *schema.Schema {
	fields := make(map[string]schema.Field, len(names))
	for _, name := range names {
		fields[name] = idParam()
	}
	return &schema.Schema{Fields: fields, Required: names}
}

func requiredText() schema.Field {
	return schema.Field{
		Type:  schema.TypeString,
		Rules: []schema.Rule{{Name: schema.RuleIsNotBlank}},
	}
}

var loginBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"domain":   {Type: schema.TypeString},
		"userName": requiredText(),
		"password": requiredText(),
	},
	Required: []string{"userName", "password"},
}

var registerBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"userName": requiredText(),
		"emailAddress": {
			Type: schema.TypeString,
			Rules: []schema.Rule{
				{Name: schema.RuleIsNotBlank},
				{Name: schema.RuleFormat, Param: "email"},
			},
		},
		"password": requiredText(),
		"confirmPassword": {
			Type: schema.TypeString,
			Rules: []schema.Rule{
				{Name: schema.RuleIsNotBlank},
				{Name: schema.RuleMatchesProperty, Param: "password"},
			},
		},
		"firstName": {Type: schema.TypeString},
		"lastName":  {Type: schema.TypeString},
	},
	Required: []string{"userName", "emailAddress", "password", "confirmPassword"},
}

var organizationBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"name":        requiredText(),
		"description": {Type: schema.TypeString},
	},
	Required: []string{"name"},
}

var productBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"name":        requiredText(),
		"description": {Type: schema.TypeString},
		"public":      {Type: schema.TypeBoolean},
	},
	Required: []string{"name"},
}

var featureBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"name":        requiredText(),
		"description": {Type: schema.TypeString},
	},
	Required: []string{"name"},
}

var storyBody = featureBody

var memberBody = &schema.Schema{
	Fields: map[string]schema.Field{
		"user": {
			Type: schema.TypeObject,
			Fields: map[string]schema.Field{
				"domain":   {Type: schema.TypeString},
				"userName": requiredText(),
			},
			Required: []string{"userName"},
		},
		"entity": {
			Type: schema.TypeObject,
			Fields: map[string]schema.Field{
				"id":   {Type: schema.TypeInteger},
				"name": {Type: schema.TypeString},
			},
		},
		"role": requiredText(),
	},
	Required: []string{"user", "role"},
}

package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"requisite/internal/platform/schema"
)

// validation pairs the two schemas a route may declare. Either slice may be
// nil when the route has no parameters or no body.
type validation struct {
	Params *schema.Schema
	Body   *schema.Schema
}

// validate checks path parameters and the decoded body against the route's
// schemas and merges violations under "path." and "body." prefixes. The body
// is restored after decoding so the handler can consume it again.
func (s *Server) validate(v validation) Stage {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			results := make(map[string]schema.Result, 2)

			if v.Params != nil {
				results["path."] = schema.Validate(pathParams(r, v.Params), v.Params)
			}

			if v.Body != nil {
				raw, err := io.ReadAll(r.Body)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_request", "unreadable request body")
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(raw))

				doc := map[string]any{}
				if len(bytes.TrimSpace(raw)) > 0 {
					if err := json.Unmarshal(raw, &doc); err != nil {
						writeError(w, http.StatusBadRequest, "invalid_request", "malformed json body")
						return
					}
				}
				results["body."] = schema.Validate(doc, v.Body)
			}

			merged := schema.Merge(results)
			if !merged.Valid {
				s.writeValidationFailure(w, merged)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// pathParams projects the declared parameter fields out of the request path.
// Absent segments are omitted so required rules report them.
func pathParams(r *http.Request, s *schema.Schema) map[string]any {
	doc := make(map[string]any, len(s.Fields))
	for name := range s.Fields {
		if value := r.PathValue(name); value != "" {
			doc[name] = value
		}
	}
	return doc
}

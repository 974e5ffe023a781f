package httpserver

import "net/http"

// Stage is one request-processing step. Stages short-circuit by writing a
// response and not invoking the next handler, so composition is strictly
// sequential and the first failure is the one surfaced.
type Stage func(http.Handler) http.Handler

// chain composes stages around a terminal handler in declaration order:
// chain(h, a, b) runs a, then b, then h.
func chain(handler http.Handler, stages ...Stage) http.Handler {
	for i := len(stages) - 1; i >= 0; i-- {
		handler = stages[i](handler)
	}
	return handler
}

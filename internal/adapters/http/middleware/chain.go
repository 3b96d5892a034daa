package middleware

import "net/http"

// Chain folds several middleware into one. The first argument ends up
// outermost, so the call reads in execution order:
//
//	Chain(Recovery(log), RequestID(), Logging(log))(handler)
//
// behaves as Recovery(RequestID(Logging(handler))).
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		wrapped := handler
		for i := len(middlewares) - 1; i >= 0; i-- {
			wrapped = middlewares[i](wrapped)
		}
		return wrapped
	}
}

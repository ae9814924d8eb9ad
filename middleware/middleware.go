// Package middleware holds the framework-agnostic pieces shared by the HTTP
// adapters under middleware/echo and middleware/gin.
package middleware

import (
	"context"

	recval "github.com/recval/recval"
)

// ctxKeyResult is a typed context key for storing a validation Result.
type ctxKeyResult struct{}

// ContextWithResult attaches a Result to the context.
func ContextWithResult(ctx context.Context, res recval.Result) context.Context {
	return context.WithValue(ctx, ctxKeyResult{}, res)
}

// ResultFromContext retrieves a Result from context.
func ResultFromContext(ctx context.Context) (recval.Result, bool) {
	res, ok := ctx.Value(ctxKeyResult{}).(recval.Result)
	return res, ok
}

// DefaultOpt returns a recommended default for HTTP JSON boundaries: collect
// every issue but cap the response payload.
func DefaultOpt() recval.Opt {
	return recval.Opt{MaxIssues: 100}
}

// ErrorPayload shapes Issues for JSON responses.
func ErrorPayload(issues recval.Issues) map[string]any {
	return map[string]any{"issues": issues}
}

package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	recval "github.com/recval/recval"
	"github.com/recval/recval/middleware"
)

// ValidateJSON validates the request body against the named catalog record,
// stores the Result in the request context on success, or returns 400 with
// the Issues payload when validation fails. An unset MaxIssues takes the
// DefaultOpt cap; the other option fields pass through untouched.
func ValidateJSON(v *recval.Validator, record string, opt recval.Opt) echo.MiddlewareFunc {
	if opt.MaxIssues == 0 {
		opt.MaxIssues = middleware.DefaultOpt().MaxIssues
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			res, err := v.Validate(ctx, record, recval.FromReader(c.Request().Body), opt)
			if err != nil {
				if iss, ok := recval.AsIssues(err); ok {
					return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
				}
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			if !res.Valid {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(res.Issues))
			}
			c.SetRequest(c.Request().WithContext(middleware.ContextWithResult(ctx, res)))
			return next(c)
		}
	}
}

// GetResult fetches the validation Result from echo.Context.
func GetResult(c echo.Context) (recval.Result, bool) {
	return middleware.ResultFromContext(c.Request().Context())
}

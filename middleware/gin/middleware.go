package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	recval "github.com/recval/recval"
	"github.com/recval/recval/middleware"
)

// ValidateJSON validates the request body against the named catalog record,
// stores the Result in the request context, and on validation failure returns
// 400 with the Issues payload. An unset MaxIssues takes the DefaultOpt cap;
// the other option fields pass through untouched.
func ValidateJSON(v *recval.Validator, record string, opt recval.Opt) gin.HandlerFunc {
	if opt.MaxIssues == 0 {
		opt.MaxIssues = middleware.DefaultOpt().MaxIssues
	}
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		res, err := v.Validate(ctx, record, recval.FromReader(c.Request.Body), opt)
		if err != nil {
			if iss, ok := recval.AsIssues(err); ok {
				c.JSON(http.StatusBadRequest, middleware.ErrorPayload(iss))
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			c.Abort()
			return
		}
		if !res.Valid {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(res.Issues))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithResult(ctx, res))
		c.Next()
	}
}

// GetResult fetches the validation Result from gin.Context.
func GetResult(c *gin.Context) (recval.Result, bool) {
	return middleware.ResultFromContext(c.Request.Context())
}

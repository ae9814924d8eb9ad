package ginmw_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	recval "github.com/recval/recval"
	ginmw "github.com/recval/recval/middleware/gin"
)

func userValidator(t *testing.T) *recval.Validator {
	t.Helper()
	cat, err := recval.NewCatalog([]recval.Record{{
		FullName: "api.user",
		Shape:    recval.ShapeObject,
		Fields: []recval.Field{
			{Name: "id", Type: "String"},
			{Name: "age", Type: "Integer"},
		},
		Required: []string{"id"},
	}})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return recval.New(cat)
}

func TestValidateJSON_InvalidBodyKeepsCallerSink(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var sunk []recval.Issue
	r := gin.New()
	r.POST("/users", ginmw.ValidateJSON(userValidator(t), "api.user", recval.Opt{
		Sink: func(iss recval.Issue) { sunk = append(sunk, iss) },
	}), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"age":"x"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	// Defaulting MaxIssues must not discard the caller's sink.
	if len(sunk) == 0 {
		t.Fatalf("sink received no issues")
	}
}

func TestValidateJSON_ValidBodyStoresResult(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users", ginmw.ValidateJSON(userValidator(t), "api.user", recval.Opt{}), func(c *gin.Context) {
		res, ok := ginmw.GetResult(c)
		if !ok || !res.Valid || res.Checked == 0 {
			t.Fatalf("result not stored: %+v, %v", res, ok)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"id":"u-1","age":"30"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

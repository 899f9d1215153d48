package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

func newHTTPSRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewHTTPSEnforcer(zap.NewNop(), enabled).HTTPSMiddleware())
	router.GET("/about", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}

func TestHTTPSMiddleware(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should pass through when disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://todo.example/about", nil)

		newHTTPSRouter(false).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	t.Run("should redirect plain http when enabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://todo.example/about", nil)

		newHTTPSRouter(true).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusMovedPermanently))
		Expect(w.Header().Get("Location")).To(Equal("https://todo.example/about"))
	})

	t.Run("should trust a forwarded https proto", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://todo.example/about", nil)
		req.Header.Set("X-Forwarded-Proto", "https")

		newHTTPSRouter(true).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})

	t.Run("should leave localhost alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://localhost:10000/about", nil)

		newHTTPSRouter(true).ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
	})
}

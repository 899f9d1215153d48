package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"todoweb/internal/adapter/http/view"
	"todoweb/internal/core/model/response"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func newCSRFRouter(allowed ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	templates, err := view.Templates()

	if err != nil {
		panic(err)
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.Use(CSRF(CSRFConfig{AllowedOrigins: allowed}))

	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusFound) })

	return router
}

func TestCSRF(t *testing.T) {
	RegisterTestingT(t)

	tests := []struct {
		name    string
		method  string
		origin  string
		referer string
		allowed []string
		want    int
	}{
		{name: "safe method skips the check", method: http.MethodGet, want: http.StatusOK},
		{name: "same origin", method: http.MethodPost, origin: "http://todo.example", want: http.StatusFound},
		{name: "same origin with trailing slash", method: http.MethodPost, origin: "http://TODO.example/", want: http.StatusFound},
		{name: "referer fallback", method: http.MethodPost, referer: "http://todo.example/update/1", want: http.StatusFound},
		{name: "foreign origin", method: http.MethodPost, origin: "http://evil.example", want: http.StatusForbidden},
		{name: "foreign referer", method: http.MethodPost, referer: "http://evil.example/form", want: http.StatusForbidden},
		{name: "missing origin", method: http.MethodPost, want: http.StatusForbidden},
		{name: "configured origin", method: http.MethodPost, origin: "https://app.example", allowed: []string{"https://app.example"}, want: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "http://todo.example/", nil)

			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			newCSRFRouter(tt.allowed...).ServeHTTP(w, req)

			Expect(w.Code).To(Equal(tt.want))
		})
	}
}

func TestCSRF_RendersNegotiatedErrorPage(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should render the error page for a browser form", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://todo.example/", nil)
		req.Header.Set("Origin", "http://evil.example")
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		newCSRFRouter().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
		Expect(w.Body.String()).To(ContainSubstring(MsgCrossSiteRequest))
	})

	t.Run("should answer JSON clients with the error view", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "http://todo.example/", nil)
		req.Header.Set("Accept", "application/json")

		newCSRFRouter().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusForbidden))

		var body response.ErrorView
		Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
		Expect(body.Message).To(Equal(MsgCrossSiteRequest))
	})
}

package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"todoweb/internal/adapter/http/handler"
	"todoweb/internal/adapter/http/view"
	"todoweb/internal/core/model/response"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func newPageRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	templates, err := view.Templates()

	if err != nil {
		panic(err)
	}

	router := gin.New()
	router.SetHTMLTemplate(templates)
	router.POST("/login", handler.TooManyRequests)

	return router
}

func TestTooManyRequests(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should render the error page for browsers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Accept", "text/html")

		newPageRouter().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("text/html"))
		Expect(w.Body.String()).To(ContainSubstring(handler.MsgTooManyRequests))
	})

	t.Run("should answer JSON clients with the error view", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("Accept", "application/json")

		newPageRouter().ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(decode[response.ErrorView](w).Message).To(Equal(handler.MsgTooManyRequests))
	})
}

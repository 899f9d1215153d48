package handler

import (
	"net/http"

	"todoweb/internal/adapter/http/helper"
	"todoweb/internal/core/model/response"

	"github.com/gin-gonic/gin"
)

func About(c *gin.Context) {
	helper.Render(c, http.StatusOK, "about.html", &response.AboutView{
		Page: response.Page{Title: "About"},
	})
}

func NotFound(c *gin.Context) {
	helper.RenderError(c, http.StatusNotFound, "The requested page could not be found.")
}

const MsgTooManyRequests = "Too many attempts. Please wait a moment and try again."

func TooManyRequests(c *gin.Context) {
	helper.RenderError(c, http.StatusTooManyRequests, MsgTooManyRequests)
}

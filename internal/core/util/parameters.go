package util

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ParamsToMap binds an urlencoded or multipart form body into T.
func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindWith(&params, binding.Form); err != nil {
		return params, err
	}

	return params, nil
}

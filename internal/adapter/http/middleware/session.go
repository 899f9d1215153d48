package middleware

import (
	"net/http"

	"todoweb/internal/adapter/http/helper"
	"todoweb/internal/adapter/session"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"

	"github.com/gin-gonic/gin"
)

const MsgLoginRequired = "Please log in to access this page."

// SessionMiddleware loads the session for every request and, in
// multi-user mode, resolves the signed in user. A session pointing at a
// deleted account is logged out.
func SessionMiddleware(manager *session.Manager, users port.UserService, multiUser bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		helper.SetMultiUser(c, multiUser)

		s, err := manager.Load(c)

		if err != nil {
			c.Error(err)
			helper.RenderError(c, http.StatusInternalServerError, "Something went wrong.")
			c.Abort()
			return
		}

		session.Set(c, s)

		if multiUser && s.IsAuthenticated() {
			ctx := c.Request.Context()
			user, err := users.GetByID(ctx, s.UserID())

			switch {
			case domain.IsNotFound(err):
				if err := s.Logout(ctx); err != nil {
					c.Error(err)
				}
			case err != nil:
				c.Error(err)
				helper.RenderError(c, http.StatusInternalServerError, "Something went wrong.")
				c.Abort()
				return
			default:
				helper.SetCurrentUser(c, &user)
				GetCurrent(c).Set("user_id", user.ID)
			}
		}

		c.Next()
	}
}

// RequireLogin sends anonymous visitors to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if helper.CurrentUser(c) == nil {
			helper.Flash(c, domain.FlashInfo, MsgLoginRequired)
			helper.Redirect(c, "/login")
			c.Abort()
			return
		}

		c.Next()
	}
}

package helper

import (
	"errors"
	"net/http"

	"todoweb/internal/adapter/session"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/model/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	currentUserKey = "current_user"
	multiUserKey   = "multi_user"

	MsgNotAuthorized = "You are not authorized to edit this todo."
)

var offered = []string{binding.MIMEHTML, binding.MIMEJSON}

func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser is the signed in user, or nil for anonymous requests and
// in single-tenant mode.
func CurrentUser(c *gin.Context) *domain.User {
	if value, ok := c.Get(currentUserKey); ok {
		if user, ok := value.(*domain.User); ok {
			return user
		}
	}

	return nil
}

// CurrentUserID is 0 when nobody is signed in.
func CurrentUserID(c *gin.Context) int {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}

	return 0
}

func SetMultiUser(c *gin.Context, enabled bool) {
	c.Set(multiUserKey, enabled)
}

func Flash(c *gin.Context, category domain.FlashCategory, message string) {
	if s := session.FromContext(c); s != nil {
		s.AddFlash(category, message)
	}
}

func saveSession(c *gin.Context) {
	if s := session.FromContext(c); s != nil {
		if err := s.Save(c); err != nil {
			c.Error(err)
		}
	}
}

// Render fills the shared page fields, consumes pending flashes and
// writes HTML, or JSON when the client asks for it.
func Render(c *gin.Context, status int, name string, view response.View) {
	page := view.Base()
	page.MultiUser = c.GetBool(multiUserKey)

	if user := CurrentUser(c); user != nil {
		page.CurrentUser = &response.UserResponse{ID: user.ID, Username: user.Username}
	}

	if s := session.FromContext(c); s != nil {
		page.Flashes = s.PopFlashes()
	}

	saveSession(c)

	c.Negotiate(status, gin.Negotiate{
		Offered:  offered,
		HTMLName: name,
		Data:     view,
	})
}

func RenderError(c *gin.Context, status int, message string) {
	Render(c, status, "error.html", &response.ErrorView{
		Page:    response.Page{Title: http.StatusText(status)},
		Code:    http.StatusText(status),
		Message: message,
	})
}

func Redirect(c *gin.Context, location string) {
	saveSession(c)
	c.Redirect(http.StatusFound, location)
}

// HandleError maps domain errors onto responses: missing records are 404,
// foreign todos bounce back to the list, anything else is a 500.
func HandleError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		RenderError(c, http.StatusNotFound, "The requested page could not be found.")
	case errors.Is(err, domain.ErrForbidden):
		Flash(c, domain.FlashDanger, MsgNotAuthorized)
		Redirect(c, "/")
	default:
		c.Error(err)
		RenderError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}

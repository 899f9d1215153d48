package handler

import (
	"errors"
	"net/http"

	. "todoweb/internal/adapter/http/helper"
	. "todoweb/internal/adapter/http/validation"
	"todoweb/internal/adapter/session"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/model/request"
	"todoweb/internal/core/model/response"
	"todoweb/internal/core/port"
	"todoweb/internal/core/util"
	"todoweb/pkg/config"
	. "todoweb/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	MsgUsernameTaken      = "Username already taken."
	MsgAccountCreated     = "Account created, please log in."
	MsgInvalidCredentials = "Invalid username or password."
	MsgLoggedOut          = "You have been logged out."
)

type AuthHandler struct {
	svc     port.AuthService
	Logger  *config.LokiLogger
	metrics *AppMetrics
}

func NewAuthHandler(svc port.AuthService, logger *config.LokiLogger, metrics *AppMetrics) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		Logger:  logger,
		metrics: metrics,
	}
}

func (a *AuthHandler) SignupForm(c *gin.Context) {
	renderAuthForm(c, http.StatusOK, "signup.html", "Sign up", "", nil)
}

func (a *AuthHandler) Signup(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Signup", nil)
	defer span.End()

	params, err := util.ParamsToMap[request.SignUpRequest](c)

	if err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if err := Validate(&params); err != nil {
		renderAuthForm(c, http.StatusBadRequest, "signup.html", "Sign up", params.Username, FormatValidationErrors(err))
		return
	}

	user, err := a.svc.Registration(ctx, &params)

	if errors.Is(err, domain.ErrUsernameTaken) {
		Flash(c, domain.FlashDanger, MsgUsernameTaken)
		Redirect(c, "/login")
		return
	}

	if err != nil {
		AddSpanError(span, err)
		HandleError(c, err)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	a.metrics.RecordUserOperation(ctx, "signup")
	a.Logger.InfoWithTrace(ctx, "User registered", zap.Int("user_id", user.ID))

	Flash(c, domain.FlashSuccess, MsgAccountCreated)
	Redirect(c, "/login")
}

func (a *AuthHandler) LoginForm(c *gin.Context) {
	renderAuthForm(c, http.StatusOK, "login.html", "Log in", "", nil)
}

func (a *AuthHandler) Login(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.auth.Login", nil)
	defer span.End()

	params, err := util.ParamsToMap[request.LoginRequest](c)

	if err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	if err := Validate(&params); err != nil {
		renderAuthForm(c, http.StatusBadRequest, "login.html", "Log in", params.Username, FormatValidationErrors(err))
		return
	}

	user, err := a.svc.Authenticate(ctx, &params)

	if errors.Is(err, domain.ErrInvalidCredentials) {
		AddSpanEvent(span, "login.rejected", []attribute.KeyValue{
			attribute.String("user.name", params.Username),
		})
		a.metrics.RecordUserOperation(ctx, "login_failed")
		a.Logger.WarnWithTrace(ctx, "Login rejected", zap.String("username", params.Username))

		Flash(c, domain.FlashDanger, MsgInvalidCredentials)
		Redirect(c, "/login")
		return
	}

	if err != nil {
		AddSpanError(span, err)
		HandleError(c, err)
		return
	}

	if err := session.FromContext(c).Login(ctx, user.ID); err != nil {
		AddSpanError(span, err)
		HandleError(c, err)
		return
	}

	a.metrics.RecordUserOperation(ctx, "login")
	a.Logger.InfoWithTrace(ctx, "User logged in", zap.Int("user_id", user.ID))

	Redirect(c, "/")
}

func (a *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if err := session.FromContext(c).Logout(ctx); err != nil {
		HandleError(c, err)
		return
	}

	a.metrics.RecordUserOperation(ctx, "logout")

	Flash(c, domain.FlashInfo, MsgLoggedOut)
	Redirect(c, "/login")
}

func renderAuthForm(c *gin.Context, status int, name, title, username string, errs []response.ValidationError) {
	Render(c, status, name, &response.AuthFormView{
		Page:     response.Page{Title: title, Errors: errs},
		Username: username,
	})
}

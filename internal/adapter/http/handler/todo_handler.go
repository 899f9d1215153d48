package handler

import (
	"errors"
	"net/http"
	"strconv"

	. "todoweb/internal/adapter/http/helper"
	. "todoweb/internal/adapter/http/validation"
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

type TodoHandler struct {
	svc     port.TodoService
	Logger  *config.LokiLogger
	metrics *AppMetrics
}

func NewTodoHandler(svc port.TodoService, logger *config.LokiLogger, metrics *AppMetrics) *TodoHandler {
	return &TodoHandler{
		svc:     svc,
		Logger:  logger,
		metrics: metrics,
	}
}

func (t *TodoHandler) Index(c *gin.Context) {
	t.renderIndex(c, http.StatusOK, response.TodoResponse{}, nil)
}

func (t *TodoHandler) renderIndex(c *gin.Context, status int, form response.TodoResponse, errs []response.ValidationError) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Index", []attribute.KeyValue{
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userId := CurrentUserID(c)
	span.SetAttributes(attribute.Int("user.id", userId))

	todos, err := t.svc.List(ctx, userId)

	if err != nil {
		AddSpanError(span, err)
		HandleError(c, err)
		return
	}

	view := &response.TodoListView{
		Page:  response.Page{Title: "Home", Errors: errs},
		Todos: make([]response.TodoResponse, 0, len(todos)),
		Form:  form,
	}

	for _, todo := range todos {
		view.Todos = append(view.Todos, response.NewTodoResponse(todo))
	}

	Render(c, status, "index.html", view)
}

func (t *TodoHandler) Create(c *gin.Context) {
	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	form := response.TodoResponse{Title: params.Title, Description: params.Description}

	if err := Validate(&params); err != nil {
		t.renderIndex(c, http.StatusBadRequest, form, FormatValidationErrors(err))
		return
	}

	todo, err := t.svc.Create(c.Request.Context(), domain.Todo{
		Title:       params.Title,
		Description: params.Description,
		UserId:      CurrentUserID(c),
	})

	if errs := domainValidationErrors(err); errs != nil {
		t.renderIndex(c, http.StatusBadRequest, form, errs)
		return
	}

	if err != nil {
		HandleError(c, err)
		return
	}

	t.metrics.RecordTodoOperation(c.Request.Context(), "create")
	t.Logger.InfoWithTrace(c.Request.Context(), "Todo created",
		zap.Int("todo_id", todo.ID),
		zap.Int("user_id", todo.UserId))

	Redirect(c, "/")
}

func (t *TodoHandler) Edit(c *gin.Context) {
	id, ok := todoID(c)

	if !ok {
		return
	}

	todo, err := t.svc.Get(c.Request.Context(), id, CurrentUserID(c))

	if err != nil {
		HandleError(c, err)
		return
	}

	renderEdit(c, http.StatusOK, response.NewTodoResponse(todo), nil)
}

func (t *TodoHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := todoID(c)

	if !ok {
		return
	}

	userId := CurrentUserID(c)

	todo, err := t.svc.Get(ctx, id, userId)

	if err != nil {
		HandleError(c, err)
		return
	}

	params, err := util.ParamsToMap[request.TodoRequest](c)

	if err != nil {
		RenderError(c, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	form := response.NewTodoResponse(todo)
	form.Title = params.Title
	form.Description = params.Description

	if err := Validate(&params); err != nil {
		renderEdit(c, http.StatusBadRequest, form, FormatValidationErrors(err))
		return
	}

	_, err = t.svc.Update(ctx, todo, userId, params.Title, params.Description)

	if errs := domainValidationErrors(err); errs != nil {
		renderEdit(c, http.StatusBadRequest, form, errs)
		return
	}

	if err != nil {
		HandleError(c, err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "update")

	Redirect(c, "/")
}

func (t *TodoHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := todoID(c)

	if !ok {
		return
	}

	if err := t.svc.Delete(ctx, id, CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}

	t.metrics.RecordTodoOperation(ctx, "delete")
	t.Logger.InfoWithTrace(ctx, "Todo deleted", zap.Int("todo_id", id))

	Redirect(c, "/")
}

// Show is the single-tenant placeholder page. It dumps every todo to the log.
func (t *TodoHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()

	todos, err := t.svc.List(ctx, 0)

	if err != nil {
		HandleError(c, err)
		return
	}

	t.Logger.InfoWithTrace(ctx, "All todos", zap.Int("count", len(todos)), zap.Stringers("todos", todos))

	c.String(http.StatusOK, "this is product page")
}

func renderEdit(c *gin.Context, status int, todo response.TodoResponse, errs []response.ValidationError) {
	Render(c, status, "update.html", &response.TodoEditView{
		Page: response.Page{Title: "Update", Errors: errs},
		Todo: todo,
	})
}

// todoID parses :id, answering 404 itself when it is not a positive integer.
func todoID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))

	if err != nil || id <= 0 {
		HandleError(c, domain.ErrTodoNotFound)
		return 0, false
	}

	return id, true
}

func domainValidationErrors(err error) []response.ValidationError {
	var validationErr *domain.ValidationError

	if !errors.As(err, &validationErr) {
		return nil
	}

	message := "Title must be 1 to 80 characters"

	if validationErr.Field == "desc" {
		message = "Description is required"
	}

	return []response.ValidationError{{Field: validationErr.Field, Message: message}}
}

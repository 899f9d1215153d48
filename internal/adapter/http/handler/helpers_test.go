package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	api "todoweb/internal/adapter/http"
	"todoweb/internal/adapter/database/memory"
	"todoweb/internal/adapter/database/sqlite/repository"
	"todoweb/internal/adapter/http/routes"
	"todoweb/internal/core/domain"
	"todoweb/internal/core/port"
	"todoweb/pkg/config"
	. "todoweb/pkg/test"
	"todoweb/pkg/test/factory"
	"todoweb/pkg/tracing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const origin = "http://example.com"

var ctx = context.Background()

type testApp struct {
	Router   *gin.Engine
	TodoRepo port.TodoRepository
	UserRepo port.UserRepository
}

func newTestApp(authEnabled bool) *testApp {
	db := InitTestDB()

	cfg := config.GetDefaultConfig()
	cfg.AuthEnabled = authEnabled
	cfg.BcryptCost = bcrypt.MinCost

	todoRepo := repository.NewTodoRepository(db)
	userRepo := repository.NewUserRepository(db)

	container := api.NewContainerWithStores(todoRepo, userRepo, memory.NewSessionStore(), cfg, config.NewNopLogger(), tracing.NewNopMetrics())

	router, err := routes.SetupRouterForTests(container.Handlers(), cfg)

	if err != nil {
		panic(err)
	}

	return &testApp{
		Router:   router,
		TodoRepo: todoRepo,
		UserRepo: userRepo,
	}
}

func (a *testApp) createUser(username string) domain.User {
	user, err := a.UserRepo.Create(ctx, factory.NewUser[domain.User](map[string]any{
		"Username": username,
	}))

	if err != nil {
		panic(err)
	}

	return user
}

func (a *testApp) createTodo(title string, userId int) domain.Todo {
	todo, err := a.TodoRepo.Create(ctx, factory.NewTodo[domain.Todo](map[string]any{
		"Title":  title,
		"UserId": userId,
	}))

	if err != nil {
		panic(err)
	}

	return todo
}

// browser keeps cookies between requests the way a real client would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
	html    bool
}

func (a *testApp) browser() *browser {
	return &browser{app: a, cookies: map[string]*http.Cookie{}}
}

// loggedInAs signs a fresh browser in with the factory password.
func (a *testApp) loggedInAs(user domain.User) *browser {
	b := a.browser()

	rr := b.Post("/login", url.Values{
		"username": {user.Username},
		"password": {factory.DefaultPassword},
	})

	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/" {
		panic("login failed for " + user.Username)
	}

	return b
}

func (b *browser) Get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)

	return b.do(req)
}

func (b *browser) Post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.PostFrom(path, form, origin)
}

func (b *browser) PostFrom(path string, form url.Values, from string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", from)

	return b.do(req)
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if !b.html {
		req.Header.Set("Accept", "application/json")
	}

	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	b.app.Router.ServeHTTP(rr, req)

	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(b.cookies, cookie.Name)
			continue
		}

		b.cookies[cookie.Name] = cookie
	}

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var data T

	body, _ := io.ReadAll(rr.Body)

	if err := json.Unmarshal(body, &data); err != nil {
		panic(err)
	}

	return data
}

func messages(flashes []domain.Flash) []string {
	out := make([]string, len(flashes))

	for i, flash := range flashes {
		out[i] = flash.Message
	}

	return out
}

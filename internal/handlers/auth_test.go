package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/velmor/go-auth-api/internal/database"
	"github.com/velmor/go-auth-api/internal/middleware"
	"github.com/velmor/go-auth-api/internal/models"
	"github.com/velmor/go-auth-api/internal/services"
	"github.com/velmor/go-auth-api/pkg/auth"
)

// fakeStore — минимальный UserStore в памяти для тестов хэндлеров.
type fakeStore struct {
	users   map[uuid.UUID]*models.User
	findErr error // когда задана, FindUserByID имитирует отказ хранилища
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[uuid.UUID]*models.User)}
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return database.ErrDuplicateUsername
		}
	}
	user.ID = uuid.New()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateUser(_ context.Context, user *models.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) FindUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindUserByUsernameOrGoogleID(_ context.Context, username, googleID string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username || (u.GoogleID != nil && googleID != "" && *u.GoogleID == googleID) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newFakeStore()
	userSvc := services.NewUserService(store)
	jwtMgr, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authSvc := services.NewAuthService(userSvc, jwtMgr)

	authH := NewAuthHandler(authSvc, nil, nil, "http://localhost:3001")
	userH := NewUserHandler(userSvc)

	r := gin.New()
	authGroup := r.Group("/auth")
	authGroup.POST("/register", authH.Register)
	authGroup.POST("/login", authH.Login)
	authGroup.GET("/google", authH.GoogleLogin)
	authGroup.GET("/google/callback", authH.GoogleCallback)
	authGroup.GET("/me", middleware.AuthMiddleware(jwtMgr), authH.Me)

	r.POST("/users", userH.CreateUser)
	users := r.Group("/users", middleware.AuthMiddleware(jwtMgr))
	users.GET("", userH.ListUsers)
	users.GET("/:id", userH.GetUser)
	users.PATCH("/:id", userH.UpdateUser)
	users.DELETE("/:id", userH.DeleteUser)

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	AccessToken string            `json:"access_token"`
	User        models.PublicUser `json:"user"`
}

func registerUser(t *testing.T, r *gin.Engine, username string) authResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": username,
		"fullname": "John Doe",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "JohnDoe",
		"fullname": "John Doe",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", w.Code, w.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("access_token is empty")
	}
	if resp.User.Username != "johndoe" {
		t.Fatalf("username = %q, want %q", resp.User.Username, "johndoe")
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response leaks a password field: %s", w.Body.String())
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	r, _ := setupRouter(t)

	// binding ловит короткий пароль ещё до сервиса
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "johndoe",
		"fullname": "John Doe",
		"password": "abc",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// паттерн username проверяет сервис
	w = doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "John Doe!",
		"fullname": "John Doe",
		"password": "secret1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestRegisterEndpointConflict(t *testing.T) {
	r, _ := setupRouter(t)
	registerUser(t, r, "johndoe")

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"username": "JOHNDOE",
		"fullname": "Another John",
		"password": "secret1",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body = %s", w.Code, w.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := setupRouter(t)
	registerUser(t, r, "johndoe")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "johndoe",
		"password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"username": "johndoe",
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
}

func TestMeEndpoint(t *testing.T) {
	r, store := setupRouter(t)
	reg := registerUser(t, r, "johndoe")

	w := doJSON(t, r, http.MethodGet, "/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/auth/me", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/auth/me", reg.AccessToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	var me models.PublicUser
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me response: %v", err)
	}
	if me.Username != "johndoe" {
		t.Fatalf("username = %q, want %q", me.Username, "johndoe")
	}

	// Токен валиден, но пользователь удалён — 401, не 404.
	id := uuid.MustParse(reg.User.ID)
	delete(store.users, id)
	w = doJSON(t, r, http.MethodGet, "/auth/me", reg.AccessToken, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deleted subject: status = %d, want 401", w.Code)
	}
}

func TestMeEndpointStoreFailure(t *testing.T) {
	r, store := setupRouter(t)
	reg := registerUser(t, r, "johndoe")

	// Отказ хранилища — это 500, а не "клиент не авторизован".
	store.findErr = errors.New("connection refused")
	w := doJSON(t, r, http.MethodGet, "/auth/me", reg.AccessToken, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("store failure: status = %d, want 500; body = %s", w.Code, w.Body.String())
	}
}

func TestGoogleLoginDisabled(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/auth/google", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/auth/google/callback", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("callback status = %d, want 404", w.Code)
	}
}

func TestUserCRUDEndpoints(t *testing.T) {
	r, _ := setupRouter(t)
	reg := registerUser(t, r, "johndoe")
	token := reg.AccessToken

	// list
	w := doJSON(t, r, http.MethodGet, "/users", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}

	// get
	w = doJSON(t, r, http.MethodGet, "/users/"+reg.User.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// update
	w = doJSON(t, r, http.MethodPatch, "/users/"+reg.User.ID, token, gin.H{
		"fullname": "John Q. Doe",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d; body = %s", w.Code, w.Body.String())
	}
	var updated models.PublicUser
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Fullname != "John Q. Doe" {
		t.Fatalf("fullname = %q, want %q", updated.Fullname, "John Q. Doe")
	}

	// delete, затем get — 404
	w = doJSON(t, r, http.MethodDelete, "/users/"+reg.User.ID, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/users/"+reg.User.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}

func TestCreateUserEndpoint(t *testing.T) {
	r, _ := setupRouter(t)

	// POST /users открыт: пользователя можно завести без токена,
	// и в отличие от /auth/register токен в ответе не выдаётся
	w := doJSON(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "JaneDoe",
		"fullname": "Jane Doe",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body = %s", w.Code, w.Body.String())
	}

	var created models.PublicUser
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Username != "janedoe" {
		t.Fatalf("username = %q, want %q", created.Username, "janedoe")
	}
	if strings.Contains(w.Body.String(), "access_token") {
		t.Fatalf("response unexpectedly carries a token: %s", w.Body.String())
	}

	// занятый username — конфликт
	w = doJSON(t, r, http.MethodPost, "/users", "", gin.H{
		"username": "janedoe",
		"fullname": "Jane Doe",
		"password": "secret1",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", w.Code)
	}
}

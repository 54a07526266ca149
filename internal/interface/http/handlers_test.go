package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sosmed-api/internal/application"
	"sosmed-api/internal/domain/entity"
	repo "sosmed-api/internal/domain/repository"
	"sosmed-api/internal/interface/middleware"
	"sosmed-api/pkg/helpers"
	"sosmed-api/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range f.users {
		if e.Email == u.Email {
			return &repo.DuplicateError{Field: "email"}
		}
		if e.Username == u.Username {
			return &repo.DuplicateError{Field: "username"}
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	cp := *u
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	for _, e := range f.users {
		if match(e) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.ID == id })
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Email == email })
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return f.find(func(u *entity.User) bool { return u.Username == username })
}

func (f *fakeUserRepo) GetByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	if u, _ := f.GetByEmail(context.Background(), email); u != nil {
		return u, nil
	}
	return f.GetByUsername(context.Background(), username)
}

func (f *fakeUserRepo) SearchByUsername(_ context.Context, username string) ([]entity.User, error) {
	var out []entity.User
	for _, e := range f.users {
		if strings.Contains(strings.ToLower(e.Username), strings.ToLower(username)) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	for i, e := range f.users {
		if e.ID == u.ID {
			cp := *u
			f.users[i] = &cp
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeFollowRepo struct {
	edges map[[2]string]bool
}

func (f *fakeFollowRepo) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	return f.edges[[2]string{followerID, followingID}], nil
}

func (f *fakeFollowRepo) Create(_ context.Context, e *entity.Follow) error {
	key := [2]string{e.FollowerID, e.FollowingID}
	if f.edges[key] {
		return repo.ErrDuplicateFollow
	}
	e.CreatedAt = time.Now()
	f.edges[key] = true
	return nil
}

type envelope struct {
	Status  int                 `json:"status"`
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Token   string              `json:"token"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func newTestRouter() (*gin.Engine, *application.Service) {
	users := &fakeUserRepo{}
	follows := &fakeFollowRepo{edges: make(map[[2]string]bool)}
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewService(users, follows, jwt, nil, "", nil)

	authH := NewAuthHandler(svc, nil)
	userH := NewUserHandler(svc, nil)
	followH := NewFollowHandler(svc, nil)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/user/search", userH.Search)
	api.GET("/user/:username", userH.GetByUsername)

	auth := api.Group("/")
	auth.Use(middleware.Auth(users, jwt))
	auth.GET("/auth/me", authH.Me)
	auth.PUT("/user/update-user", userH.Update)
	auth.POST("/follow/:username", followH.Follow)

	return r, svc
}

func doJSON(r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRegisterLoginScenario(t *testing.T) {
	r, svc := newTestRouter()

	// register Ada
	w, env := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace",
		"username": "ada",
		"email":    "ada@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, env.Token)
	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ada", data["username"])
	assert.NotContains(t, data, "password")
	registeredID := data["id"].(string)

	// same email, different username: duplicate on email, 400
	w, env = doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Again",
		"username": "ada2",
		"email":    "ada@x.com",
		"password": "secret2",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Registration failed", env.Message)
	assert.Equal(t, []string{"Email already registered"}, env.Errors["email"])

	// wrong password: 401
	w, wrongEnv := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", wrongEnv.Message)
	assert.Empty(t, wrongEnv.Token)

	// unknown email: identical response shape
	w, unknownEnv := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrongEnv.Message, unknownEnv.Message)
	assert.Equal(t, wrongEnv.Errors, unknownEnv.Errors)

	// correct password: 200, token decodes to the registered id
	w, env = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "ada@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.Token)
	claims, err := svc.JWT.Parse(env.Token)
	require.NoError(t, err)
	assert.Equal(t, registeredID, claims.UserID)
	assert.NotContains(t, string(env.Data), "password")
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestRouter()

	w, env := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Al",
		"username": "al",
		"email":    "not-an-email",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Message)
	for _, field := range []string{"fullname", "username", "email", "password"} {
		assert.Contains(t, env.Errors, field)
	}
}

func TestMe(t *testing.T) {
	r, _ := newTestRouter()

	_, env := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace",
		"username": "ada",
		"email":    "ada@x.com",
		"password": "secret1",
	})
	require.NotEmpty(t, env.Token)

	w, meEnv := doJSON(r, http.MethodGet, "/api/auth/me", env.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(meEnv.Data), `"username":"ada"`)
	assert.NotContains(t, string(meEnv.Data), "password")

	w, _ = doJSON(r, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAndSearchUser(t *testing.T) {
	r, _ := newTestRouter()

	_, _ = doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace",
		"username": "ada",
		"email":    "ada@x.com",
		"password": "secret1",
	})

	w, env := doJSON(r, http.MethodGet, "/api/user/ada", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"username":"ada"`)
	assert.NotContains(t, string(env.Data), "password")

	w, _ = doJSON(r, http.MethodGet, "/api/user/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = doJSON(r, http.MethodGet, "/api/user/search?username=AD", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"username":"ada"`)

	w, env = doJSON(r, http.MethodGet, "/api/user/search", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Username is required", env.Message)

	w, _ = doJSON(r, http.MethodGet, "/api/user/search?username=zzz", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser(t *testing.T) {
	r, _ := newTestRouter()

	_, env := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace",
		"username": "ada",
		"email":    "ada@x.com",
		"password": "secret1",
	})
	token := env.Token
	require.NotEmpty(t, token)

	// no token: 401
	w, _ := doJSON(r, http.MethodPut, "/api/user/update-user", "", gin.H{
		"fullname": "Ada Byron",
		"username": "ada",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// newPassword without currentPassword fails validation even though the
	// other fields are fine
	w, env = doJSON(r, http.MethodPut, "/api/user/update-user", token, gin.H{
		"fullname":    "Ada Byron",
		"username":    "ada",
		"newPassword": "newsecret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "currentPassword")

	// plain profile update
	w, env = doJSON(r, http.MethodPut, "/api/user/update-user", token, gin.H{
		"fullname": "Ada Byron",
		"username": "ada",
		"bio":      "first programmer",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"fullname":"Ada Byron"`)
	assert.NotContains(t, string(env.Data), "password")
}

func TestUpdateUserUsernameTaken(t *testing.T) {
	r, _ := newTestRouter()

	_, _ = doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace", "username": "ada", "email": "ada@x.com", "password": "secret1",
	})
	_, env := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Bob Tables", "username": "bob", "email": "bob@x.com", "password": "secret1",
	})
	require.NotEmpty(t, env.Token)

	w, env := doJSON(r, http.MethodPut, "/api/user/update-user", env.Token, gin.H{
		"fullname": "Bob Tables",
		"username": "ada",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Username already taken"}, env.Errors["username"])
}

func TestFollowEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	_, adaEnv := doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Ada Lovelace", "username": "ada", "email": "ada@x.com", "password": "secret1",
	})
	_, _ = doJSON(r, http.MethodPost, "/api/auth/register", "", gin.H{
		"fullname": "Bob Tables", "username": "bob", "email": "bob@x.com", "password": "secret1",
	})
	token := adaEnv.Token
	require.NotEmpty(t, token)

	w, env := doJSON(r, http.MethodPost, "/api/follow/bob", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Successfully followed the user", env.Message)

	w, env = doJSON(r, http.MethodPost, "/api/follow/bob", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You are already following this user", env.Message)

	w, env = doJSON(r, http.MethodPost, "/api/follow/ada", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot follow yourself", env.Message)

	w, env = doJSON(r, http.MethodPost, "/api/follow/nobody", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Message)

	w, _ = doJSON(r, http.MethodPost, "/api/follow/bob", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

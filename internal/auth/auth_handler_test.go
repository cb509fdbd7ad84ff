package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-erp/internal/auth"
	autherrors "hr-erp/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type authEnvelope struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeAuthEnvelope(t *testing.T, body []byte) authEnvelope {
	t.Helper()
	var env authEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeAuthService struct {
	registerFn func(ctx context.Context, req auth.RegisterRequest) (string, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (string, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthService) ResolveIdentity(ctx context.Context, employeeID string) (string, string, error) {
	return employeeID, "employee", nil
}

func postJSON(t *testing.T, w *httptest.ResponseRecorder, path, body string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns 201 with token", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (string, error) {
				assert.Equal(t, "john@example.com", req.Email)
				return "signed-token", nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/register",
			`{"name":"John Doe","email":"john@example.com","password":"secret123","department":"Engineering"}`)

		h.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeAuthEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "signed-token", env.Token)
	})

	t.Run("short password is rejected before the service", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (string, error) {
				t.Fatal("service must not be reached")
				return "", nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/register",
			`{"name":"John Doe","email":"john@example.com","password":"short","department":"Engineering"}`)

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeAuthEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (string, error) {
				t.Fatal("service must not be reached")
				return "", nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/register",
			`{"name":"John Doe","email":"john@example.com","password":"secret123","role":"superuser","department":"Engineering"}`)

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email maps to 400 envelope", func(t *testing.T) {
		svc := &fakeAuthService{
			registerFn: func(ctx context.Context, req auth.RegisterRequest) (string, error) {
				return "", autherrors.ErrEmailAlreadyRegistered
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/register",
			`{"name":"John Doe","email":"john@example.com","password":"secret123","department":"Engineering"}`)

		h.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeAuthEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, autherrors.ErrEmailAlreadyRegistered.Message, env.Error)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns 200 with token", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, error) {
				assert.Equal(t, "john@example.com", email)
				assert.Equal(t, "secret123", password)
				return "signed-token", nil
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/login",
			`{"email":"john@example.com","password":"secret123"}`)

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeAuthEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		assert.Equal(t, "signed-token", env.Token)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		svc := &fakeAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, error) {
				return "", autherrors.ErrInvalidCredentials
			},
		}

		h := auth.NewHandler(svc)
		w := httptest.NewRecorder()
		c := postJSON(t, w, "/auth/login",
			`{"email":"john@example.com","password":"wrong"}`)

		h.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeAuthEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, autherrors.ErrInvalidCredentials.Message, env.Error)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := auth.NewHandler(&fakeAuthService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	c.Set("employee_id", uuid.New().String())

	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeAuthEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.JSONEq(t, `{}`, string(env.Data))
}

package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	user *dmn.User
}

func (a *stubAuth) Register(username, password string) error {
	if username == "taken" {
		return errors.New("username already taken")
	}
	return nil
}

func (a *stubAuth) SignIn(username, password string) (*dmn.User, string, error) {
	if password != "secret" {
		return nil, "", errors.New("invalid username or password")
	}
	return a.user, "signed-token", nil
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", nil
}

func (s *stubTokenizer) Decode(tok string) (map[string]interface{}, error) {
	if tok != "good" {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func newEngine(a *stubAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewIdentityServer(a).RegisterPublic(engine.Group("/v1"))
	return engine
}

func post(engine http.Handler, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestIdentityServer(t *testing.T) {
	user := &dmn.User{ID: uuid.New(), Username: "builder"}
	engine := newEngine(&stubAuth{user: user})

	t.Run("Register", func(t *testing.T) {
		w := post(engine, "/v1/auth/register", AuthRequest{Username: "builder", Password: "secret"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Register rejected", func(t *testing.T) {
		w := post(engine, "/v1/auth/register", AuthRequest{Username: "taken", Password: "secret"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Register missing fields", func(t *testing.T) {
		w := post(engine, "/v1/auth/register", gin.H{"username": "builder"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login", func(t *testing.T) {
		w := post(engine, "/v1/auth/login", AuthRequest{Username: "builder", Password: "secret"})
		require.Equal(t, http.StatusOK, w.Code)

		var response AuthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID.String(), response.ID)
		assert.Equal(t, "signed-token", response.Token)
	})

	t.Run("Login rejected", func(t *testing.T) {
		w := post(engine, "/v1/auth/login", AuthRequest{Username: "builder", Password: "wrong"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	tests := []struct {
		name   string
		header string
		claims map[string]interface{}
		status int
	}{
		{"Valid", "Bearer good", map[string]interface{}{"userID": id.String()}, http.StatusOK},
		{"Lowercase scheme", "bearer good", map[string]interface{}{"userID": id.String()}, http.StatusOK},
		{"No header", "", nil, http.StatusUnauthorized},
		{"Wrong scheme", "Basic good", nil, http.StatusUnauthorized},
		{"Bad token", "Bearer bad", nil, http.StatusUnauthorized},
		{"Missing user id", "Bearer good", map[string]interface{}{"username": "x"}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(Authorize(&stubTokenizer{claims: tt.claims}))
			engine.GET("/me", func(c *gin.Context) {
				got, ok := UserID(c)
				require.True(t, ok)
				c.String(http.StatusOK, got.String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, id.String(), w.Body.String())
			}
		})
	}
}

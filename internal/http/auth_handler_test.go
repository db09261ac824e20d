package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/auth"
	"libraryapi/internal/catalog"
	"libraryapi/internal/store"
	"libraryapi/internal/testutil"
)

const testJWTSecret = "test-secret"

func newGuardedRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	hash, err := auth.HashPassword("hunter2")
	require.NoError(t, err)

	mem := store.NewMemory()
	svc := catalog.NewService(mem.Authors, mem.Books, mem.Borrowers, mem.Loans, nopRecorder{})
	return NewRouter(svc, RouterConfig{
		JWTSecret:         testJWTSecret,
		AdminPasswordHash: hash,
	})
}

func TestLogin(t *testing.T) {
	router := newGuardedRouter(t)

	t.Run("wrong password", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/library/login", map[string]string{
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("correct password returns token", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/library/login", map[string]string{
			"password": "hunter2",
		})
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Body["data"].(map[string]interface{})
		token, ok := data["token"].(string)
		require.True(t, ok)

		claims, err := auth.ParseToken(testJWTSecret, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Sub)
	})
}

func TestAuthGuard(t *testing.T) {
	router := newGuardedRouter(t)
	body := map[string]string{"name": "A. Smith"}

	t.Run("mutation without token rejected", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodPost, "/api/library/authors", body)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("mutation with bad token rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/api/library/authors", body, "garbage"))
		assert.Equal(t, http.StatusUnauthorized, testutil.RecordHTTPResponse(w).Code)
	})

	t.Run("mutation with valid token accepted", func(t *testing.T) {
		token := testutil.GenerateTestToken(testJWTSecret)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/api/library/authors", body, token))
		assert.Equal(t, http.StatusCreated, testutil.RecordHTTPResponse(w).Code)
	})

	t.Run("reads stay open", func(t *testing.T) {
		resp := doJSON(t, router, http.MethodGet, "/api/library/authors", nil)
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}

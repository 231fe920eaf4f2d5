package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"stackit/internal/api"
	"stackit/internal/app/service"
	"stackit/internal/common/security"
	"stackit/internal/domain/repository"
	"stackit/internal/platform/config"
	"stackit/internal/platform/counter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

// newTestRouter wires the full stack against fresh seeded memory stores.
func newTestRouter() http.Handler {
	userRepo := repository.NewMemoryUserRepository(repository.SeedUsers())
	questionRepo := repository.NewMemoryQuestionRepository(repository.SeedQuestions(), repository.SeedAnswers())

	authService := service.NewAuthService(userRepo)
	questionService := service.NewQuestionService(questionRepo, counter.NewMemoryViewCounter())
	answerService := service.NewAnswerService(questionRepo)

	return api.NewRouter(authService, questionService, answerService)
}

func doJSON(t *testing.T, router http.Handler, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func authCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "auth-token" {
			return c
		}
	}
	t.Fatal("auth-token cookie not set")
	return nil
}

func loginDemo(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/login",
		`{"email":"demo@example.com","password":"Demo123!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	return authCookie(t, w)
}

func TestLoginEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("valid credentials set the token cookie", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login",
			`{"email":"demo@example.com","password":"Demo123!"}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Login successful", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, "demo_user", user["username"])

		cookie := authCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
		assert.Equal(t, 604800, cookie.MaxAge)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login",
			`{"email":"demo@example.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("unknown email gives the same message", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login",
			`{"email":"ghost@example.com","password":"Demo123!"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeBody(t, w)["error"])
	})

	t.Run("broken JSON", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRegisterEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("fresh account gets a cookie", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register",
			`{"username":"newbie","email":"new@example.com","password":"pw123456"}`)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "Registration successful", body["message"])
		user := body["user"].(map[string]any)
		assert.Equal(t, float64(1), user["reputation"])
		authCookie(t, w)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register",
			`{"username":"newbie","email":"new@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])
	})

	t.Run("seed email conflicts regardless of other fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/register",
			`{"username":"anyone","email":"admin@example.com","password":"whatever"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "User already exists", decodeBody(t, w)["error"])
	})
}

func TestMeEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("without a token", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/auth/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("with the login cookie", func(t *testing.T) {
		cookie := loginDemo(t, router)
		w := doJSON(t, router, http.MethodGet, "/api/auth/me", "", cookie)
		require.Equal(t, http.StatusOK, w.Code)

		user := decodeBody(t, w)["user"].(map[string]any)
		assert.Equal(t, float64(1), user["id"])
		assert.Equal(t, "demo@example.com", user["email"])
		assert.Equal(t, "demo_user", user["username"])
	})
}

func TestLogoutEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)

	cookie := authCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "restaurante-api-test"
	rootEmail     = "root@example.com"
	rootPassword  = "rootpass123"
)

type testServer struct {
	app     *fiber.App
	metrics *metrics.Metrics
}

// buildTestApp construye la aplicación completa sobre el store en memoria con un super_admin inicial.
func buildTestApp(t *testing.T) *testServer {
	t.Helper()
	store, err := memory.NewStore()
	require.NoError(t, err)
	_, err = usecase.EnsureSuperAdmin(context.Background(), store.Users(), rootEmail, rootPassword)
	require.NoError(t, err)

	m := metrics.New("restaurante_test")
	guard := usecase.NewGuard(access.NewGate(), m)
	authUC := auth.NewAuthUseCase(store.Users(), store.Restaurants(), guard, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer,
	}, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       authUC,
		RestaurantUC: usecase.NewRestaurantUseCase(store.Restaurants(), store, guard),
		ProfileUC:    usecase.NewProfileUseCase(store.Profiles(), guard),
		UserUC:       usecase.NewUserUseCase(store.Users(), store.Restaurants(), guard),
		Metrics:      m,
		Log:          logger.Nop(),
	})
	return &testServer{app: app, metrics: m}
}

// do lanza una petición con cuerpo JSON opcional y decodifica la respuesta en out (si no es nil).
func (s *testServer) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out), "cuerpo: %s", raw)
	}
	return resp.StatusCode
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	status := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password}, &out)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, out.Token)
	return out.Token
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinToken(t *testing.T) {
	s := buildTestApp(t)
	var body errorBody
	status := s.do(t, http.MethodGet, "/api/auth/me", "", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}

// Header sin prefijo Bearer → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	s := buildTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}

// Token mal firmado → 401 UNAUTHENTICATED.
func TestAuthMiddleware_TokenInvalido(t *testing.T) {
	s := buildTestApp(t)
	var body errorBody
	status := s.do(t, http.MethodGet, "/api/auth/me", "no-es-un-jwt", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, access.CodeUnauthenticated, body.Code)
}

// Token válido → el handler recibe el usuario recargado.
func TestAuthMiddleware_TokenValido(t *testing.T) {
	s := buildTestApp(t)
	token := s.login(t, rootEmail, rootPassword)

	var me struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	status := s.do(t, http.MethodGet, "/api/auth/me", token, nil, &me)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, rootEmail, me.Email)
	assert.Equal(t, "super_admin", me.Role)
}

// Credenciales incorrectas → 401 INVALID_CREDENTIALS, igual para email inexistente.
func TestLogin_CredencialesInvalidas(t *testing.T) {
	s := buildTestApp(t)
	for _, email := range []string{rootEmail, "nadie@example.com"} {
		var body errorBody
		status := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "incorrecta"}, &body)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
	}
}

package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/zaiko-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/zaiko-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "zaiko-api-test"
	testExpMin    = 60
)

// bearer genera "Bearer <jwt>" para el rol indicado ("" = token sin rol).
func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func guardedApp(roles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(roles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func TestAuthMiddlewareYRequireRole(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, "admin", testIssuer, -5)
	require.NoError(t, err)

	cases := []struct {
		name     string
		roles    []string
		header   string
		status   int
		wantCode string
	}{
		{"admin en ruta de admin", []string{"admin"}, bearer(t, "admin"), http.StatusOK, ""},
		{"guest en ruta de lectura", []string{"admin", "guest"}, bearer(t, "guest"), http.StatusOK, ""},
		{"guest en ruta de admin", []string{"admin"}, bearer(t, "guest"), http.StatusForbidden, "FORBIDDEN"},
		{"token sin rol", []string{"admin"}, bearer(t, ""), http.StatusUnauthorized, "MISSING_ROLE"},
		{"sin header", []string{"admin"}, "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema Basic", []string{"admin"}, "Basic YWRtaW46cGFzcw==", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token corrupto", []string{"admin"}, "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token vencido", []string{"admin"}, "Bearer " + expired, http.StatusUnauthorized, "INVALID_TOKEN"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := guardedApp(tc.roles...).Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.wantCode != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Contains(t, string(body), tc.wantCode)
			}
		})
	}
}

func TestAuthMiddleware_CargaLocals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", bearer(t, "guest"))
	resp, err := guardedApp("guest").Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "guest", body["role"])
}

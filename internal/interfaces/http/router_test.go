package http_test

import (
	"bytes"
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

	"github.com/jhoicas/zaiko-api/internal/application/auth"
	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/application/usecase"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/memstore"
	"github.com/jhoicas/zaiko-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/zaiko-api/internal/interfaces/http"
	"github.com/jhoicas/zaiko-api/pkg/logger"
)

type testEnv struct {
	app   *fiber.App
	admin string
	guest string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:  usecase.NewProductUseCase(store, store.Products(), log),
		SetStockUC: inventory.NewSetStockUseCase(store, log),
		HistoryUC:  inventory.NewHistoryUseCase(store.History(), store.Variants(), 0),
		LowStockUC: inventory.NewLowStockUseCase(store.Products()),
		ExportUC:   inventory.NewExportUseCase(store.Products(), pdf.NewMarotoReportGenerator("")),
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
		Log:        log,
	})

	ctx := context.Background()
	_, err := authUC.EnsureUser(ctx, "admin", "password123", "admin")
	require.NoError(t, err)
	_, err = authUC.EnsureUser(ctx, "viewer", "viewer123", "guest")
	require.NoError(t, err)

	env := &testEnv{app: app}
	env.admin = env.login(t, "admin", "password123")
	env.guest = env.login(t, "viewer", "viewer123")
	return env
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return "Bearer " + out.Token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func (e *testEnv) createTShirt(t *testing.T) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/products", e.admin, dto.CreateProductRequest{
		Name: "Cotton T-Shirt",
		Variants: []dto.VariantInput{
			{Color: "White", StockTokyo: 50, StockOsaka: 30, MinStock: 60},
			{Color: "Black", StockTokyo: 10, StockOsaka: 5, MinStock: 40},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p dto.ProductResponse
	decode(t, resp, &p)
	return p
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "admin", Password: "mal"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProducts_GuestNoPuedeCrear(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.guest, dto.CreateProductRequest{
		Name: "X", Variants: []dto.VariantInput{{Color: "Red"}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts_CrearSinVariantes_400(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/products", env.admin, dto.CreateProductRequest{Name: "Solo nombre"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var list dto.ProductListResponse
	decode(t, env.do(t, http.MethodGet, "/api/products", env.guest, nil), &list)
	assert.Equal(t, 0, list.Total)
}

func TestSetStock_FlujoCompleto(t *testing.T) {
	env := newTestEnv(t)
	p := env.createTShirt(t)
	white := p.Variants[0]
	assert.False(t, white.IsLowStock)

	resp := env.do(t, http.MethodPatch, "/api/variants/"+white.ID+"/stock", env.admin, map[string]any{"field": "stockTokyo", "value": 20})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v dto.VariantResponse
	decode(t, resp, &v)
	assert.Equal(t, 20, v.StockTokyo)
	assert.Equal(t, 50, v.TotalStock)
	assert.True(t, v.IsLowStock)

	var hist dto.StockHistoryListResponse
	decode(t, env.do(t, http.MethodGet, "/api/variants/"+white.ID+"/history", env.guest, nil), &hist)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, 50, hist.Items[0].OldValue)
	assert.Equal(t, 20, hist.Items[0].NewValue)
	assert.Equal(t, "stockTokyo", hist.Items[0].Field)
	assert.Equal(t, "Cotton T-Shirt", hist.Items[0].ProductName)

	var low []dto.LowStockItemResponse
	decode(t, env.do(t, http.MethodGet, "/api/inventory/low-stock", env.guest, nil), &low)
	require.Len(t, low, 2)
	assert.Equal(t, "Black", low[0].Color, "mayor déficit primero")
}

func TestSetStock_Errores(t *testing.T) {
	env := newTestEnv(t)
	p := env.createTShirt(t)
	id := p.Variants[0].ID

	cases := []struct {
		name   string
		token  string
		path   string
		body   map[string]any
		status int
	}{
		{"negativo", env.admin, "/api/variants/" + id + "/stock", map[string]any{"field": "stockTokyo", "value": -1}, http.StatusBadRequest},
		{"campo desconocido", env.admin, "/api/variants/" + id + "/stock", map[string]any{"field": "stockKyoto", "value": 1}, http.StatusBadRequest},
		{"sin value", env.admin, "/api/variants/" + id + "/stock", map[string]any{"field": "stockTokyo"}, http.StatusBadRequest},
		{"variante inexistente", env.admin, "/api/variants/nope/stock", map[string]any{"field": "stockTokyo", "value": 1}, http.StatusNotFound},
		{"version vieja", env.admin, "/api/variants/" + id + "/stock", map[string]any{"field": "stockOsaka", "value": 1, "expected_version": 7}, http.StatusConflict},
		{"guest", env.guest, "/api/variants/" + id + "/stock", map[string]any{"field": "stockTokyo", "value": 1}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPatch, tc.path, tc.token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}

	var hist dto.StockHistoryListResponse
	decode(t, env.do(t, http.MethodGet, "/api/inventory/history", env.admin, nil), &hist)
	assert.Empty(t, hist.Items, "ningún intento fallido deja historial")
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)
	env.createTShirt(t)

	resp := env.do(t, http.MethodGet, "/api/inventory/export.csv", env.guest, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/csv"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventory-")

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Cotton T-Shirt,White,50,30,80,60", lines[1])
	assert.Equal(t, "Cotton T-Shirt,Black,10,5,15,40", lines[2])
}

func TestExportPDF(t *testing.T) {
	env := newTestEnv(t)
	env.createTShirt(t)

	resp := env.do(t, http.MethodGet, "/api/inventory/export.pdf", env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestProducts_UpdateYDelete(t *testing.T) {
	env := newTestEnv(t)
	p := env.createTShirt(t)

	resp := env.do(t, http.MethodPut, "/api/products/"+p.ID, env.admin, dto.UpdateProductRequest{
		Name: "Organic T-Shirt",
		Variants: []dto.VariantInput{
			{ID: p.Variants[0].ID, Color: "Ivory", StockTokyo: 1, StockOsaka: 2, MinStock: 3},
			{Color: "Navy", StockTokyo: 4},
			{Color: ""},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var up dto.ProductResponse
	decode(t, resp, &up)
	assert.Equal(t, "Organic T-Shirt", up.Name)
	require.Len(t, up.Variants, 3)
	assert.Equal(t, "Ivory", up.Variants[0].Color)
	assert.Equal(t, "Black", up.Variants[1].Color)
	assert.Equal(t, "Navy", up.Variants[2].Color)

	var hist dto.StockHistoryListResponse
	decode(t, env.do(t, http.MethodGet, "/api/inventory/history", env.admin, nil), &hist)
	assert.Empty(t, hist.Items, "la edición no registra historial")

	var list dto.ProductListResponse
	decode(t, env.do(t, http.MethodGet, "/api/products?search=organic", env.guest, nil), &list)
	assert.Equal(t, 1, list.Total)

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, env.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ok dto.SuccessResponse
	decode(t, resp, &ok)
	assert.True(t, ok.Success)

	resp = env.do(t, http.MethodDelete, "/api/products/"+p.ID, env.admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, env.guest, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

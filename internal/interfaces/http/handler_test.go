package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/auth"
	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/application/usecase"
	"github.com/jhoicas/Backoffice-api/internal/domain"
	"github.com/jhoicas/Backoffice-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Backoffice-api/internal/interfaces/http"
	"github.com/jhoicas/Backoffice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type memLocations struct {
	mu   sync.Mutex
	byID map[string]entity.Location
}

func (m *memLocations) Create(_ context.Context, l *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[l.ID] = *l
	return nil
}

func (m *memLocations) GetByID(_ context.Context, id string) (*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.byID[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (m *memLocations) Update(_ context.Context, l *entity.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[l.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[l.ID] = *l
	return nil
}

func (m *memLocations) List(_ context.Context, _, _ int) ([]*entity.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Location, 0, len(m.byID))
	for _, l := range m.byID {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (m *memLocations) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password-123"
)

func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	users := &memUsers{users: map[string]entity.User{}}
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, logger.Nop())
	created, err := authUC.EnsureAdmin(context.Background(), adminEmail, adminPassword)
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New()
	app.Use(apphttp.AccessLog(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		LocationUC: usecase.NewLocationUseCase(&memLocations{byID: map[string]entity.Location{}}),
		JWTSecret:  testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthHandler_LoginYMe(t *testing.T) {
	app := newAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, entity.RoleAdmin, login.User.Role)

	resp, body = call(t, app, http.MethodGet, "/api/auth/me", "Bearer "+login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, adminEmail, me.Email)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestAuthHandler_LoginPasswordIncorrecto(t *testing.T) {
	app := newAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: adminEmail, Password: "otra-cosa"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "UNAUTHORIZED")
}

func TestAuthHandler_RegisterSoloAdmin(t *testing.T) {
	app := newAPI(t)
	in := dto.RegisterRequest{Email: "vendedor@example.com", Password: "password-123", Role: entity.RoleSeller}

	resp, _ := call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleManager), in)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), in)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, body = call(t, app, http.MethodPost, "/api/auth/register", tokenForRole(t, entity.RoleAdmin), in)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")
}

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocationHandler_CrearYObtener(t *testing.T) {
	app := newAPI(t)
	token := tokenForRole(t, entity.RoleManager)

	resp, body := call(t, app, http.MethodPost, "/api/locations", token, dto.CreateLocationRequest{Name: "Centro", Address: "Calle 1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created dto.LocationResponse
	require.NoError(t, json.Unmarshal(body, &created))

	resp, body = call(t, app, http.MethodGet, "/api/locations/"+created.ID, tokenForRole(t, entity.RoleSeller), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.LocationResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "Centro", got.Name)
}

func TestLocationHandler_ValidacionPorCampo(t *testing.T) {
	app := newAPI(t)

	resp, body := call(t, app, http.MethodPost, "/api/locations", tokenForRole(t, entity.RoleAdmin), map[string]string{"address": "sin nombre"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var verr dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &verr))
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Equal(t, "required", verr.Fields["name"])
}

func TestLocationHandler_SellerNoPuedeCrear(t *testing.T) {
	app := newAPI(t)

	resp, _ := call(t, app, http.MethodPost, "/api/locations", tokenForRole(t, entity.RoleSeller), dto.CreateLocationRequest{Name: "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLocationHandler_NoEncontrada(t *testing.T) {
	app := newAPI(t)

	resp, body := call(t, app, http.MethodGet, "/api/locations/no-existe", tokenForRole(t, entity.RoleSeller), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")

	resp, _ = call(t, app, http.MethodDelete, "/api/locations/no-existe", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLocationHandler_ListaDevuelveFiltroCanonico(t *testing.T) {
	app := newAPI(t)
	token := tokenForRole(t, entity.RoleSeller)

	resp, body := call(t, app, http.MethodGet, "/api/locations?page_size=5&page=2", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.LocationListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, "page=2&page_size=5", list.Page.Filter)
	assert.NotNil(t, list.Items)

	resp, body = call(t, app, http.MethodGet, "/api/locations?page=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "INVALID_FILTER")
}

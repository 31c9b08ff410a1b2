package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Backoffice-api/internal/application/dto"
	"github.com/jhoicas/Backoffice-api/internal/domain"
)

func respond(t *testing.T, h fiber.Handler, body string) (*http.Response, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Post("/", h)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestWriteError_MapeoDeErroresDeDominio(t *testing.T) {
	stock := &domain.InsufficientStockError{VariantID: "v", LocationID: "l", Requested: decimal.NewFromInt(5), Available: decimal.NewFromInt(2)}

	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("asignar: %w", stock), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrTerminalStatus, http.StatusConflict, "TERMINAL_STATUS"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrAdvanceStatusMismatch, http.StatusUnprocessableEntity, "ADVANCE_STATUS_MISMATCH"},
		{domain.ErrDiscountExceedsTotal, http.StatusUnprocessableEntity, "DISCOUNT_EXCEEDS_TOTAL"},
		{domain.ErrOverpaid, http.StatusUnprocessableEntity, "OVERPAID"},
		{fmt.Errorf("venta: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "INVALID_INPUT"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		err := tc.err
		resp, body := respond(t, func(c *fiber.Ctx) error { return writeError(c, err) }, "")
		assert.Equal(t, tc.status, resp.StatusCode, tc.code)
		assert.Equal(t, tc.code, body["code"])
		assert.Equal(t, err.Error(), body["message"])
	}
}

func TestWriteError_ErrorDesconocidoNoExponeDetalle(t *testing.T) {
	resp, body := respond(t, func(c *fiber.Ctx) error {
		return writeError(c, errors.New("pq: conexión rechazada a 10.0.0.3"))
	}, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.NotContains(t, body["message"], "10.0.0.3")
}

func TestWriteSubmitError_Sobre(t *testing.T) {
	resp, body := respond(t, func(c *fiber.Ctx) error { return writeSubmitError(c, domain.ErrOverpaid) }, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, dto.SubmitStatusError, body["status"])
	assert.Equal(t, domain.ErrOverpaid.Error(), body["message"])
}

func TestBind_DecimalesYRutasDeCampo(t *testing.T) {
	h := func(c *fiber.Ctx) error {
		var in dto.CreatePurchaseRequest
		if ok, err := bind(c, &in); !ok {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}

	resp, body := respond(t, h, `{"location_id":"9b2f7a43-3c1e-4a55-9d52-0f4a3b7c8e11","items":[{"variant_id":"0c6a8d6e-5f4b-4d3b-8e6f-7a1b2c3d4e5f","quantity":"0","unit_cost":"10"}]}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields, _ := body["fields"].(map[string]any)
	assert.Equal(t, "gt", fields["items[0].quantity"])

	resp, body = respond(t, h, `{"location_id":"9b2f7a43-3c1e-4a55-9d52-0f4a3b7c8e11","items":[{"variant_id":"0c6a8d6e-5f4b-4d3b-8e6f-7a1b2c3d4e5f","quantity":"2.5","unit_cost":"10"}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
}

func TestBind_CuerpoInvalido(t *testing.T) {
	h := func(c *fiber.Ctx) error {
		var in dto.LoginRequest
		if ok, err := bind(c, &in); !ok {
			return err
		}
		return c.SendStatus(http.StatusOK)
	}
	resp, body := respond(t, h, `{"email":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body["code"])
}

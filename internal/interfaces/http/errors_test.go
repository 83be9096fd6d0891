package http

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/domain"
)

func respuestaPara(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})
	resp, reqErr := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRespondError_ErrorInternoNoExponeDetalle(t *testing.T) {
	status, body := respuestaPara(t, errors.New(`pq: password authentication failed for user "api"`))

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotContains(t, body, "password")
	assert.Contains(t, body, "error interno")
	assert.Contains(t, body, "INTERNAL")
}

func TestRespondError_StockInsuficienteConservaElDetalle(t *testing.T) {
	status, body := respuestaPara(t, fmt.Errorf("producto Arroz 5kg: %w", domain.ErrInsufficientStock))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, "Arroz 5kg")
	assert.Contains(t, body, "INSUFFICIENT_STOCK")
}

package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, fiber.StatusOK},
		{domain.ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("email: %w", domain.ErrAlreadyExists), fiber.StatusConflict},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.ErrUpstreamUnavailable, fiber.StatusBadGateway},
		{domain.ErrInsufficientROI, fiber.StatusBadRequest},
		{domain.ErrNotMatured, fiber.StatusBadRequest},
		{fiber.ErrTooManyRequests, fiber.StatusTooManyRequests},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ErrorToStatusCode(tt.err), "%v", tt.err)
	}
}

func problem(t *testing.T, app *fiber.App, path string) (int, ProblemDetails) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var pd ProblemDetails
	require.NoError(t, json.Unmarshal(body, &pd))
	return resp.StatusCode, pd
}

func TestProblemDetailsJSON_HidesInternalErrors(t *testing.T) {
	for _, expose := range []bool{false, true} {
		app := fiber.New()
		app.Use(ExposeErrors(expose))
		app.Get("/boom", func(c *fiber.Ctx) error {
			return ProblemDetailsJSON(c, "Failed", errors.New("db password leaked"))
		})
		app.Get("/missing", func(c *fiber.Ctx) error {
			return ProblemDetailsJSON(c, "Not here", domain.ErrNotFound)
		})

		status, pd := problem(t, app, "/boom")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, expose, strings.Contains(pd.Detail, "leaked"))

		status, pd = problem(t, app, "/missing")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, domain.ErrNotFound.Error(), pd.Detail)
		assert.Equal(t, "/missing", pd.Instance)
	}
}

func TestBindAndValidate_ReportsFields(t *testing.T) {
	type input struct {
		Email  string  `json:"email" validate:"required,email"`
		Amount float64 `json:"amount" validate:"gt=0"`
	}
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		in, err := BindAndValidate[input](c)
		if in == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", in)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"nope","amount":0}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var pd struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, map[string]string{"Email": "email", "Amount": "gt"}, pd.Errors)
}

func TestPaginationAndParseID(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		if _, err := ParseID(c, "id"); err != nil {
			return ProblemDetailsJSON(c, "Invalid ID", err)
		}
		f := Filter(c)
		return c.JSON(fiber.Map{"page": f.Page, "size": f.PageSize, "status": f.Status})
	})

	status, _ := problem(t, app, "/items/42")
	assert.Equal(t, http.StatusBadRequest, status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet,
		"/items/5f0a1a3e-7f7c-4a55-9d41-0a3c2b1d9e77?page=0&page_size=100000&status=PENDING", nil))
	require.NoError(t, err)
	defer resp.Body.Close() //nolint: errcheck
	var got struct {
		Page   int    `json:"page"`
		Size   int    `json:"size"`
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.Page)
	assert.LessOrEqual(t, got.Size, 100)
	assert.Equal(t, "PENDING", got.Status)
}

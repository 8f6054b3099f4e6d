// Package common holds the response envelope, error mapping and request
// binding shared by every route group.
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/repository"
	"github.com/amirasaad/invest/pkg/storage"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// Page is the data of a paginated listing.
type Page[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

const exposeKey = "expose_errors"

var validate = validator.New()

// ExposeErrors marks whether 5xx problem details may carry the error text.
func ExposeErrors(expose bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(exposeKey, expose)
		return c.Next()
	}
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrBelowMinimum),
		errors.Is(err, domain.ErrInvestmentClosed),
		errors.Is(err, domain.ErrAlreadyProcessed),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInsufficientROI),
		errors.Is(err, domain.ErrWithdrawalPending),
		errors.Is(err, domain.ErrInvestmentNotActive),
		errors.Is(err, domain.ErrNotMatured),
		errors.Is(err, domain.ErrReferralThreshold),
		errors.Is(err, domain.ErrInsufficientReferralBonus),
		errors.Is(err, domain.ErrIncompleteDestination),
		errors.Is(err, domain.ErrInvalidResetToken),
		errors.Is(err, domain.ErrCaptchaFailed),
		errors.Is(err, domain.ErrInvalidPassword):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// ProblemDetailsJSON writes an RFC 9457 response. opts may carry a string
// detail and an int status; without a status it is derived from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	status := 0
	detail := ""
	for _, o := range opts {
		switch v := o.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
		if err == nil {
			status = fiber.StatusBadRequest
		}
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	if err != nil && detail == "" {
		expose, _ := c.Locals(exposeKey).(bool)
		if status < fiber.StatusInternalServerError || expose {
			pd.Detail = err.Error()
		} else {
			pd.Detail = http.StatusText(status)
		}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		pd.Errors = fields
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure it writes the problem response and
// returns a nil input.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// ParseID reads a UUID path parameter.
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a valid UUID: %w", name, domain.ErrValidation)
	}
	return id, nil
}

// Pagination reads page and page_size from the query string.
func Pagination(c *fiber.Ctx) repository.Pagination {
	return repository.Pagination{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", repository.DefaultPageSize),
	}.Normalize()
}

// Filter adds the status query to the pagination.
func Filter(c *fiber.Ctx) repository.ListFilter {
	return repository.ListFilter{Status: c.Query("status"), Pagination: Pagination(c)}
}

// NewPage builds a Page by mapping items.
func NewPage[S, T any](items []S, total int64, p repository.Pagination, mapFn func(S) T) Page[T] {
	out := make([]T, 0, len(items))
	for _, it := range items {
		out = append(out, mapFn(it))
	}
	return Page[T]{Items: out, Total: total, Page: p.Page, PageSize: p.PageSize}
}

// FormBool reads an optional boolean form field.
func FormBool(c *fiber.Ctx, key string) (*bool, error) {
	v := c.FormValue(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false: %w", key, domain.ErrValidation)
	}
	return &b, nil
}

// FormFile opens an optional multipart file. The returned func closes it
// and is safe to call when no file was sent.
func FormFile(c *fiber.Ctx, field string) (*storage.Upload, func(), error) {
	noop := func() {}
	fh, err := c.FormFile(field)
	if errors.Is(err, fasthttp.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, fmt.Errorf("%s: %v: %w", field, err, domain.ErrValidation)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	up := &storage.Upload{
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Body:        f,
	}
	return up, func() { _ = f.Close() }, nil
}

// FormString reads an optional form field. A field that was sent empty
// yields a pointer to "".
func FormString(c *fiber.Ctx, key string) *string {
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			return &v[0]
		}
		return nil
	}
	if !c.Request().PostArgs().Has(key) {
		return nil
	}
	v := c.FormValue(key)
	return &v
}

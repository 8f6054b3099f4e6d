package transfer

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	transfersvc "github.com/amirasaad/invest/pkg/service/transfer"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

//revive:disable
type ResolveInput struct {
	Status string `json:"status" validate:"required"`
}

//revive:enable

func Routes(app *fiber.App, svc *transfersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	admin := middleware.AdminOnly()

	app.Post("/api/transfers", protected, CreateTransfer(svc))
	app.Get("/api/transfers", protected, ListMyTransfers(svc))
	app.Get("/api/admin/transfers", protected, admin, ListAllTransfers(svc))
	app.Put("/api/admin/transfers/:id/status", protected, admin, ResolveTransfer(svc))
}

// CreateTransfer records a bank transfer claim that tops up the balance
// once confirmed.
// @Summary Submit bank transfer
// @Tags transfers
// @Accept multipart/form-data
// @Produce json
// @Param amount formData number true "Amount"
// @Param bank_name formData string true "Bank name"
// @Param reference formData string false "Transfer reference"
// @Param receipt formData file true "Receipt"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/transfers [post]
// @Security Bearer
func CreateTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		amount, err := decimal.NewFromString(c.FormValue("amount"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid amount", domain.ErrInvalidAmount,
				fiber.StatusBadRequest, "amount must be a number")
		}
		receipt, closeFn, err := common.FormFile(c, "receipt")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid receipt", err)
		}
		defer closeFn()
		t, err := svc.Create(c.UserContext(), ident.UserID, transfersvc.CreateInput{
			Amount:    amount,
			BankName:  c.FormValue("bank_name"),
			Reference: c.FormValue("reference"),
			Receipt:   receipt,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't submit transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer submitted", dto.Transfer(t))
	}
}

// @Summary List own transfers
// @Tags transfers
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/transfers [get]
// @Security Bearer
func ListMyTransfers(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers",
			common.NewPage(list, total, filter.Pagination, dto.Transfer))
	}
}

// @Summary List all transfers
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/admin/transfers [get]
// @Security Bearer
func ListAllTransfers(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transfers", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfers",
			common.NewPage(list, total, filter.Pagination, dto.Transfer))
	}
}

// ResolveTransfer confirms or rejects a pending transfer.
// @Summary Resolve transfer
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Transfer ID"
// @Param request body ResolveInput true "CONFIRMED or REJECTED"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/transfers/{id}/status [put]
// @Security Bearer
func ResolveTransfer(svc *transfersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transfer ID", err)
		}
		input, err := common.BindAndValidate[ResolveInput](c)
		if input == nil {
			return err
		}
		to, err := domain.ParseFundingResolution(input.Status)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid status", err)
		}
		t, err := svc.Resolve(c.UserContext(), id, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve transfer", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer "+string(t.Status), dto.Transfer(t))
	}
}

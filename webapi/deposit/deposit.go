package deposit

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	depositsvc "github.com/amirasaad/invest/pkg/service/deposit"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable
type ResolveInput struct {
	Status string `json:"status" validate:"required"`
}

//revive:enable

func Routes(app *fiber.App, svc *depositsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	admin := middleware.AdminOnly()

	app.Post("/api/deposits", protected, CreateDeposit(svc))
	app.Get("/api/deposits", protected, ListMyDeposits(svc))
	app.Get("/api/admin/deposits", protected, admin, ListAllDeposits(svc))
	app.Put("/api/deposits/:id/status", protected, admin, ResolveDeposit(svc))
}

// CreateDeposit files a deposit claim with its receipt.
// @Summary Submit deposit
// @Tags deposits
// @Accept multipart/form-data
// @Produce json
// @Param investment_id formData string true "Investment ID"
// @Param amount formData number true "Amount"
// @Param network formData string true "Payment network"
// @Param receipt formData file true "Receipt"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/deposits [post]
// @Security Bearer
func CreateDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		investmentID, err := uuid.Parse(c.FormValue("investment_id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid investment ID", domain.ErrValidation,
				fiber.StatusBadRequest, "investment_id must be a valid UUID")
		}
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
		d, err := svc.Create(c.UserContext(), ident.UserID, depositsvc.CreateInput{
			InvestmentID: investmentID,
			Amount:       amount,
			Network:      c.FormValue("network"),
			Receipt:      receipt,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't submit deposit", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Deposit submitted", dto.Deposit(d))
	}
}

// ListMyDeposits lists the caller's deposits.
// @Summary List own deposits
// @Tags deposits
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/deposits [get]
// @Security Bearer
func ListMyDeposits(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list deposits", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposits",
			common.NewPage(list, total, filter.Pagination, dto.Deposit))
	}
}

// ListAllDeposits lists every deposit.
// @Summary List all deposits
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/admin/deposits [get]
// @Security Bearer
func ListAllDeposits(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list deposits", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposits",
			common.NewPage(list, total, filter.Pagination, dto.Deposit))
	}
}

// ResolveDeposit confirms or rejects a pending deposit.
// @Summary Resolve deposit
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Deposit ID"
// @Param request body ResolveInput true "CONFIRMED or REJECTED"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/deposits/{id}/status [put]
// @Security Bearer
func ResolveDeposit(svc *depositsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid deposit ID", err)
		}
		input, err := common.BindAndValidate[ResolveInput](c)
		if input == nil {
			return err
		}
		to, err := domain.ParseFundingResolution(input.Status)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid status", err)
		}
		d, ui, err := svc.Resolve(c.UserContext(), id, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve deposit", err)
		}
		data := fiber.Map{"deposit": dto.Deposit(d)}
		if ui != nil {
			data["user_investment"] = dto.UserInvestment(ui)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit "+string(d.Status), data)
	}
}

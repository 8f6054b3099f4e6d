package application

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/middleware"
	applicationsvc "github.com/amirasaad/invest/pkg/service/application"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable
type CreateInput struct {
	InvestmentID string  `json:"investment_id" validate:"required,uuid"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	Note         string  `json:"note" validate:"max=2000"`
}

type ResolveInput struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

//revive:enable

func Routes(app *fiber.App, svc *applicationsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	admin := middleware.AdminOnly()

	app.Post("/api/investment-applications", protected, CreateApplication(svc))
	app.Get("/api/investment-applications", protected, ListMyApplications(svc))
	app.Delete("/api/investment-applications/:id", protected, DeleteApplication(svc))
	app.Get("/api/admin/investment-applications", protected, admin, ListAllApplications(svc))
	app.Put("/api/investment-applications/:id/status", protected, admin, ResolveApplication(svc))
}

// CreateApplication asks an admin to open a commitment.
// @Summary Apply for investment
// @Tags applications
// @Accept json
// @Produce json
// @Param request body CreateInput true "Application"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/investment-applications [post]
// @Security Bearer
func CreateApplication(svc *applicationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err
		}
		ident, _ := middleware.CurrentIdentity(c)
		a, err := svc.Create(c.UserContext(), ident.UserID, applicationsvc.CreateInput{
			InvestmentID: uuid.MustParse(input.InvestmentID),
			Amount:       decimal.NewFromFloat(input.Amount),
			Note:         input.Note,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't submit application", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Application submitted", dto.Application(a))
	}
}

// ListMyApplications lists the caller's applications.
// @Summary List own applications
// @Tags applications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/investment-applications [get]
// @Security Bearer
func ListMyApplications(svc *applicationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list applications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Applications",
			common.NewPage(list, total, filter.Pagination, dto.Application))
	}
}

// DeleteApplication withdraws one of the caller's pending applications.
// @Summary Delete application
// @Tags applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/investment-applications/{id} [delete]
// @Security Bearer
func DeleteApplication(svc *applicationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid application ID", err)
		}
		ident, _ := middleware.CurrentIdentity(c)
		if err := svc.Delete(c.UserContext(), ident.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete application", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Application deleted", nil)
	}
}

// ListAllApplications lists every application.
// @Summary List all applications
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/admin/investment-applications [get]
// @Security Bearer
func ListAllApplications(svc *applicationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list applications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Applications",
			common.NewPage(list, total, filter.Pagination, dto.Application))
	}
}

// ResolveApplication approves or rejects a pending application.
// @Summary Resolve application
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param request body ResolveInput true "APPROVED or REJECTED"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/investment-applications/{id}/status [put]
// @Security Bearer
func ResolveApplication(svc *applicationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid application ID", err)
		}
		input, err := common.BindAndValidate[ResolveInput](c)
		if input == nil {
			return err
		}
		a, ui, err := svc.Resolve(c.UserContext(), id, domain.ApplicationStatus(input.Status))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve application", err)
		}
		data := fiber.Map{"application": dto.Application(a)}
		if ui != nil {
			data["user_investment"] = dto.UserInvestment(ui)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Application "+string(a.Status), data)
	}
}

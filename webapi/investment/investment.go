package investment

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	investmentsvc "github.com/amirasaad/invest/pkg/service/investment"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func Routes(app *fiber.App, svc *investmentsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	optional := middleware.OptionalJwt(authSvc.Strategy(), authSvc)
	admin := middleware.AdminOnly()

	app.Get("/api/investments", optional, ListInvestments(svc))
	app.Get("/api/investments/:id", GetInvestment(svc))
	app.Post("/api/investments", protected, admin, CreateInvestment(svc))
	app.Put("/api/investments/:id", protected, admin, UpdateInvestment(svc))
	app.Delete("/api/investments/:id", protected, admin, CloseInvestment(svc))

	app.Get("/api/user-investments", protected, ListMyInvestments(svc))
	app.Get("/api/user-investments/:id", protected, GetUserInvestment(svc))
	app.Get("/api/admin/user-investments", protected, admin, ListAllUserInvestments(svc))
	app.Put("/api/admin/user-investments/:id/roi", protected, admin, SetROI(svc))
	app.Put("/api/admin/user-investments/:id/status", protected, admin, SetStatus(svc))
}

func toInput(in *InvestmentInput) investmentsvc.Input {
	out := investmentsvc.Input{
		Name:        in.Name,
		Description: in.Description,
		ReturnRate:  in.ReturnRate,
		Duration:    in.Duration,
	}
	if in.MinAmount != nil {
		d := decimal.NewFromFloat(*in.MinAmount)
		out.MinAmount = &d
	}
	if in.TargetAmount != nil {
		d := decimal.NewFromFloat(*in.TargetAmount)
		out.TargetAmount = &d
	}
	if in.Status != nil {
		st := domain.InvestmentStatus(*in.Status)
		out.Status = &st
	}
	return out
}

// ListInvestments lists products. Admins also see closed ones.
// @Summary List investments
// @Tags investments
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/investments [get]
func ListInvestments(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := middleware.CurrentIdentity(c)
		onlyActive := !ok || !ident.IsAdmin()
		list, err := svc.List(c.UserContext(), onlyActive)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list investments", err)
		}
		out := make([]dto.InvestmentDTO, 0, len(list))
		for _, inv := range list {
			out = append(out, dto.Investment(inv))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Investments", out)
	}
}

// GetInvestment returns one product.
// @Summary Get investment
// @Tags investments
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/investments/{id} [get]
func GetInvestment(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid investment ID", err)
		}
		inv, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Investment not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Investment found", dto.Investment(inv))
	}
}

// CreateInvestment adds a product.
// @Summary Create investment
// @Tags admin
// @Accept json
// @Produce json
// @Param request body InvestmentInput true "Investment"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/investments [post]
// @Security Bearer
func CreateInvestment(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[InvestmentInput](c)
		if input == nil {
			return err
		}
		inv, err := svc.Create(c.UserContext(), toInput(input))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create investment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Investment created", dto.Investment(inv))
	}
}

// UpdateInvestment changes a product.
// @Summary Update investment
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Investment ID"
// @Param request body InvestmentInput true "Fields to change"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/investments/{id} [put]
// @Security Bearer
func UpdateInvestment(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid investment ID", err)
		}
		input, err := common.BindAndValidate[InvestmentInput](c)
		if input == nil {
			return err
		}
		inv, err := svc.Update(c.UserContext(), id, toInput(input))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update investment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Investment updated", dto.Investment(inv))
	}
}

// CloseInvestment stops a product from taking new funds.
// @Summary Close investment
// @Tags admin
// @Produce json
// @Param id path string true "Investment ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/investments/{id} [delete]
// @Security Bearer
func CloseInvestment(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid investment ID", err)
		}
		if err := svc.Close(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't close investment", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Investment closed", nil)
	}
}

// ListMyInvestments lists the caller's commitments.
// @Summary List own investments
// @Tags investments
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/user-investments [get]
// @Security Bearer
func ListMyInvestments(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.ListUserInvestments(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list investments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User investments",
			common.NewPage(list, total, filter.Pagination, dto.UserInvestment))
	}
}

// GetUserInvestment returns one commitment owned by the caller, or any
// commitment for admins.
// @Summary Get user investment
// @Tags investments
// @Produce json
// @Param id path string true "User investment ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/user-investments/{id} [get]
// @Security Bearer
func GetUserInvestment(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user investment ID", err)
		}
		ident, _ := middleware.CurrentIdentity(c)
		ui, err := svc.GetUserInvestment(c.UserContext(), ident.UserID, ident.IsAdmin(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User investment not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User investment found", dto.UserInvestment(ui))
	}
}

// ListAllUserInvestments lists every commitment.
// @Summary List all user investments
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/admin/user-investments [get]
// @Security Bearer
func ListAllUserInvestments(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.ListUserInvestments(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list investments", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User investments",
			common.NewPage(list, total, filter.Pagination, dto.UserInvestment))
	}
}

// SetROI overrides a commitment's accrued ROI.
// @Summary Set ROI
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User investment ID"
// @Param request body SetROIInput true "ROI"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/user-investments/{id}/roi [put]
// @Security Bearer
func SetROI(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user investment ID", err)
		}
		input, err := common.BindAndValidate[SetROIInput](c)
		if input == nil {
			return err
		}
		ui, err := svc.SetROI(c.UserContext(), id, decimal.NewFromFloat(*input.ROI))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set ROI", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "ROI updated", dto.UserInvestment(ui))
	}
}

// SetStatus overrides a commitment's status.
// @Summary Set user investment status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User investment ID"
// @Param request body SetStatusInput true "Status"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/user-investments/{id}/status [put]
// @Security Bearer
func SetStatus(svc *investmentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user investment ID", err)
		}
		input, err := common.BindAndValidate[SetStatusInput](c)
		if input == nil {
			return err
		}
		ui, err := svc.SetStatus(c.UserContext(), id, domain.UserInvestmentStatus(input.Status))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't set status", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Status updated", dto.UserInvestment(ui))
	}
}

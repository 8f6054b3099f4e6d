package withdrawal

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	withdrawalsvc "github.com/amirasaad/invest/pkg/service/withdrawal"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//revive:disable
type RequestInput struct {
	UserInvestmentID string             `json:"user_investment_id" validate:"required,uuid"`
	Amount           float64            `json:"amount" validate:"required,gt=0"`
	Destination      dto.DestinationDTO `json:"destination" validate:"required"`
}

type ReferralRequestInput struct {
	Amount      float64            `json:"amount" validate:"required,gt=0"`
	Destination dto.DestinationDTO `json:"destination" validate:"required"`
}

type ResolveInput struct {
	Status string `json:"status" validate:"required"`
}

//revive:enable

func Routes(
	app *fiber.App,
	svc *withdrawalsvc.Service,
	referrals *withdrawalsvc.ReferralService,
	authSvc *authsvc.Service,
	cfg *config.App,
) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	admin := middleware.AdminOnly()

	app.Post("/api/withdrawals/request", protected, RequestROI(svc))
	app.Get("/api/withdrawals", protected, ListMyWithdrawals(svc))
	app.Post("/api/withdrawals/principal/:userInvestmentId", protected, WithdrawPrincipal(svc))
	app.Get("/api/withdrawals/admin", protected, admin, ListAllWithdrawals(svc))
	app.Put("/api/withdrawals/admin/:id/status", protected, admin, ResolveWithdrawal(svc))

	app.Post("/api/referral-withdrawals", protected, RequestReferral(referrals))
	app.Get("/api/referral-withdrawals", protected, ListMyReferralWithdrawals(referrals))
	app.Get("/api/admin/referral-withdrawals", protected, admin, ListAllReferralWithdrawals(referrals))
	app.Put("/api/admin/referral-withdrawals/:id/status", protected, admin, ResolveReferralWithdrawal(referrals))
}

// RequestROI reserves ROI for a payout.
// @Summary Request ROI withdrawal
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body RequestInput true "Withdrawal request"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/withdrawals/request [post]
// @Security Bearer
func RequestROI(svc *withdrawalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RequestInput](c)
		if input == nil {
			return err
		}
		ident, _ := middleware.CurrentIdentity(c)
		w, err := svc.RequestROI(c.UserContext(), ident.UserID, withdrawalsvc.RequestInput{
			UserInvestmentID: uuid.MustParse(input.UserInvestmentID),
			Amount:           decimal.NewFromFloat(input.Amount),
			Destination:      input.Destination.Domain(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Withdrawal requested", dto.Withdrawal(w))
	}
}

// ListMyWithdrawals lists the caller's ROI withdrawals.
// @Summary List own withdrawals
// @Tags withdrawals
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/withdrawals [get]
// @Security Bearer
func ListMyWithdrawals(svc *withdrawalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawals",
			common.NewPage(list, total, filter.Pagination, dto.Withdrawal))
	}
}

// WithdrawPrincipal pays a matured commitment's principal and ROI into the
// caller's balance.
// @Summary Withdraw principal
// @Tags withdrawals
// @Produce json
// @Param userInvestmentId path string true "User investment ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/withdrawals/principal/{userInvestmentId} [post]
// @Security Bearer
func WithdrawPrincipal(svc *withdrawalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "userInvestmentId")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user investment ID", err)
		}
		ident, _ := middleware.CurrentIdentity(c)
		ui, err := svc.WithdrawPrincipal(c.UserContext(), ident.UserID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't withdraw principal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Principal withdrawn", dto.UserInvestment(ui))
	}
}

// ListAllWithdrawals lists every ROI withdrawal.
// @Summary List all withdrawals
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/withdrawals/admin [get]
// @Security Bearer
func ListAllWithdrawals(svc *withdrawalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawals",
			common.NewPage(list, total, filter.Pagination, dto.Withdrawal))
	}
}

// ResolveWithdrawal moves an ROI withdrawal along its lifecycle.
// @Summary Resolve withdrawal
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Withdrawal ID"
// @Param request body ResolveInput true "APPROVED, REJECTED or PROCESSED"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/withdrawals/admin/{id}/status [put]
// @Security Bearer
func ResolveWithdrawal(svc *withdrawalsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, to, err := resolveArgs(c)
		if err != nil {
			return err
		}
		if to == "" {
			return nil
		}
		w, err := svc.Resolve(c.UserContext(), id, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal "+string(w.Status), dto.Withdrawal(w))
	}
}

// RequestReferral reserves referral bonus for a payout.
// @Summary Request referral withdrawal
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param request body ReferralRequestInput true "Referral withdrawal request"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/referral-withdrawals [post]
// @Security Bearer
func RequestReferral(svc *withdrawalsvc.ReferralService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ReferralRequestInput](c)
		if input == nil {
			return err
		}
		ident, _ := middleware.CurrentIdentity(c)
		w, err := svc.Request(c.UserContext(), ident.UserID, decimal.NewFromFloat(input.Amount), input.Destination.Domain())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request referral withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Referral withdrawal requested", dto.ReferralWithdrawal(w))
	}
}

// @Summary List own referral withdrawals
// @Tags withdrawals
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/referral-withdrawals [get]
// @Security Bearer
func ListMyReferralWithdrawals(svc *withdrawalsvc.ReferralService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		filter := common.Filter(c)
		filter.UserID = &ident.UserID
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list referral withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Referral withdrawals",
			common.NewPage(list, total, filter.Pagination, dto.ReferralWithdrawal))
	}
}

// @Summary List all referral withdrawals
// @Tags admin
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} common.Response
// @Router /api/admin/referral-withdrawals [get]
// @Security Bearer
func ListAllReferralWithdrawals(svc *withdrawalsvc.ReferralService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := common.Filter(c)
		list, total, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list referral withdrawals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Referral withdrawals",
			common.NewPage(list, total, filter.Pagination, dto.ReferralWithdrawal))
	}
}

// @Summary Resolve referral withdrawal
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Referral withdrawal ID"
// @Param request body ResolveInput true "APPROVED, REJECTED or PROCESSED"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/referral-withdrawals/{id}/status [put]
// @Security Bearer
func ResolveReferralWithdrawal(svc *withdrawalsvc.ReferralService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, to, err := resolveArgs(c)
		if err != nil {
			return err
		}
		if to == "" {
			return nil
		}
		w, err := svc.Resolve(c.UserContext(), id, to)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't resolve referral withdrawal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Referral withdrawal "+string(w.Status),
			dto.ReferralWithdrawal(w))
	}
}

// resolveArgs reads the id and target status. An empty status means the
// problem response has already been written.
func resolveArgs(c *fiber.Ctx) (uuid.UUID, domain.PayoutStatus, error) {
	id, err := common.ParseID(c, "id")
	if err != nil {
		return uuid.Nil, "", common.ProblemDetailsJSON(c, "Invalid withdrawal ID", err)
	}
	input, err := common.BindAndValidate[ResolveInput](c)
	if input == nil {
		return uuid.Nil, "", err
	}
	to, err := domain.ParsePayoutResolution(input.Status)
	if err != nil {
		return uuid.Nil, "", common.ProblemDetailsJSON(c, "Invalid status", err)
	}
	return id, to, nil
}

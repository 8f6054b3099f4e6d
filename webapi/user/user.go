package user

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	usersvc "github.com/amirasaad/invest/pkg/service/user"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func Routes(app *fiber.App, userSvc *usersvc.UserService, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	admin := middleware.AdminOnly()
	app.Get("/api/users/me", protected, GetMe(userSvc))
	app.Put("/api/users/me", protected, UpdateMe(userSvc))
	app.Put("/api/users/me/password", protected, ChangePassword(authSvc))

	app.Get("/api/admin/users", protected, admin, ListUsers(userSvc))
	app.Get("/api/admin/users/:id", protected, admin, GetUser(userSvc))
	app.Delete("/api/admin/users/:id", protected, admin, DeleteUser(userSvc))
	app.Put("/api/admin/users/:id/balance", protected, admin, SetBalances(userSvc))
	app.Get("/api/admin/stats", protected, admin, Stats(userSvc))
}

// GetMe returns the caller's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/users/me [get]
// @Security Bearer
func GetMe(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		u, err := userSvc.GetUser(c.UserContext(), ident.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", dto.User(u))
	}
}

// UpdateMe changes the caller's profile.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateProfileInput true "Profile fields"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/users/me [put]
// @Security Bearer
func UpdateMe(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[UpdateProfileInput](c)
		if input == nil {
			return err
		}
		ident, _ := middleware.CurrentIdentity(c)
		u, err := userSvc.UpdateProfile(c.UserContext(), ident.UserID, usersvc.ProfileInput{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Phone:     input.Phone,
			Country:   input.Country,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", dto.User(u))
	}
}

// ChangePassword replaces the caller's password.
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param request body ChangePasswordInput true "Passwords"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/users/me/password [put]
// @Security Bearer
func ChangePassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ChangePasswordInput](c)
		if input == nil {
			return err
		}
		ident, _ := middleware.CurrentIdentity(c)
		if err := authSvc.ChangePassword(c.UserContext(), ident.UserID, input.CurrentPassword, input.NewPassword); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't change password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password changed", nil)
	}
}

// ListUsers pages through every account.
// @Summary List users
// @Tags admin
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Router /api/admin/users [get]
// @Security Bearer
func ListUsers(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := common.Pagination(c)
		users, total, err := userSvc.ListUsers(c.UserContext(), page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list users", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users", common.NewPage(users, total, page, dto.User))
	}
}

// GetUser returns one account.
// @Summary Get user by ID
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/admin/users/{id} [get]
// @Security Bearer
func GetUser(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		u, err := userSvc.GetUser(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", dto.User(u))
	}
}

// DeleteUser removes an account and everything it owns.
// @Summary Delete user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} common.Response
// @Failure 403 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/admin/users/{id} [delete]
// @Security Bearer
func DeleteUser(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		ident, _ := middleware.CurrentIdentity(c)
		if err := userSvc.DeleteUser(c.UserContext(), ident.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}

// SetBalances overrides a user's ledger fields.
// @Summary Set user balances
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body SetBalancesInput true "Balances"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/users/{id}/balance [put]
// @Security Bearer
func SetBalances(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid user ID", err)
		}
		input, err := common.BindAndValidate[SetBalancesInput](c)
		if input == nil {
			return err
		}
		u, err := userSvc.SetBalances(c.UserContext(), id, usersvc.BalanceInput{
			Balance:       decimalPtr(input.Balance),
			ROI:           decimalPtr(input.ROI),
			ReferralBonus: decimalPtr(input.ReferralBonus),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update balances", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balances updated", dto.User(u))
	}
}

// Stats returns the admin dashboard summary.
// @Summary Admin stats
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/admin/stats [get]
// @Security Bearer
func Stats(userSvc *usersvc.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := userSvc.Stats(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load stats", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Stats", dto.Stats(st))
	}
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}


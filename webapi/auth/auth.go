package auth

import (
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/api/auth/signup", Signup(authSvc))
	app.Post("/api/auth/signin", Signin(authSvc, cfg.Auth))
	app.Post("/api/auth/signout", Signout(authSvc, cfg.Auth))
	app.Get("/api/auth/me", middleware.JwtProtected(cfg.Auth.Jwt, authSvc), Me(authSvc))
	app.Post("/api/auth/forgot-password", ForgotPassword(authSvc))
	app.Post("/api/auth/reset-password", ResetPassword(authSvc))
}

// Signup registers a new user.
// @Summary Sign up
// @Description Create an account. A referral code credits the referrer.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupInput true "Signup form"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 409 {object} common.ProblemDetails
// @Router /api/auth/signup [post]
func Signup(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SignupInput](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Signup(c.UserContext(), authsvc.SignupInput{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			Password:     input.Password,
			Phone:        input.Phone,
			Country:      input.Country,
			ReferralCode: input.ReferralCode,
			CaptchaToken: input.CaptchaToken,
			RemoteIP:     c.IP(),
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", dto.User(u))
	}
}

// Signin authenticates a user and returns a JWT token.
// @Summary Sign in
// @Description Authenticate with email and password. The token is also set as an HTTP only cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SigninInput true "Credentials"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/signin [post]
func Signin(authSvc *authsvc.Service, cfg *config.Auth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[SigninInput](c)
		if input == nil {
			return err
		}
		u, token, exp, err := authSvc.Signin(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid email or password", err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     middleware.TokenCookie,
			Value:    token,
			Expires:  exp,
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Signed in", fiber.Map{
			"token":      token,
			"expires_at": exp,
			"user":       dto.User(u),
		})
	}
}

// Signout revokes the caller's token and clears the cookie. It succeeds
// for expired or missing tokens.
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/auth/signout [post]
func Signout(authSvc *authsvc.Service, cfg *config.Auth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := middleware.RawToken(c)
		if raw != "" {
			if token, err := authSvc.Strategy().ParseToken(raw); err == nil {
				ident, err := authsvc.IdentityFromToken(token)
				if err == nil {
					if err := authSvc.Signout(c.UserContext(), raw, ident.ExpiresAt); err != nil {
						return common.ProblemDetailsJSON(c, "Couldn't sign out", err)
					}
				}
			}
		}
		c.Cookie(&fiber.Cookie{
			Name:     middleware.TokenCookie,
			Value:    "",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Signed out", nil)
	}
}

// Me returns the signed in user.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} common.Response
// @Failure 401 {object} common.ProblemDetails
// @Router /api/auth/me [get]
// @Security Bearer
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		u, err := authSvc.Me(c.UserContext(), ident.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "User not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Current user", dto.User(u))
	}
}

// ForgotPassword emails a reset link. The response is the same whether or
// not the email is registered.
// @Summary Forgot password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordInput true "Email"
// @Success 200 {object} common.Response
// @Router /api/auth/forgot-password [post]
func ForgotPassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ForgotPasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ForgotPassword(c.UserContext(), input.Email); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't start password reset", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK,
			"If that email is registered, a reset link has been sent", nil)
	}
}

// ResetPassword sets a new password using an emailed token.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordInput true "Token and new password"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/auth/reset-password [post]
func ResetPassword(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ResetPasswordInput](c)
		if input == nil {
			return err
		}
		if err := authSvc.ResetPassword(c.UserContext(), input.Token, input.Password); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reset password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated", nil)
	}
}

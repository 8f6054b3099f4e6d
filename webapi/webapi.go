// Package webapi provides the HTTP API of the investment platform.
// It is organized into sub-packages per domain:
// - auth: signup, signin and password reset
// - user: profile and admin user management
// - investment: products and user commitments
// - deposit, application, transfer: funding flows
// - withdrawal: ROI, principal and referral payouts
// - notification, content: inbox, news, messages, wallets and prices
package webapi

import (
	"errors"
	"strings"

	infrastorage "github.com/amirasaad/invest/infra/storage"
	"github.com/amirasaad/invest/pkg/app"
	"github.com/amirasaad/invest/pkg/metrics"
	applicationweb "github.com/amirasaad/invest/webapi/application"
	authweb "github.com/amirasaad/invest/webapi/auth"
	"github.com/amirasaad/invest/webapi/common"
	contentweb "github.com/amirasaad/invest/webapi/content"
	depositweb "github.com/amirasaad/invest/webapi/deposit"
	investmentweb "github.com/amirasaad/invest/webapi/investment"
	notificationweb "github.com/amirasaad/invest/webapi/notification"
	transferweb "github.com/amirasaad/invest/webapi/transfer"
	userweb "github.com/amirasaad/invest/webapi/user"
	withdrawalweb "github.com/amirasaad/invest/webapi/withdrawal"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// bodyLimit leaves room for a 5MB upload plus form fields.
const bodyLimit = 6 * 1024 * 1024

// SetupApp Initialize Fiber with custom configuration
func SetupApp(app *app.App) *fiber.App {
	cfg := app.Config
	authSvc := app.AuthService

	fiberApp := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Use(common.ExposeErrors(cfg.IsDevelopment()))
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		WithCredentials:      true,
		PersistAuthorization: true,
	}))

	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the
	// direct IP.
	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		KeyGenerator: clientIP,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.CorsOrigins, ","),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	fiberApp.Use(metrics.Middleware())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Invest API is running")
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if cfg.Upload.Driver == "" || cfg.Upload.Driver == "local" {
		fiberApp.Static(infrastorage.PublicPath, cfg.Upload.Dir)
	}

	authweb.Routes(fiberApp, authSvc, cfg)
	userweb.Routes(fiberApp, app.UserService, authSvc, cfg)
	investmentweb.Routes(fiberApp, app.InvestmentService, authSvc, cfg)
	depositweb.Routes(fiberApp, app.DepositService, authSvc, cfg)
	applicationweb.Routes(fiberApp, app.ApplicationService, authSvc, cfg)
	withdrawalweb.Routes(fiberApp, app.WithdrawalService, app.ReferralService, authSvc, cfg)
	transferweb.Routes(fiberApp, app.TransferService, authSvc, cfg)
	notificationweb.Routes(fiberApp, app.NotificationService, authSvc, cfg)
	contentweb.Routes(fiberApp, contentweb.Services{
		News:     app.NewsService,
		Messages: app.MessageService,
		Wallets:  app.WalletService,
		Prices:   app.PriceService,
	}, authSvc, cfg)
	return fiberApp
}

func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		// Take the first IP in the chain
		if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
			return strings.TrimSpace(forwardedFor[:commaIndex])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}

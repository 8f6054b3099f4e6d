// Package content exposes news, the contact form, deposit wallets and the
// price feed.
package content

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	contentsvc "github.com/amirasaad/invest/pkg/service/content"
	"github.com/amirasaad/invest/pkg/service/price"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Services groups the handlers' dependencies.
type Services struct {
	News     *contentsvc.NewsService
	Messages *contentsvc.MessageService
	Wallets  *contentsvc.WalletService
	Prices   *price.Service
}

func Routes(app *fiber.App, svc Services, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)
	optional := middleware.OptionalJwt(authSvc.Strategy(), authSvc)
	admin := middleware.AdminOnly()

	app.Get("/api/news", optional, ListNews(svc.News))
	app.Get("/api/news/:id", optional, GetNews(svc.News))
	app.Post("/api/news", protected, admin, CreateNews(svc.News))
	app.Put("/api/news/:id", protected, admin, UpdateNews(svc.News))
	app.Delete("/api/news/:id", protected, admin, DeleteNews(svc.News))

	app.Post("/api/messages", optional, SubmitMessage(svc.Messages))
	app.Get("/api/admin/messages", protected, admin, ListMessages(svc.Messages))
	app.Put("/api/admin/messages/:id/read", protected, admin, MarkMessageRead(svc.Messages))
	app.Delete("/api/admin/messages/:id", protected, admin, DeleteMessage(svc.Messages))

	app.Get("/api/wallets", protected, ListWallets(svc.Wallets, true))
	app.Get("/api/admin/wallets", protected, admin, ListWallets(svc.Wallets, false))
	app.Post("/api/admin/wallets", protected, admin, CreateWallet(svc.Wallets))
	app.Put("/api/admin/wallets/:id", protected, admin, UpdateWallet(svc.Wallets))
	app.Delete("/api/admin/wallets/:id", protected, admin, DeleteWallet(svc.Wallets))

	app.Get("/api/prices", GetPrices(svc.Prices))
}

// GetPrices returns the cached market snapshot.
// @Summary Coin prices
// @Tags prices
// @Produce json
// @Success 200 {object} common.Response
// @Failure 502 {object} common.ProblemDetails
// @Router /api/prices [get]
func GetPrices(svc *price.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Prices(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Price feed unavailable", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Prices", snap)
	}
}

// isAdmin reports whether an optional token belongs to an admin.
func isAdmin(c *fiber.Ctx) bool {
	ident, ok := middleware.CurrentIdentity(c)
	return ok && ident.IsAdmin()
}


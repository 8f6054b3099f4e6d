package notification

import (
	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/middleware"
	authsvc "github.com/amirasaad/invest/pkg/service/auth"
	notificationsvc "github.com/amirasaad/invest/pkg/service/notification"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *notificationsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.JwtProtected(cfg.Auth.Jwt, authSvc)

	app.Get("/api/notifications", protected, ListNotifications(svc))
	app.Get("/api/notifications/unread-count", protected, UnreadCount(svc))
	app.Put("/api/notifications/read-all", protected, MarkAllRead(svc))
	app.Put("/api/notifications/:id/read", protected, MarkRead(svc))
}

// ListNotifications lists the caller's notifications, newest first.
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} common.Response
// @Router /api/notifications [get]
// @Security Bearer
func ListNotifications(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		page := common.Pagination(c)
		list, total, err := svc.List(c.UserContext(), ident.UserID, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications",
			common.NewPage(list, total, page, dto.Notification))
	}
}

// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notifications/unread-count [get]
// @Security Bearer
func UnreadCount(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		n, err := svc.UnreadCount(c.UserContext(), ident.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't count notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Unread count", fiber.Map{"count": n})
	}
}

// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/notifications/{id}/read [put]
// @Security Bearer
func MarkRead(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid notification ID", err)
		}
		ident, _ := middleware.CurrentIdentity(c)
		if err := svc.MarkRead(c.UserContext(), ident.UserID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notification", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notification read", nil)
	}
}

// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/notifications/read-all [put]
// @Security Bearer
func MarkAllRead(svc *notificationsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, _ := middleware.CurrentIdentity(c)
		n, err := svc.MarkAllRead(c.UserContext(), ident.UserID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark notifications", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Notifications read", fiber.Map{"updated": n})
	}
}

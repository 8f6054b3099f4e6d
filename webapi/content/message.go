package content

import (
	"github.com/amirasaad/invest/pkg/middleware"
	contentsvc "github.com/amirasaad/invest/pkg/service/content"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

//revive:disable
type MessageInput struct {
	Name    string `json:"name" validate:"max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"message" validate:"required,max=5000"`
}

//revive:enable

// SubmitMessage stores a contact form message. A signed-in sender is linked
// to the message.
// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Param request body MessageInput true "Message"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/messages [post]
func SubmitMessage(svc *contentsvc.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[MessageInput](c)
		if input == nil {
			return err
		}
		var userID *uuid.UUID
		if ident, ok := middleware.CurrentIdentity(c); ok {
			userID = &ident.UserID
		}
		m, err := svc.Submit(c.UserContext(), userID, contentsvc.MessageInput{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Body:    input.Body,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't send message", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Message sent", dto.Message(m))
	}
}

// @Summary List messages
// @Tags admin
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/admin/messages [get]
// @Security Bearer
func ListMessages(svc *contentsvc.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := common.Pagination(c)
		list, total, err := svc.List(c.UserContext(), page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list messages", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Messages", common.NewPage(list, total, page, dto.Message))
	}
}

// @Summary Mark message read
// @Tags admin
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} common.Response
// @Router /api/admin/messages/{id}/read [put]
// @Security Bearer
func MarkMessageRead(svc *contentsvc.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid message ID", err)
		}
		if err := svc.MarkRead(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't mark message", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Message read", nil)
	}
}

// @Summary Delete message
// @Tags admin
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} common.Response
// @Router /api/admin/messages/{id} [delete]
// @Security Bearer
func DeleteMessage(svc *contentsvc.MessageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid message ID", err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete message", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Message deleted", nil)
	}
}

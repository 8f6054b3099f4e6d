package content

import (
	contentsvc "github.com/amirasaad/invest/pkg/service/content"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
)

//revive:disable
type WalletInput struct {
	Network *string `json:"network" validate:"omitempty,max=64"`
	Address *string `json:"address" validate:"omitempty,max=256"`
	Label   *string `json:"label" validate:"omitempty,max=128"`
	Active  *bool   `json:"active"`
}

//revive:enable

func (in *WalletInput) service() contentsvc.WalletInput {
	return contentsvc.WalletInput{Network: in.Network, Address: in.Address, Label: in.Label, Active: in.Active}
}

// ListWallets lists the deposit wallets. Users only see active ones.
// @Summary List wallets
// @Tags wallets
// @Produce json
// @Success 200 {object} common.Response
// @Router /api/wallets [get]
// @Security Bearer
func ListWallets(svc *contentsvc.WalletService, onlyActive bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext(), onlyActive)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list wallets", err)
		}
		out := make([]dto.WalletDTO, 0, len(list))
		for _, w := range list {
			out = append(out, dto.Wallet(w))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallets", out)
	}
}

// @Summary Create wallet
// @Tags admin
// @Accept json
// @Produce json
// @Param request body WalletInput true "Wallet"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/admin/wallets [post]
// @Security Bearer
func CreateWallet(svc *contentsvc.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[WalletInput](c)
		if input == nil {
			return err
		}
		w, err := svc.Create(c.UserContext(), input.service())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Wallet created", dto.Wallet(w))
	}
}

// @Summary Update wallet
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Wallet ID"
// @Param request body WalletInput true "Fields to change"
// @Success 200 {object} common.Response
// @Router /api/admin/wallets/{id} [put]
// @Security Bearer
func UpdateWallet(svc *contentsvc.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		input, err := common.BindAndValidate[WalletInput](c)
		if input == nil {
			return err
		}
		w, err := svc.Update(c.UserContext(), id, input.service())
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet updated", dto.Wallet(w))
	}
}

// @Summary Delete wallet
// @Tags admin
// @Produce json
// @Param id path string true "Wallet ID"
// @Success 200 {object} common.Response
// @Router /api/admin/wallets/{id} [delete]
// @Security Bearer
func DeleteWallet(svc *contentsvc.WalletService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid wallet ID", err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete wallet", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Wallet deleted", nil)
	}
}

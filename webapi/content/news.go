package content

import (
	contentsvc "github.com/amirasaad/invest/pkg/service/content"
	"github.com/amirasaad/invest/webapi/common"
	"github.com/amirasaad/invest/webapi/dto"
	"github.com/gofiber/fiber/v2"
)

// ListNews lists published articles. Admins may pass all=true to include
// drafts.
// @Summary List news
// @Tags news
// @Produce json
// @Param all query bool false "Include drafts (admin)"
// @Success 200 {object} common.Response
// @Router /api/news [get]
func ListNews(svc *contentsvc.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		all := isAdmin(c) && c.QueryBool("all")
		page := common.Pagination(c)
		list, total, err := svc.List(c.UserContext(), all, page)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list news", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "News", common.NewPage(list, total, page, dto.News))
	}
}

// @Summary Get news article
// @Tags news
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/news/{id} [get]
func GetNews(svc *contentsvc.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid article ID", err)
		}
		n, err := svc.Get(c.UserContext(), id, isAdmin(c))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Article not found", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Article found", dto.News(n))
	}
}

// newsInput reads the multipart article form. The returned func releases
// the image.
func newsInput(c *fiber.Ctx) (contentsvc.NewsInput, func(), error) {
	published, err := common.FormBool(c, "published")
	if err != nil {
		return contentsvc.NewsInput{}, func() {}, err
	}
	image, closeFn, err := common.FormFile(c, "image")
	if err != nil {
		return contentsvc.NewsInput{}, closeFn, err
	}
	return contentsvc.NewsInput{
		Title:     common.FormString(c, "title"),
		Summary:   common.FormString(c, "summary"),
		Body:      common.FormString(c, "body"),
		Published: published,
		Image:     image,
	}, closeFn, nil
}

// CreateNews publishes an article.
// @Summary Create news article
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param summary formData string false "Summary"
// @Param body formData string true "Body"
// @Param published formData bool false "Published"
// @Param image formData file false "Image"
// @Success 201 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Router /api/news [post]
// @Security Bearer
func CreateNews(svc *contentsvc.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, closeFn, err := newsInput(c)
		defer closeFn()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid article", err)
		}
		n, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create article", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Article created", dto.News(n))
	}
}

// @Summary Update news article
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} common.Response
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /api/news/{id} [put]
// @Security Bearer
func UpdateNews(svc *contentsvc.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid article ID", err)
		}
		in, closeFn, err := newsInput(c)
		defer closeFn()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid article", err)
		}
		n, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't update article", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Article updated", dto.News(n))
	}
}

// @Summary Delete news article
// @Tags admin
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} common.Response
// @Failure 404 {object} common.ProblemDetails
// @Router /api/news/{id} [delete]
// @Security Bearer
func DeleteNews(svc *contentsvc.NewsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParseID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid article ID", err)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't delete article", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Article deleted", nil)
	}
}

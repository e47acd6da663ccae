package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/yatube/backend/internal/middleware"
	"github.com/yatube/backend/internal/models"
	"github.com/yatube/backend/internal/services"
	"github.com/yatube/backend/pkg/logger"
	"github.com/yatube/backend/pkg/render"
	"github.com/yatube/backend/pkg/utils"
	"gorm.io/gorm"
)

type PostsHandler struct {
	DB        *gorm.DB
	Feed      *services.FeedService
	Authoring *services.AuthoringService
}

func NewPostsHandler(db *gorm.DB, feed *services.FeedService, authoring *services.AuthoringService) *PostsHandler {
	return &PostsHandler{DB: db, Feed: feed, Authoring: authoring}
}

type postView struct {
	models.Post
	HTML string `json:"html"`
}

func presentPosts(posts []models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, post := range posts {
		views = append(views, postView{Post: post, HTML: render.Markdown(post.Text)})
	}
	return views
}

func paginatedPosts(c *fiber.Ctx, page *services.PostPage) error {
	return utils.Paginated(c, presentPosts(page.Items), page.Number, page.PerPage, page.TotalPages, page.Total)
}

func (h *PostsHandler) List(c *fiber.Ctx) error {
	page, err := h.Feed.All(c.Context(), utils.ParsePage(c))
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing posts")
	}
	return paginatedPosts(c, page)
}

func (h *PostsHandler) Get(c *fiber.Ctx) error {
	postID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid post id")
	}

	var post models.Post
	if err := h.DB.Preload("Author").Preload("Group").First(&post, "id = ?", postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "post not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading post")
	}

	return utils.Success(c, fiber.StatusOK, postView{Post: post, HTML: render.Markdown(post.Text)})
}

type postFormRequest struct {
	Text    string     `json:"text"`
	GroupID *uuid.UUID `json:"groupID"`
}

// formPayload is the re-render body for a rejected submission: the
// same shape for create and edit, except the edit variant carries the
// isEdit flag and the post id.
func formPayload(c *fiber.Ctx, form services.EditForm) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   services.ErrEmptyContent.Error(),
		"form":    form,
	})
}

func (h *PostsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req postFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.Authoring.Create(c.Context(), services.CreateInput{
		AuthorID: currentUser.ID,
		Text:     req.Text,
		GroupID:  req.GroupID,
	})
	switch {
	case err == services.ErrEmptyContent:
		return formPayload(c, services.EditForm{Text: req.Text, GroupID: req.GroupID})
	case err == gorm.ErrRecordNotFound:
		return utils.Error(c, fiber.StatusBadRequest, "unknown group")
	case err != nil:
		return utils.Error(c, fiber.StatusInternalServerError, "failed creating post")
	}

	logger.InfoWithUser(currentUser.ID.String(), "post_created", map[string]interface{}{
		"post_id": post.ID.String(),
	})

	return c.Redirect(services.ProfilePath(currentUser.Username), fiber.StatusFound)
}

func (h *PostsHandler) Edit(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	postID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid post id")
	}

	var req postFormRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.Authoring.Edit(c.Context(), services.EditInput{
		PostID:  postID,
		ActorID: currentUser.ID,
		Text:    req.Text,
		GroupID: req.GroupID,
	})
	switch {
	case err == gorm.ErrRecordNotFound:
		return utils.Error(c, fiber.StatusNotFound, "post not found")
	case err != nil:
		return utils.Error(c, fiber.StatusInternalServerError, "failed editing post")
	}

	if result.Form != nil {
		return formPayload(c, *result.Form)
	}
	if result.Post == nil {
		// guard refused: bounce to the detail view, nothing written
		return c.Redirect(result.RedirectTo, fiber.StatusFound)
	}

	logger.InfoWithUser(currentUser.ID.String(), "post_edited", map[string]interface{}{
		"post_id": result.Post.ID.String(),
	})

	return c.Redirect(result.RedirectTo, fiber.StatusFound)
}

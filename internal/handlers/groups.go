package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/yatube/backend/internal/middleware"
	"github.com/yatube/backend/internal/models"
	"github.com/yatube/backend/internal/services"
	"github.com/yatube/backend/pkg/logger"
	"github.com/yatube/backend/pkg/slugify"
	"github.com/yatube/backend/pkg/utils"
	"gorm.io/gorm"
)

type GroupsHandler struct {
	DB   *gorm.DB
	Feed *services.FeedService
}

func NewGroupsHandler(db *gorm.DB, feed *services.FeedService) *GroupsHandler {
	return &GroupsHandler{DB: db, Feed: feed}
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	var groups []models.Group
	if err := h.DB.Order("title").Find(&groups).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing groups")
	}
	return utils.Success(c, fiber.StatusOK, groups)
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	var group models.Group
	if err := h.DB.First(&group, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "group not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading group")
	}
	return utils.Success(c, fiber.StatusOK, group)
}

func (h *GroupsHandler) Posts(c *fiber.Ctx) error {
	_, page, err := h.Feed.ByGroup(c.Context(), c.Params("slug"), utils.ParsePage(c))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "group not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing group posts")
	}
	return paginatedPosts(c, page)
}

type createGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Slug = strings.TrimSpace(req.Slug)
	if req.Title == "" {
		return utils.Error(c, fiber.StatusBadRequest, "title is required")
	}

	if req.Slug == "" {
		req.Slug = slugify.Make(req.Title)
	}
	if req.Slug == "" {
		return utils.Error(c, fiber.StatusBadRequest, "could not derive a slug from the title")
	}

	group := models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
	}

	if err := h.DB.Create(&group).Error; err != nil {
		// the unique constraint is the only collision handling there is
		return utils.Error(c, fiber.StatusConflict, "group slug already exists")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_created", map[string]interface{}{
		"group_id": group.ID.String(),
		"slug":     group.Slug,
	})

	return utils.Success(c, fiber.StatusCreated, group)
}

// Delete removes a group and detaches its posts. Posts survive
// ungrouped; only the reference is cleared.
func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var group models.Group
	if err := h.DB.First(&group, "slug = ?", c.Params("slug")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "group not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading group")
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("group_id = ?", group.ID).Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", group.ID).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting group")
	}

	logger.InfoWithUser(currentUser.ID.String(), "group_deleted", map[string]interface{}{
		"group_id": group.ID.String(),
		"slug":     group.Slug,
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "group deleted"})
}

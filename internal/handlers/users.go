package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/yatube/backend/internal/middleware"
	"github.com/yatube/backend/internal/models"
	"github.com/yatube/backend/internal/services"
	"github.com/yatube/backend/pkg/logger"
	"github.com/yatube/backend/pkg/utils"
	"gorm.io/gorm"
)

type UsersHandler struct {
	DB   *gorm.DB
	Feed *services.FeedService
}

func NewUsersHandler(db *gorm.DB, feed *services.FeedService) *UsersHandler {
	return &UsersHandler{DB: db, Feed: feed}
}

func (h *UsersHandler) Get(c *fiber.Ctx) error {
	var user models.User
	if err := h.DB.First(&user, "username = ?", c.Params("username")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "user not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading user")
	}

	var postCount int64
	if err := h.DB.Model(&models.Post{}).Where("author_id = ?", user.ID).Count(&postCount).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed counting posts")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"user": user, "postCount": postCount})
}

func (h *UsersHandler) Posts(c *fiber.Ctx) error {
	_, page, err := h.Feed.ByAuthor(c.Context(), c.Params("username"), utils.ParsePage(c))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "user not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed listing user posts")
	}
	return paginatedPosts(c, page)
}

// Delete removes a user together with every post they authored.
// Ownership cascades; group references on other users' posts are not
// involved.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return utils.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := parseUUID(c.Params("id"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid user id")
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.Error(c, fiber.StatusNotFound, "user not found")
		}
		return utils.Error(c, fiber.StatusInternalServerError, "failed loading user")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Post{}, "author_id = ?", userID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "failed deleting user")
	}

	logger.InfoWithUser(currentUser.ID.String(), "user_deleted", map[string]interface{}{
		"deleted_user_id": userID.String(),
	})

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "user deleted"})
}
